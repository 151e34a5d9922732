//go:build unix

package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/lixenwraith/tinycandle/core"
)

// watchButton maps SIGUSR1 to a button press, kill -USR1 toggles sleep
// The returned func stops watching
func watchButton(press func() bool) func() {
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, unix.SIGUSR1)

	core.Go(func() {
		for {
			select {
			case <-sig:
				press()
			case <-done:
				return
			}
		}
	})

	return func() {
		signal.Stop(sig)
		close(done)
	}
}
