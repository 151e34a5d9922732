package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu      sync.Mutex
	crashCleanup []func()
)

// OnCrash registers cleanup run before the stack trace is printed (screen restore, LEDs off)
// Cleanups run in reverse registration order
func OnCrash(fn func()) {
	crashMu.Lock()
	crashCleanup = append(crashCleanup, fn)
	crashMu.Unlock()
}

// runCleanup drains the registered cleanups, a panicking cleanup does not stop the rest
func runCleanup() {
	crashMu.Lock()
	fns := crashCleanup
	crashCleanup = nil
	crashMu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		func() {
			defer func() { _ = recover() }()
			fns[i]()
		}()
	}
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	runCleanup()

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// exit is swapped in tests
var (
	osExit = os.Exit
	exit   = osExit
)

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
