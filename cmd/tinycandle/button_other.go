//go:build !unix

package main

// watchButton is a no-op without SIGUSR1, the terminal keys still work
func watchButton(press func() bool) func() {
	return func() {}
}
