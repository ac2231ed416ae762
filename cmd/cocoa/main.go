// Command cocoa drives the Objective-C bridge from the shell: launching
// applications, reading the process environment through NSProcessInfo and
// printing Alfred script filter XML.
package main

import (
	"os"
	"runtime"
)

func init() {
	// AppKit expects to be called from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
