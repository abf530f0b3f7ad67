package main

import (
	"fmt"
	"os"

	"github.com/transientvariable/nativefs-go"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns the process exit status for err: the numeric value of its nativefs.Code.
func exitCode(err error) int {
	return int(nativefs.CodeOf(err))
}
