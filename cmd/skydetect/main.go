// Command skydetect runs the sky detector on one image file.
//
//	skydetect detect photo.jpg --out results/
//	skydetect skyline photo.jpg
//	skydetect version
package main

import (
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
