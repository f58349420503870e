// Package main is the entry point for the plantheque CLI.
package main

import (
	"log"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
