package main

import "os"

// Version is injected at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
