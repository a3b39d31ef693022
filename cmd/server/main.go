// Package main implements the entry point for the todo-api server, which
// serves an in-memory task list over HTTP and the Model Context Protocol.
package main

import (
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
