package main

import (
	"fmt"
	"os"

	"golang.design/x/hotkey/mainthread"

	"anki-creator/internal/adapter/primary/cli"
)

func main() {
	// Hotkey registration on macOS must happen on the main OS thread.
	mainthread.Init(run)
}

func run() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
