// Package main provides the entry point for keymesh-cli.
//
// keymesh-cli is the command-line client for keymesh-server,
// supporting both single-command mode and interactive REPL mode.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/keymesh-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
