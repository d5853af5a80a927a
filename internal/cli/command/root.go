// Package command provides CLI command definitions for keymesh-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and interactive REPL mode.
package command

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keymesh-go/internal/cli/client"
	"github.com/yndnr/keymesh-go/internal/cli/repl"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application. With trailing arguments it sends
// them as one command and prints the reply; without arguments it
// enters the interactive REPL.
func App() *cli.App {
	app := &cli.App{
		Name:    "keymesh-cli",
		Usage:   "KeyMesh command-line client",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Action:  run,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"H"},
			Usage:   "KeyMesh server host",
			EnvVars: []string{"KEYMESH_HOST"},
			Value:   "localhost",
		},
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "KeyMesh server port",
			EnvVars: []string{"KEYMESH_PORT"},
			Value:   "9999",
		},
	}
}

func run(c *cli.Context) error {
	addr := net.JoinHostPort(c.String("host"), c.String("port"))
	cl := client.New(addr)
	defer cl.Close()

	if c.Args().Present() {
		reply, err := cl.Execute(strings.Join(c.Args().Slice(), " "))
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	return repl.New(cl, addr, os.Stdin, os.Stdout).Run()
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
