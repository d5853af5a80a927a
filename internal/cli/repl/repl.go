package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Executor sends one command line to the server and returns the reply.
type Executor interface {
	Execute(cmd string) (string, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec      Executor
	addr      string
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// New creates a new REPL instance talking to the server at addr.
func New(exec Executor, addr string, input io.Reader, output io.Writer) *REPL {
	return &REPL{
		exec:      exec,
		addr:      addr,
		input:     input,
		output:    output,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// Run starts the REPL loop. It returns when the user types exit or
// quit, or when the input reaches EOF.
func (r *REPL) Run() error {
	_ = r.history.Load()
	defer func() { _ = r.history.Save() }()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprintf(r.output, "%s> ", r.addr)

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		// quit is also a server command; forward it so the server can
		// close the connection cleanly, then leave the loop.
		if line == "exit" || line == "quit" {
			if reply, err := r.exec.Execute("quit"); err == nil {
				fmt.Fprintln(r.output, reply)
			}
			return nil
		}

		reply, err := r.exec.Execute(line)
		if err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(r.output, reply)
	}
}
