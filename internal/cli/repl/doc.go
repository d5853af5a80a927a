// Package repl provides the interactive REPL mode for keymesh-cli.
//
// The REPL reads command lines from the user, sends each one to the
// server over the line protocol, and prints the reply. It keeps a
// persistent command history under ~/.keymesh. The package also
// provides a Completer for prefix completion over the command
// vocabulary; REPL.Run does not use it.
package repl
