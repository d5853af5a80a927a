// Package tcpserver implements the line-protocol TCP front end of
// KeyMesh.
//
// Each request is one newline-terminated line of space-separated
// tokens; each reply is one string followed by a newline, with
// multi-element replies joined by newlines before the terminator.
//
// The server owns connection concerns only: accept loop, read/write
// and idle deadlines, line length limits, per-IP rate limiting and
// connection metrics. Command semantics live entirely in the session
// and the key nodes behind it.
package tcpserver
