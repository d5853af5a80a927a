// Package client provides the line-protocol client for keymesh-cli.
package client

import (
	"bufio"
	"net"
	"strings"
	"time"
)

// drainWindow is how long Execute keeps reading continuation lines of
// a multi-element reply. The protocol has no length-prefixed framing,
// so the end of a reply is only observable as silence on the wire.
const drainWindow = 50 * time.Millisecond

// Client is a connection to a keymesh-server.
type Client struct {
	addr string
	conn net.Conn
	br   *bufio.Reader
}

// New creates a client for the given address. The connection is opened
// lazily on the first Execute.
func New(addr string) *Client {
	return &Client{addr: addr}
}

// Connect dials the server.
func (c *Client) Connect() error {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return err
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Execute sends one command line and returns the reply, with
// multi-element replies joined by newlines.
func (c *Client) Execute(cmd string) (string, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return "", err
		}
	}

	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return "", err
	}

	// The first line blocks until the server replies.
	_ = c.conn.SetReadDeadline(time.Time{})
	first, err := c.br.ReadString('\n')
	if err != nil {
		return "", err
	}

	lines := []string{strings.TrimSuffix(first, "\n")}

	// Continuation lines of a collection reply arrive back to back;
	// drain until the wire goes quiet.
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(drainWindow))
		line, err := c.br.ReadString('\n')
		if err != nil {
			break
		}
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	_ = c.conn.SetReadDeadline(time.Time{})

	return strings.Join(lines, "\n"), nil
}
