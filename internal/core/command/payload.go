package command

import (
	"strings"

	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// Payload is an immutable parsed request.
//
// For key-directory commands the target key is the directory's
// well-known address; for client-local commands it is empty. In both
// cases token 1 is not consumed as a key and stays in Args.
type Payload struct {
	Command  string
	NodeType domain.NodeType
	Key      string
	Args     []string

	IsClientCommand bool
	IsKeyCommand    bool
}

// Parse builds a Payload from one whitespace-split command line.
// Unknown commands still yield a payload (with empty NodeType) so the
// session can produce a user error.
func Parse(tokens []string) *Payload {
	p := &Payload{}
	if len(tokens) == 0 {
		return p
	}

	p.Command = strings.ToLower(tokens[0])
	p.NodeType = NodeTypeOf(p.Command)
	p.IsClientCommand = p.NodeType == domain.ClientNode
	p.IsKeyCommand = p.NodeType == domain.KeyNode

	switch {
	case p.IsClientCommand:
		p.Args = tokens[1:]
	case p.IsKeyCommand:
		p.Key = DirectoryKey
		p.Args = tokens[1:]
	default:
		if len(tokens) > 1 {
			p.Key = tokens[1]
			p.Args = tokens[2:]
		}
	}

	return p
}

// Arg returns Args[i], or "" when i is out of range.
func (p *Payload) Arg(i int) string {
	if i < 0 || i >= len(p.Args) {
		return ""
	}
	return p.Args[i]
}

// WithCommand returns a new payload carrying a different command and
// args. It keeps the key of the original and takes its NodeType from the
// new command; the routing flags (IsClientCommand, IsKeyCommand) are not
// carried over and are left false.
func (p *Payload) WithCommand(cmd string, args ...string) *Payload {
	cmd = strings.ToLower(cmd)
	return &Payload{
		Command:  cmd,
		NodeType: NodeTypeOf(cmd),
		Key:      p.Key,
		Args:     args,
	}
}

// NewPayload builds a payload directly, bypassing line parsing. Used for
// internally generated sub-requests such as the push leg of rpoplpush.
func NewPayload(cmd, key string, args ...string) *Payload {
	cmd = strings.ToLower(cmd)
	return &Payload{
		Command:  cmd,
		NodeType: NodeTypeOf(cmd),
		Key:      key,
		Args:     args,
	}
}
