package node

import (
	"strconv"
	"strings"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// Canonical reply strings shared by all node types.
const (
	ReplyOK   = "OK"
	ReplyNone = "None"
)

// handler executes one command against a node's state and returns the
// wire reply.
type handler func(p *command.Payload) string

// base carries the dispatch machinery common to all node types: the
// type tag checked against incoming payloads and the command table.
// extra is a second admitted type, set only by the key directory to
// take the set vocabulary on top of its own.
type base struct {
	nodeType domain.NodeType
	extra    domain.NodeType
	handlers map[string]handler
}

// accepts reports whether a payload of type t may be dispatched here.
func (b *base) accepts(t domain.NodeType) bool {
	return t == b.nodeType || (b.extra != "" && t == b.extra)
}

// dispatch validates the payload type and indexes the command table.
// It is the single entry point used by every node's Receive.
func (b *base) dispatch(p *command.Payload) string {
	if !b.accepts(p.NodeType) {
		return domain.Reply(domain.WrongType(p.Command, p.NodeType, b.nodeType))
	}
	h, ok := b.handlers[p.Command]
	if !ok {
		return domain.Reply(domain.ErrUnknownCommand)
	}
	return h(p)
}

// notImplemented is the handler for commands named in the vocabulary
// but intentionally left out of scope.
func notImplemented(_ *command.Payload) string {
	return domain.Reply(domain.ErrNotImplemented)
}

// joinLines flattens a collection reply. Elements are joined with a
// newline; the session appends the terminal newline.
func joinLines(items []string) string {
	return strings.Join(items, "\n")
}

// splitLines is the inverse of joinLines, used when one node consumes
// another node's collection reply.
func splitLines(reply string) []string {
	if reply == "" {
		return nil
	}
	return strings.Split(reply, "\n")
}

// itoa formats an integer reply.
func itoa(n int) string {
	return strconv.Itoa(n)
}

// boolReply encodes a boolean as the wire integers 0 / 1.
func boolReply(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// sliceBounds resolves a [lo, hi) range request against a collection of
// length n. Negative indices count from the end; the result is clamped
// so the returned bounds are always a valid slice of the collection.
func sliceBounds(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// index resolves a single position against length n, supporting
// negative positions. ok is false when the position falls outside.
func index(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
