package node

import (
	"sort"
	"strconv"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// hashNode maps fields to string values.
type hashNode struct {
	base
	fields map[string]string
}

func newHashNode() *hashNode {
	n := &hashNode{fields: make(map[string]string)}
	n.nodeType = domain.HashNode
	n.handlers = map[string]handler{
		"hget":         n.hget,
		"hset":         n.hset,
		"hsetnx":       n.hsetnx,
		"hgetall":      n.hgetall,
		"hkeys":        n.hkeys,
		"hvals":        n.hvals,
		"hdel":         n.hdel,
		"hexists":      n.hexists,
		"hlen":         n.hlen,
		"hmget":        n.hmget,
		"hmset":        n.hmset,
		"hincrby":      n.hincrby,
		"hincrbyfloat": n.hincrbyfloat,
		"hscan":        n.hscan,
	}
	return n
}

func (n *hashNode) Receive(msg any) any {
	p, ok := msg.(*command.Payload)
	if !ok {
		return domain.Reply(domain.ErrUnknownCommand)
	}
	return n.dispatch(p)
}

// sortedFields returns the field names in lexical order. Replies built
// from it stay deterministic even though the map itself is unordered.
func (n *hashNode) sortedFields() []string {
	fields := make([]string, 0, len(n.fields))
	for f := range n.fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (n *hashNode) hget(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	v, ok := n.fields[p.Arg(0)]
	if !ok {
		return ReplyNone
	}
	return v
}

func (n *hashNode) hset(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	_, existed := n.fields[p.Arg(0)]
	n.fields[p.Arg(0)] = p.Arg(1)
	return boolReply(!existed)
}

func (n *hashNode) hsetnx(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	if _, existed := n.fields[p.Arg(0)]; existed {
		return "0"
	}
	n.fields[p.Arg(0)] = p.Arg(1)
	return "1"
}

func (n *hashNode) hgetall(_ *command.Payload) string {
	flat := make([]string, 0, 2*len(n.fields))
	for _, f := range n.sortedFields() {
		flat = append(flat, f, n.fields[f])
	}
	return joinLines(flat)
}

func (n *hashNode) hkeys(_ *command.Payload) string {
	return joinLines(n.sortedFields())
}

func (n *hashNode) hvals(_ *command.Payload) string {
	vals := make([]string, 0, len(n.fields))
	for _, f := range n.sortedFields() {
		vals = append(vals, n.fields[f])
	}
	return joinLines(vals)
}

func (n *hashNode) hdel(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	removed := 0
	for _, f := range p.Args {
		if _, ok := n.fields[f]; ok {
			delete(n.fields, f)
			removed++
		}
	}
	return itoa(removed)
}

func (n *hashNode) hexists(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	_, ok := n.fields[p.Arg(0)]
	return boolReply(ok)
}

func (n *hashNode) hlen(_ *command.Payload) string {
	return itoa(len(n.fields))
}

func (n *hashNode) hmget(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	vals := make([]string, 0, len(p.Args))
	for _, f := range p.Args {
		if v, ok := n.fields[f]; ok {
			vals = append(vals, v)
		} else {
			vals = append(vals, ReplyNone)
		}
	}
	return joinLines(vals)
}

func (n *hashNode) hmset(p *command.Payload) string {
	if len(p.Args) < 2 || len(p.Args)%2 != 0 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	for i := 0; i+1 < len(p.Args); i += 2 {
		n.fields[p.Args[i]] = p.Args[i+1]
	}
	return ReplyOK
}

func (n *hashNode) hincrby(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	step, err := strconv.ParseInt(p.Arg(1), 10, 64)
	if err != nil {
		return domain.Reply(domain.ErrNotInteger)
	}

	cur := int64(0)
	if v, ok := n.fields[p.Arg(0)]; ok {
		cur, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domain.Reply(domain.ErrNotInteger)
		}
	}
	next := strconv.FormatInt(cur+step, 10)
	n.fields[p.Arg(0)] = next
	return next
}

func (n *hashNode) hincrbyfloat(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	step, err := strconv.ParseFloat(p.Arg(1), 64)
	if err != nil {
		return domain.Reply(domain.ErrNotFloat)
	}

	cur := 0.0
	if v, ok := n.fields[p.Arg(0)]; ok {
		cur, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Reply(domain.ErrNotFloat)
		}
	}
	next := strconv.FormatFloat(cur+step, 'f', -1, 64)
	n.fields[p.Arg(0)] = next
	return next
}

// hscan iterates field names; values are fetched with hget/hmget.
func (n *hashNode) hscan(p *command.Payload) string {
	return scanCollection(n.sortedFields(), p.Args)
}
