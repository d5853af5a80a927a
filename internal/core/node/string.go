package node

import (
	"math/bits"
	"strconv"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// stringNode holds one string value, initially empty.
type stringNode struct {
	base
	value string
}

func newStringNode() *stringNode {
	n := &stringNode{}
	n.nodeType = domain.StringNode
	n.handlers = map[string]handler{
		"get":         n.get,
		"set":         n.set,
		"setnx":       n.setnx,
		"getset":      n.getset,
		"append":      n.append,
		"getrange":    n.getrange,
		"setrange":    n.setrange,
		"strlen":      n.strlen,
		"incr":        n.incrBy(1),
		"decr":        n.incrBy(-1),
		"incrby":      n.incrByArg(1),
		"decrby":      n.incrByArg(-1),
		"incrbyfloat": n.incrByFloat,
		"bitcount":    n.bitcount,
		"getbit":      notImplemented,
		"setbit":      notImplemented,
		"setex":       notImplemented,
		"psetex":      notImplemented,
		"bitop":       notImplemented,
		"bitpos":      notImplemented,
	}
	return n
}

func (n *stringNode) Receive(msg any) any {
	p, ok := msg.(*command.Payload)
	if !ok {
		return domain.Reply(domain.ErrUnknownCommand)
	}
	return n.dispatch(p)
}

func (n *stringNode) get(_ *command.Payload) string {
	return n.value
}

func (n *stringNode) set(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	n.value = p.Arg(0)
	return ReplyOK
}

// setnx behaves like set here. The cannot-exist guard runs in the
// session, so a setnx only reaches this node right after it was
// materialized for that very command.
func (n *stringNode) setnx(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	n.value = p.Arg(0)
	return "1"
}

func (n *stringNode) getset(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	prev := n.value
	n.value = p.Arg(0)
	return prev
}

func (n *stringNode) append(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	n.value += p.Arg(0)
	return n.value
}

func (n *stringNode) getrange(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	lo, err1 := strconv.Atoi(p.Arg(0))
	hi, err2 := strconv.Atoi(p.Arg(1))
	if err1 != nil || err2 != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	lo, hi = sliceBounds(lo, hi, len(n.value))
	return n.value[lo:hi]
}

// setrange splices one character at offset i, replacing the character
// there. Offsets past the end leave the value unchanged. The reply is
// the resulting string, matching append.
func (n *stringNode) setrange(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	at, err := strconv.Atoi(p.Arg(0))
	if err != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	if i, ok := index(at, len(n.value)); ok {
		n.value = n.value[:i] + p.Arg(1) + n.value[i+1:]
	}
	return n.value
}

func (n *stringNode) strlen(_ *command.Payload) string {
	return itoa(len(n.value))
}

// intValue parses the current value as an integer, treating the empty
// string as zero.
func (n *stringNode) intValue() (int64, error) {
	if n.value == "" {
		return 0, nil
	}
	return strconv.ParseInt(n.value, 10, 64)
}

// incrBy covers incr and decr: a fixed step of +1 or -1.
func (n *stringNode) incrBy(sign int64) handler {
	return func(_ *command.Payload) string {
		return n.applyDelta(sign)
	}
}

// incrByArg covers incrby and decrby: the step comes from the payload.
func (n *stringNode) incrByArg(sign int64) handler {
	return func(p *command.Payload) string {
		if len(p.Args) < 1 {
			return domain.Reply(domain.ErrTooFewParams)
		}
		step, err := strconv.ParseInt(p.Arg(0), 10, 64)
		if err != nil {
			return domain.Reply(domain.ErrNotInteger)
		}
		return n.applyDelta(sign * step)
	}
}

func (n *stringNode) applyDelta(delta int64) string {
	cur, err := n.intValue()
	if err != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	n.value = strconv.FormatInt(cur+delta, 10)
	return n.value
}

func (n *stringNode) incrByFloat(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	step, err := strconv.ParseFloat(p.Arg(0), 64)
	if err != nil {
		return domain.Reply(domain.ErrNotFloat)
	}

	cur := 0.0
	if n.value != "" {
		cur, err = strconv.ParseFloat(n.value, 64)
		if err != nil {
			return domain.Reply(domain.ErrNotFloat)
		}
	}
	n.value = strconv.FormatFloat(cur+step, 'f', -1, 64)
	return n.value
}

func (n *stringNode) bitcount(_ *command.Payload) string {
	total := 0
	for i := 0; i < len(n.value); i++ {
		total += bits.OnesCount8(n.value[i])
	}
	return itoa(total)
}
