package node

import (
	"strconv"
	"strings"

	"github.com/edwingeng/deque/v2"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// listNode is an ordered sequence of strings with both-end push/pop.
// Cross-key work (rpoplpush) goes through the space by key name.
type listNode struct {
	base
	space *Space
	items *deque.Deque[string]
}

func newListNode(space *Space) *listNode {
	n := &listNode{
		space: space,
		items: deque.NewDeque[string](),
	}
	n.nodeType = domain.ListNode
	n.handlers = map[string]handler{
		"lpush":      n.lpush,
		"rpush":      n.rpush,
		"lpushx":     n.lpush,
		"rpushx":     n.rpush,
		"lpop":       n.lpop,
		"rpop":       n.rpop,
		"lset":       n.lset,
		"lindex":     n.lindex,
		"lrem":       n.lrem,
		"lrange":     n.lrange,
		"ltrim":      n.ltrim,
		"llen":       n.llen,
		"linsert":    n.linsert,
		"rpoplpush":  n.rpoplpush,
		"blpop":      notImplemented,
		"brpop":      notImplemented,
		"brpoplpush": notImplemented,
	}
	return n
}

func (n *listNode) Receive(msg any) any {
	p, ok := msg.(*command.Payload)
	if !ok {
		return domain.Reply(domain.ErrUnknownCommand)
	}
	return n.dispatch(p)
}

// rebuild replaces the backing deque with items. Used by the positional
// mutations that have no single-element deque operation.
func (n *listNode) rebuild(items []string) {
	fresh := deque.NewDeque[string]()
	for _, item := range items {
		fresh.PushBack(item)
	}
	n.items = fresh
}

func (n *listNode) lpush(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	for _, v := range p.Args {
		n.items.PushFront(v)
	}
	return itoa(n.items.Len())
}

func (n *listNode) rpush(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	for _, v := range p.Args {
		n.items.PushBack(v)
	}
	return itoa(n.items.Len())
}

func (n *listNode) lpop(_ *command.Payload) string {
	if n.items.IsEmpty() {
		return ReplyNone
	}
	return n.items.PopFront()
}

func (n *listNode) rpop(_ *command.Payload) string {
	if n.items.IsEmpty() {
		return ReplyNone
	}
	return n.items.PopBack()
}

func (n *listNode) lset(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	at, err := strconv.Atoi(p.Arg(0))
	if err != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	i, ok := index(at, n.items.Len())
	if !ok {
		return domain.Reply(domain.ErrIndexOutOfRange)
	}
	n.items.Replace(i, p.Arg(1))
	return ReplyOK
}

func (n *listNode) lindex(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	at, err := strconv.Atoi(p.Arg(0))
	if err != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	i, ok := index(at, n.items.Len())
	if !ok {
		return ReplyNone
	}
	return n.items.Peek(i)
}

// lrem removes the element at one position. The reply is 1 when an
// element was removed, 0 when the position falls outside the list.
func (n *listNode) lrem(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	at, err := strconv.Atoi(p.Arg(0))
	if err != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	i, ok := index(at, n.items.Len())
	if !ok {
		return "0"
	}
	items := n.items.Dump()
	n.rebuild(append(items[:i], items[i+1:]...))
	return "1"
}

func (n *listNode) lrange(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	lo, err1 := strconv.Atoi(p.Arg(0))
	hi, err2 := strconv.Atoi(p.Arg(1))
	if err1 != nil || err2 != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	items := n.items.Dump()
	lo, hi = sliceBounds(lo, hi, len(items))
	return joinLines(items[lo:hi])
}

func (n *listNode) ltrim(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	lo, err1 := strconv.Atoi(p.Arg(0))
	hi, err2 := strconv.Atoi(p.Arg(1))
	if err1 != nil || err2 != nil {
		return domain.Reply(domain.ErrNotInteger)
	}
	items := n.items.Dump()
	lo, hi = sliceBounds(lo, hi, len(items))
	n.rebuild(items[lo:hi])
	return ReplyOK
}

func (n *listNode) llen(_ *command.Payload) string {
	return itoa(n.items.Len())
}

func (n *listNode) linsert(p *command.Payload) string {
	if len(p.Args) < 3 {
		return domain.Reply(domain.ErrTooFewParams)
	}

	var offset int
	switch strings.ToLower(p.Arg(0)) {
	case "before":
		offset = 0
	case "after":
		offset = 1
	default:
		return domain.Reply(domain.ErrSyntax)
	}

	pivot, value := p.Arg(1), p.Arg(2)
	items := n.items.Dump()
	for i, item := range items {
		if item != pivot {
			continue
		}
		at := i + offset
		inserted := make([]string, 0, len(items)+1)
		inserted = append(inserted, items[:at]...)
		inserted = append(inserted, value)
		inserted = append(inserted, items[at:]...)
		n.rebuild(inserted)
		return itoa(len(inserted))
	}
	return "-1"
}

// rpoplpush pops from the tail and pushes onto the head of dst. The
// pop and the send happen in one message turn, so no other command on
// this key can observe the value in flight. The push itself is
// fire-and-forget; the destination's serial mailbox keeps its order.
func (n *listNode) rpoplpush(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	if n.items.IsEmpty() {
		return ReplyNone
	}

	dst := p.Arg(0)
	val := n.items.PopBack()
	ref := n.space.Materialize(dst, domain.ListNode)
	_ = ref.Tell(command.NewPayload("lpush", dst, val))
	return val
}
