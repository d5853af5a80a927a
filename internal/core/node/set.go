package node

import (
	"math/rand"
	"sort"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// memberStore is the state behind a set-shaped node. The plain set
// node uses a map; the key directory plugs in an ordered radix index
// so key scans walk in stable order without re-sorting.
type memberStore interface {
	add(m string) bool
	remove(m string) bool
	has(m string) bool
	members() []string // lexical order
	size() int
	replace(ms []string)
}

// mapStore is the map-backed memberStore of ordinary set nodes.
type mapStore struct {
	set map[string]struct{}
}

func newMapStore() *mapStore {
	return &mapStore{set: make(map[string]struct{})}
}

func (s *mapStore) add(m string) bool {
	if _, ok := s.set[m]; ok {
		return false
	}
	s.set[m] = struct{}{}
	return true
}

func (s *mapStore) remove(m string) bool {
	if _, ok := s.set[m]; !ok {
		return false
	}
	delete(s.set, m)
	return true
}

func (s *mapStore) has(m string) bool {
	_, ok := s.set[m]
	return ok
}

func (s *mapStore) members() []string {
	ms := make([]string, 0, len(s.set))
	for m := range s.set {
		ms = append(ms, m)
	}
	sort.Strings(ms)
	return ms
}

func (s *mapStore) size() int {
	return len(s.set)
}

func (s *mapStore) replace(ms []string) {
	s.set = make(map[string]struct{}, len(ms))
	for _, m := range ms {
		s.set[m] = struct{}{}
	}
}

// setNode holds a set of unique strings. Algebra over other keys goes
// through the space; a named key with no live node counts as empty.
type setNode struct {
	base
	space *Space
	store memberStore
}

func newSetNode(space *Space) *setNode {
	return newSetNodeWith(space, newMapStore())
}

func newSetNodeWith(space *Space, store memberStore) *setNode {
	n := &setNode{space: space, store: store}
	n.nodeType = domain.SetNode
	n.handlers = map[string]handler{
		"sadd":        n.sadd,
		"srem":        n.srem,
		"scard":       n.scard,
		"sismember":   n.sismember,
		"smembers":    n.smembers,
		"srandmember": n.srandmember,
		"spop":        n.spop,
		"sdiff":       n.algebra(diff, false),
		"sinter":      n.algebra(inter, false),
		"sunion":      n.algebra(union, false),
		"sdiffstore":  n.algebra(diff, true),
		"sinterstore": n.algebra(inter, true),
		"sunionstore": n.algebra(union, true),
		"smove":       n.smove,
		"sscan":       n.sscan,
	}
	return n
}

func (n *setNode) Receive(msg any) any {
	p, ok := msg.(*command.Payload)
	if !ok {
		return domain.Reply(domain.ErrUnknownCommand)
	}
	return n.dispatch(p)
}

func (n *setNode) sadd(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	added := 0
	for _, m := range p.Args {
		if n.store.add(m) {
			added++
		}
	}
	return itoa(added)
}

func (n *setNode) srem(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	removed := 0
	for _, m := range p.Args {
		if n.store.remove(m) {
			removed++
		}
	}
	return itoa(removed)
}

func (n *setNode) scard(_ *command.Payload) string {
	return itoa(n.store.size())
}

// sismember takes any number of members and replies 1 only when every
// one of them is present.
func (n *setNode) sismember(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	for _, m := range p.Args {
		if !n.store.has(m) {
			return "0"
		}
	}
	return "1"
}

func (n *setNode) smembers(_ *command.Payload) string {
	return joinLines(n.store.members())
}

func (n *setNode) srandmember(_ *command.Payload) string {
	ms := n.store.members()
	if len(ms) == 0 {
		return ReplyNone
	}
	return ms[rand.Intn(len(ms))]
}

func (n *setNode) spop(_ *command.Payload) string {
	ms := n.store.members()
	if len(ms) == 0 {
		return ReplyNone
	}
	m := ms[rand.Intn(len(ms))]
	n.store.remove(m)
	return m
}

// setOp folds one other set into the accumulator.
type setOp func(acc map[string]struct{}, other []string)

func union(acc map[string]struct{}, other []string) {
	for _, m := range other {
		acc[m] = struct{}{}
	}
}

func inter(acc map[string]struct{}, other []string) {
	in := make(map[string]struct{}, len(other))
	for _, m := range other {
		in[m] = struct{}{}
	}
	for m := range acc {
		if _, ok := in[m]; !ok {
			delete(acc, m)
		}
	}
}

func diff(acc map[string]struct{}, other []string) {
	for _, m := range other {
		delete(acc, m)
	}
}

// algebra builds the handler for one set operation. The fold starts
// from this node's own members, then applies op pairwise per named
// key; that order matters for the non-commutative diff. With store
// set, the result replaces this node's state and the reply is the new
// cardinality; otherwise the reply is the result itself.
func (n *setNode) algebra(op setOp, store bool) handler {
	return func(p *command.Payload) string {
		if len(p.Args) < 1 {
			return domain.Reply(domain.ErrTooFewParams)
		}

		acc := make(map[string]struct{}, n.store.size())
		for _, m := range n.store.members() {
			acc[m] = struct{}{}
		}
		for _, key := range p.Args {
			others, err := n.space.membersOf(key)
			if err != nil {
				return domain.Reply(err)
			}
			op(acc, others)
		}

		result := make([]string, 0, len(acc))
		for m := range acc {
			result = append(result, m)
		}
		sort.Strings(result)

		if store {
			n.store.replace(result)
			return itoa(len(result))
		}
		return joinLines(result)
	}
}

// smove removes the member here and hands it to dst, creating dst when
// needed. The send is fire-and-forget; dst's serial mailbox orders it.
func (n *setNode) smove(p *command.Payload) string {
	if len(p.Args) < 2 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	dst, m := p.Arg(0), p.Arg(1)
	if !n.store.remove(m) {
		return "0"
	}
	ref := n.space.Materialize(dst, domain.SetNode)
	_ = ref.Tell(command.NewPayload("sadd", dst, m))
	return "1"
}

func (n *setNode) sscan(p *command.Payload) string {
	return scanCollection(n.store.members(), p.Args)
}
