package node

import (
	"math/rand"

	iradix "github.com/hashicorp/go-immutable-radix/v2"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// radixStore is the memberStore of the key directory. The radix index
// keeps keys in lexical order, so key scans walk a stable order
// without sorting the whole keyspace per call.
type radixStore struct {
	tree *iradix.Tree[struct{}]
}

func newRadixStore() *radixStore {
	return &radixStore{tree: iradix.New[struct{}]()}
}

func (s *radixStore) add(m string) bool {
	tree, _, updated := s.tree.Insert([]byte(m), struct{}{})
	s.tree = tree
	return !updated
}

func (s *radixStore) remove(m string) bool {
	tree, _, deleted := s.tree.Delete([]byte(m))
	s.tree = tree
	return deleted
}

func (s *radixStore) has(m string) bool {
	_, ok := s.tree.Get([]byte(m))
	return ok
}

func (s *radixStore) members() []string {
	ms := make([]string, 0, s.tree.Len())
	it := s.tree.Root().Iterator()
	for key, _, ok := it.Next(); ok; key, _, ok = it.Next() {
		ms = append(ms, string(key))
	}
	return ms
}

func (s *radixStore) size() int {
	return s.tree.Len()
}

func (s *radixStore) replace(ms []string) {
	tree := iradix.New[struct{}]()
	for _, m := range ms {
		tree, _, _ = tree.Insert([]byte(m), struct{}{})
	}
	s.tree = tree
}

// directory is the key directory: a set-shaped node registered at the
// well-known address "keys" whose members are the live keys. It takes
// the full set vocabulary and chains a key-command overlay on top of
// it, so both "sadd keys k" and "exists k" land here.
type directory struct {
	*setNode
}

func newDirectory(space *Space) *directory {
	d := &directory{setNode: newSetNodeWith(space, newRadixStore())}
	d.nodeType = domain.KeyNode
	d.extra = domain.SetNode

	d.handlers["add"] = d.addKey
	d.handlers["keys"] = d.keys
	d.handlers["scan"] = d.scan
	d.handlers["exists"] = d.exists
	d.handlers["randomkey"] = d.randomkey
	d.handlers["del"] = d.del
	return d
}

// addKey registers a freshly materialized key. Sent by the space, not
// by clients, though nothing stops a client from issuing it.
func (d *directory) addKey(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	return boolReply(d.store.add(p.Arg(0)))
}

func (d *directory) keys(_ *command.Payload) string {
	return joinLines(d.store.members())
}

func (d *directory) scan(p *command.Payload) string {
	return scanCollection(d.store.members(), p.Args)
}

// exists replies 1 only when every queried key is live.
func (d *directory) exists(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	for _, k := range p.Args {
		if !d.store.has(k) {
			return "0"
		}
	}
	return "1"
}

func (d *directory) randomkey(_ *command.Payload) string {
	ms := d.store.members()
	if len(ms) == 0 {
		return ReplyNone
	}
	return ms[rand.Intn(len(ms))]
}

// del unregisters each named key and signals its node to terminate.
// The reply is the count of keys that were live at the time of the
// call. Removal precedes termination, so a concurrent exists never
// observes a key whose node is already gone.
func (d *directory) del(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}
	dropped := 0
	for _, k := range p.Args {
		if !d.store.remove(k) {
			continue
		}
		d.space.DropKey(k)
		dropped++
	}
	return itoa(dropped)
}
