package actor

import (
	"context"

	"github.com/yndnr/keymesh-go/pkg/cmap"
)

// DefaultMailboxDepth is the default capacity of an actor mailbox.
const DefaultMailboxDepth = 64

// System owns the actor registry. Actors are addressed by name; the
// registry holds the only long-lived references to them.
type System struct {
	registry     *cmap.Map[*Ref]
	mailboxDepth int
}

// Option configures the System.
type Option func(*System)

// WithMailboxDepth sets the mailbox capacity for spawned actors.
func WithMailboxDepth(depth int) Option {
	return func(s *System) {
		if depth > 0 {
			s.mailboxDepth = depth
		}
	}
}

// WithRegistryShards sets the shard count of the actor registry.
func WithRegistryShards(shards int) Option {
	return func(s *System) {
		s.registry = cmap.NewWithShards[*Ref](shards)
	}
}

// NewSystem creates a new actor system.
func NewSystem(opts ...Option) *System {
	s := &System{
		registry:     cmap.New[*Ref](),
		mailboxDepth: DefaultMailboxDepth,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// newRef allocates the mailbox and control channels for one actor.
func (s *System) newRef(name string) *Ref {
	return &Ref{
		name:    name,
		mailbox: make(chan envelope, s.mailboxDepth),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Spawn registers and starts an actor under name. The previous actor
// registered under the same name, if any, is stopped first.
func (s *System) Spawn(name string, recv Receiver) *Ref {
	ref := s.newRef(name)
	go ref.run(recv)
	if prev, ok := s.registry.Get(name); ok {
		prev.stop()
	}
	s.registry.Set(name, ref)
	return ref
}

// GetOrSpawn returns the actor registered under name, starting a new
// one from factory if none exists. The factory runs under the registry
// shard lock, so exactly one actor is ever materialized per name.
// The second return value reports whether the actor already existed.
func (s *System) GetOrSpawn(name string, factory func() Receiver) (*Ref, bool) {
	ref, existed := s.registry.GetOrCompute(name, func() *Ref {
		r := s.newRef(name)
		go r.run(factory())
		return r
	})
	return ref, existed
}

// Lookup resolves an actor by name.
func (s *System) Lookup(name string) (*Ref, bool) {
	return s.registry.Get(name)
}

// Stop terminates the actor registered under name and removes it from
// the registry. Messages queued in its mailbox are discarded.
func (s *System) Stop(name string) bool {
	ref, ok := s.registry.Pop(name)
	if !ok {
		return false
	}
	ref.stop()
	return true
}

// Count returns the number of registered actors.
func (s *System) Count() int {
	return s.registry.Count()
}

// Names returns the names of all registered actors.
func (s *System) Names() []string {
	return s.registry.Keys()
}

// Shutdown stops every registered actor and waits for their goroutines
// to exit or the context to expire.
func (s *System) Shutdown(ctx context.Context) error {
	refs := make([]*Ref, 0, s.registry.Count())
	s.registry.Range(func(_ string, ref *Ref) bool {
		refs = append(refs, ref)
		return true
	})
	s.registry.Clear()

	for _, ref := range refs {
		ref.stop()
	}
	for _, ref := range refs {
		select {
		case <-ref.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
