package node

import (
	"context"
	"errors"
	"time"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
	"github.com/yndnr/keymesh-go/pkg/actor"
)

// DefaultAskTimeout bounds asks issued from inside a node handler
// toward another node. The per-connection session uses its own, longer
// budget for client-side fan-out.
const DefaultAskTimeout = 2 * time.Second

// Space is the keyspace. It resolves keys to live node actors,
// materializes missing ones with the right type, and keeps the key
// directory in sync with actor existence.
//
// Space is the only way nodes reach each other: cross-key commands
// (set algebra, smove, rpoplpush) go through it by key name, never by
// direct reference to another node's state.
type Space struct {
	sys        *actor.System
	askTimeout time.Duration
	directory  *actor.Ref
}

// SpaceOption configures a Space.
type SpaceOption func(*Space)

// WithAskTimeout sets the budget for node-to-node asks.
func WithAskTimeout(d time.Duration) SpaceOption {
	return func(s *Space) {
		if d > 0 {
			s.askTimeout = d
		}
	}
}

// NewSpace creates the keyspace on top of an actor system and spawns
// the key directory at its well-known address.
func NewSpace(sys *actor.System, opts ...SpaceOption) *Space {
	s := &Space{
		sys:        sys,
		askTimeout: DefaultAskTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.directory = sys.Spawn(command.DirectoryKey, newDirectory(s))
	return s
}

// Directory returns the key directory actor.
func (s *Space) Directory() *actor.Ref {
	return s.directory
}

// Resolve returns the live actor for key, if any.
func (s *Space) Resolve(key string) (*actor.Ref, bool) {
	if key == command.DirectoryKey {
		return s.directory, true
	}
	return s.sys.Lookup(key)
}

// Materialize returns the actor for key, creating one of type t when
// the key does not exist yet. A newly created key is registered in the
// directory before Materialize returns, so an exists issued right after
// observes it.
func (s *Space) Materialize(key string, t domain.NodeType) *actor.Ref {
	ref, existed := s.sys.GetOrSpawn(key, func() actor.Receiver {
		return s.newNode(t)
	})
	if !existed {
		ctx, cancel := context.WithTimeout(context.Background(), s.askTimeout)
		defer cancel()
		_, _ = s.directory.Ask(ctx, command.NewPayload("add", command.DirectoryKey, key))
	}
	return ref
}

// DropKey terminates the actor behind key and unregisters it. Queued
// commands in its mailbox are discarded. Directory membership is the
// caller's concern.
func (s *Space) DropKey(key string) bool {
	if key == command.DirectoryKey {
		return false
	}
	return s.sys.Stop(key)
}

// newNode builds a fresh zero-state node of type t.
func (s *Space) newNode(t domain.NodeType) actor.Receiver {
	switch t {
	case domain.HashNode:
		return newHashNode()
	case domain.ListNode:
		return newListNode(s)
	case domain.SetNode:
		return newSetNode(s)
	default:
		return newStringNode()
	}
}

// ask delivers p to the actor behind key and waits for the reply.
// ok is false when no actor exists under key.
func (s *Space) ask(key string, p *command.Payload) (string, bool, error) {
	ref, ok := s.Resolve(key)
	if !ok {
		return "", false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.askTimeout)
	defer cancel()

	reply, err := ref.Ask(ctx, p)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", true, domain.ErrAskTimeout.WithCause(err)
		}
		return "", true, domain.ErrActorStopped.WithCause(err)
	}
	text, _ := reply.(string)
	return text, true, nil
}

// membersOf fetches the member set of key. A missing key yields the
// empty set, which is what set algebra wants.
func (s *Space) membersOf(key string) ([]string, error) {
	reply, ok, err := s.ask(key, command.NewPayload("smembers", key))
	if err != nil {
		return nil, err
	}
	if !ok || reply == "" {
		return nil, nil
	}
	return splitLines(reply), nil
}
