package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yndnr/keymesh-go/internal/core/command"
	"github.com/yndnr/keymesh-go/internal/core/domain"
	"github.com/yndnr/keymesh-go/internal/core/node"
	"github.com/yndnr/keymesh-go/pkg/actor"
)

// DefaultAskTimeout bounds each ask the session sends to a node. The
// fan-out legs of mget and msetnx are asks of their own, each with its
// own budget.
const DefaultAskTimeout = 10 * time.Second

// ReplyPong answers ping.
const ReplyPong = "PONG"

// Session executes command lines for one client connection. It holds
// no keyspace state of its own; everything goes through the space.
type Session struct {
	id         string
	space      *node.Space
	askTimeout time.Duration
	onTimeout  func()
}

// Option configures a Session.
type Option func(*Session)

// WithID attaches a connection identifier, carried for logging only.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithAskTimeout sets the budget of each ask the session sends.
func WithAskTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.askTimeout = d
		}
	}
}

// WithTimeoutObserver registers fn to be called once per ask that
// exhausts the ask budget. The transport uses it to count timeouts.
func WithTimeoutObserver(fn func()) Option {
	return func(s *Session) {
		s.onTimeout = fn
	}
}

// New creates a session bound to a keyspace.
func New(space *node.Space, opts ...Option) *Session {
	s := &Session{
		space:      space,
		askTimeout: DefaultAskTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ID returns the connection identifier, if any.
func (s *Session) ID() string {
	return s.id
}

// Execute runs one command line and returns the reply. closed is true
// after quit; the caller should stop reading and drop the connection.
func (s *Session) Execute(line string) (reply string, closed bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", false
	}

	p := command.Parse(tokens)
	switch {
	case p.NodeType == "":
		return domain.Reply(domain.ErrUnknownCommand), false
	case p.IsClientCommand:
		return s.clientCommand(p)
	case p.IsKeyCommand:
		return s.ask(s.space.Directory(), p), false
	default:
		return s.keyCommand(p), false
	}
}

// keyCommand routes one key-targeted command: enforce the existence
// pre-conditions, materialize the node when allowed, deliver, relay.
func (s *Session) keyCommand(p *command.Payload) string {
	if p.Key == "" {
		return domain.Reply(domain.ErrTooFewParams)
	}

	_, live := s.space.Resolve(p.Key)
	if command.MustExist(p.Command) && !live {
		return "0"
	}
	if command.CantExist(p.Command) && live {
		return "0"
	}

	ref := s.space.Materialize(p.Key, p.NodeType)
	return s.ask(ref, p)
}

func (s *Session) clientCommand(p *command.Payload) (string, bool) {
	switch p.Command {
	case "ping":
		return ReplyPong, false
	case "quit":
		return node.ReplyOK, true
	case "mget":
		return s.mget(p), false
	case "mset":
		return s.mset(p), false
	case "msetnx":
		return s.msetnx(p), false
	}
	return domain.Reply(domain.ErrUnknownCommand), false
}

// mget gathers get replies in argument order. A key with no live node
// contributes the canonical missing marker without creating one.
func (s *Session) mget(p *command.Payload) string {
	if len(p.Args) < 1 {
		return domain.Reply(domain.ErrTooFewParams)
	}

	vals := make([]string, 0, len(p.Args))
	for _, key := range p.Args {
		ref, ok := s.space.Resolve(key)
		if !ok {
			vals = append(vals, node.ReplyNone)
			continue
		}
		vals = append(vals, s.ask(ref, command.NewPayload("get", key)))
	}
	return strings.Join(vals, "\n")
}

// mset scatters one set per pair. The sends are fire-and-forget; each
// destination orders them in its own mailbox, so a later get on any of
// the keys observes its value once that node drains the send.
func (s *Session) mset(p *command.Payload) string {
	if len(p.Args) < 2 || len(p.Args)%2 != 0 {
		return domain.Reply(domain.ErrTooFewParams)
	}

	for i := 0; i+1 < len(p.Args); i += 2 {
		key, val := p.Args[i], p.Args[i+1]
		ref := s.space.Materialize(key, domain.StringNode)
		_ = ref.Tell(command.NewPayload("set", key, val))
	}
	return node.ReplyOK
}

// msetnx writes all pairs only when none of the keys exist. The
// existence check and the writes are not one atomic step across keys;
// a racing creation between them loses its value to the mset leg.
func (s *Session) msetnx(p *command.Payload) string {
	if len(p.Args) < 2 || len(p.Args)%2 != 0 {
		return domain.Reply(domain.ErrTooFewParams)
	}

	for i := 0; i < len(p.Args); i += 2 {
		if reply := s.ask(s.space.Directory(), command.NewPayload("exists", command.DirectoryKey, p.Args[i])); reply == "1" {
			return "0"
		}
	}
	if reply := s.mset(p); reply != node.ReplyOK {
		return reply
	}
	return "1"
}

// ask delivers p and waits for the reply within the session budget.
func (s *Session) ask(ref *actor.Ref, p *command.Payload) string {
	ctx, cancel := context.WithTimeout(context.Background(), s.askTimeout)
	defer cancel()

	reply, err := ref.Ask(ctx, p)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			if s.onTimeout != nil {
				s.onTimeout()
			}
			return domain.Reply(domain.ErrAskTimeout)
		}
		return domain.Reply(domain.ErrActorStopped)
	}
	text, _ := reply.(string)
	return text
}
