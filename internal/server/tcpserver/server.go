package tcpserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/keymesh-go/internal/core/node"
	"github.com/yndnr/keymesh-go/internal/core/session"
	"github.com/yndnr/keymesh-go/internal/telemetry/logger"
	"github.com/yndnr/keymesh-go/internal/telemetry/metric"
)

// MaxLineLen caps one command line. A longer line closes the
// connection; with no length-prefixed framing there is no way to
// resynchronize after an oversized request.
const MaxLineLen = 64 * 1024

// Config holds the TCP server configuration.
type Config struct {
	// Addr is the listen address.
	Addr string
	// ReadTimeout is the timeout for reading a command line once its
	// first byte has arrived. Helps against slowloris clients.
	ReadTimeout time.Duration
	// WriteTimeout is the timeout for writing a reply.
	WriteTimeout time.Duration
	// IdleTimeout is the timeout for idle connections between commands.
	IdleTimeout time.Duration
	// RateLimit is the maximum number of commands per second per IP.
	// 0 disables rate limiting.
	RateLimit int
	// SessionTimeout bounds each ask the session sends to a node.
	SessionTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "localhost:9999",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    0,
	}
}

// Server accepts client connections and drives one session per
// connection against the shared keyspace.
type Server struct {
	cfg     *Config
	space   *node.Space
	log     logger.Logger
	metrics *metric.Registry
	limiter *ipLimiter

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// Conn is one client connection with its buffered endpoints.
type Conn struct {
	netConn net.Conn
	br      *bufio.Reader
	bw      *bufio.Writer
	closed  atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		netConn: c,
		br:      bufio.NewReader(c),
		bw:      bufio.NewWriter(c),
	}
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a TCP server over the given keyspace. metrics may be nil.
func New(cfg *Config, space *node.Space, log logger.Logger, metrics *metric.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}

	s := &Server{
		cfg:     cfg,
		space:   space,
		log:     log,
		metrics: metrics,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit)
	}
	return s
}

// Start begins listening and accepting connections.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting tcp server", "address", s.cfg.Addr)
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.log.Error("tcp server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address, once Start has succeeded.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, newConn(c))
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	connID := ulid.Make().String()
	log := s.log.With("conn_id", connID, "remote", c.RemoteAddr().String())
	log.Debug("connection opened")

	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
		defer s.metrics.ConnectionsActive.Dec()
	}

	sessOpts := []session.Option{session.WithID(connID)}
	if s.cfg.SessionTimeout > 0 {
		sessOpts = append(sessOpts, session.WithAskTimeout(s.cfg.SessionTimeout))
	}
	if s.metrics != nil {
		sessOpts = append(sessOpts, session.WithTimeoutObserver(s.metrics.AsksTimedOut.Inc))
	}
	sess := session.New(s.space, sessOpts...)

	ip := clientIP(c.RemoteAddr())

	readTimeout := s.cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	idleTimeout := s.cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 5 * time.Minute
	}

	for {
		// First byte: allow idle timeout (connection can stay idle
		// between commands).
		if err := c.netConn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return
		}
		if _, err := c.br.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("connection closed by peer")
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection timed out")
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}

		// After first byte: tighten to the per-command read timeout.
		if err := c.netConn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}

		line, err := readLine(c.br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection timed out")
				return
			}
			if errors.Is(err, errLineTooLong) {
				log.Warn("line length limit exceeded")
				_ = s.writeReply(c, "line too long", writeTimeout)
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}

		if s.limiter != nil && !s.limiter.allow(ip) {
			if s.metrics != nil {
				s.metrics.RateLimited.Inc()
			}
			if err := s.writeReply(c, "rate limit exceeded", writeTimeout); err != nil {
				return
			}
			continue
		}

		_ = ctx // reserved for future cancellation integration

		start := time.Now()
		reply, closed := sess.Execute(line)
		if s.metrics != nil {
			if cmd := commandName(line); cmd != "" {
				s.metrics.CommandsTotal.WithLabelValues(cmd).Inc()
				s.metrics.CommandDuration.WithLabelValues(cmd).Observe(time.Since(start).Seconds())
			}
		}

		if err := s.writeReply(c, reply, writeTimeout); err != nil {
			return
		}
		if closed {
			log.Debug("connection closed by quit")
			return
		}
	}
}

// writeReply writes one reply line under the write deadline.
func (s *Server) writeReply(c *Conn, reply string, writeTimeout time.Duration) error {
	if err := c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if _, err := c.bw.WriteString(reply); err != nil {
		return err
	}
	if err := c.bw.WriteByte('\n'); err != nil {
		return err
	}
	return c.bw.Flush()
}

var errLineTooLong = errors.New("tcpserver: line too long")

// readLine reads one command line without its trailing newline. A
// trailing carriage return is stripped for telnet-style clients.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if len(line) >= MaxLineLen {
			return "", errLineTooLong
		}
		return "", err
	}
	if len(line) > MaxLineLen {
		return "", errLineTooLong
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// commandName extracts the lowercase command token for metrics labels.
func commandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// clientIP strips the port from a remote address.
func clientIP(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
