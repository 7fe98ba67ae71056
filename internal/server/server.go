package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/drawpoker/internal/randutil"
)

const shutdownTimeout = 5 * time.Second

type eventKind uint8

const (
	eventConnect eventKind = iota
	eventMessage
	eventDisconnect
)

func (k eventKind) String() string {
	switch k {
	case eventConnect:
		return "connect"
	case eventMessage:
		return "message"
	case eventDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

type event struct {
	kind eventKind
	peer Peer
	line string
}

// Server accepts TCP and WebSocket clients and feeds everything they send
// through a single event loop that owns the game state.
type Server struct {
	cfg        *Config
	logger     *log.Logger
	clock      quartz.Clock
	rng        *rand.Rand
	monitor    GameMonitor
	stats      *Stats
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader

	events chan event
	done   chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithRNG sets the random source used to shuffle decks.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

// WithMonitor adds a game monitor alongside the built in stats.
func WithMonitor(m GameMonitor) Option {
	return func(s *Server) { s.monitor = m }
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c quartz.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// NewServer creates a server from a validated config.
func NewServer(cfg *Config, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		clock:  quartz.NewReal(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		events: make(chan event, 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.New(randutil.Seed(0))
	}

	s.stats = NewStats(s.clock)
	state := NewState(cfg.Server.MaxPlayers, cfg.GameRules(), s.rng)
	monitors := []GameMonitor{s.stats}
	if s.monitor != nil {
		monitors = append(monitors, s.monitor)
	}
	s.dispatcher = NewDispatcher(state, logger, NewMultiGameMonitor(monitors...), s.stats)
	return s
}

// Stats returns the server counters.
func (s *Server) Stats() *Stats { return s.stats }

// submit hands an event to the loop. It reports false once the loop has
// stopped.
func (s *Server) submit(ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// Run processes events until ctx is cancelled, then closes every
// connection. It must be called exactly once.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		for _, p := range s.dispatcher.State().Peers() {
			_ = p.Close()
		}
	}()
	defer close(s.done)

	s.logger.Info("Event loop started", "max_players", s.cfg.Server.MaxPlayers)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Event loop stopped")
			return nil
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

func (s *Server) handle(ev event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while handling event", "event", ev.kind, "peer", ev.peer.ID(), "panic", r)
			s.drop(ev.peer)
		}
	}()

	switch ev.kind {
	case eventConnect:
		s.dispatcher.Connect(ev.peer)
	case eventMessage:
		if err := s.dispatcher.Dispatch(ev.peer, ev.line); err != nil {
			s.logger.Warn("Closing connection after error", "peer", ev.peer.ID(), "line", ev.line, "error", err)
			s.drop(ev.peer)
		}
	case eventDisconnect:
		s.dispatcher.Disconnect(ev.peer)
		_ = ev.peer.Close()
	}
}

// drop closes a connection the server gave up on and reconciles its game.
func (s *Server) drop(p Peer) {
	s.stats.ConnectionDropped()
	_ = p.Close()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while releasing connection", "peer", p.ID(), "panic", r)
		}
	}()
	s.dispatcher.Disconnect(p)
}

// ServeTCP accepts clients on ln until ctx is cancelled.
func (s *Server) ServeTCP(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	s.logger.Info("Accepting TCP clients", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.serveTCP(conn)
	}
}

func (s *Server) serveTCP(conn net.Conn) {
	c := newConnection(conn, s.cfg.Server.MaxMessageBytes, s.logger, s.clock)
	if !s.submit(event{kind: eventConnect, peer: c}) {
		_ = c.Close()
		return
	}
	go c.writePump()
	c.readPump(s)
}

// Handler returns the HTTP routes: the WebSocket endpoint and the admin
// pages.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newWSConnection(conn, s.cfg.Server.MaxMessageBytes, s.logger, s.clock)
	if !s.submit(event{kind: eventConnect, peer: c}) {
		_ = c.Close()
		return
	}
	go c.writePump()
	go c.readPump(s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.stats.Snapshot().WriteText(w); err != nil {
		s.logger.Debug("Failed to write stats", "error", err)
	}
}

// ListenAndServe binds the configured addresses and serves until ctx is
// cancelled or a listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Address, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error { return s.ServeTCP(ctx, ln) })

	if addr := s.cfg.Server.HTTPAddress; addr != "" {
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           s.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			s.logger.Info("Starting HTTP server", "addr", addr)
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
