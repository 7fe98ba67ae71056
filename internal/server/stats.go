package server

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/drawpoker/internal/fileutil"
	"github.com/lox/drawpoker/poker"
)

// Stats counts what the server has done since it started. The event loop
// writes to it and the admin HTTP handlers read it, so every method locks.
// All methods are safe on a nil *Stats.
type Stats struct {
	mu      sync.RWMutex
	clock   quartz.Clock
	started time.Time

	connections      int
	peakConnections  int
	totalConnections int
	players          int
	logins           int
	messages         int
	protocolErrors   int
	dropped          int

	gamesCreated   int
	gamesStarted   int
	gamesCompleted int
	gamesAborted   int
	foldWins       int
	stakePaid      int
	winningLayouts map[poker.Layout]int
}

// NewStats starts the uptime clock.
func NewStats(clock quartz.Clock) *Stats {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Stats{
		clock:          clock,
		started:        clock.Now(),
		winningLayouts: make(map[poker.Layout]int),
	}
}

func (s *Stats) ConnectionOpened() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections++
	s.totalConnections++
	s.peakConnections = max(s.peakConnections, s.connections)
}

// ConnectionClosed records a disconnect; loggedIn is true when a player was
// bound to the connection.
func (s *Stats) ConnectionClosed(loggedIn bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections--
	if loggedIn {
		s.players--
	}
}

// ConnectionDropped records a connection closed by the server after an
// internal error.
func (s *Stats) ConnectionDropped() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}

func (s *Stats) PlayerLoggedIn() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.players++
	s.logins++
	s.mu.Unlock()
}

func (s *Stats) MessageHandled() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.messages++
	s.mu.Unlock()
}

func (s *Stats) ProtocolError() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.protocolErrors++
	s.mu.Unlock()
}

func (s *Stats) GameCreated() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.gamesCreated++
	s.mu.Unlock()
}

// OnGameStart implements GameMonitor.
func (s *Stats) OnGameStart(GameStart) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.gamesStarted++
	s.mu.Unlock()
}

// OnGameComplete implements GameMonitor.
func (s *Stats) OnGameComplete(outcome GameOutcome) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if outcome.Aborted {
		s.gamesAborted++
		return
	}
	s.gamesCompleted++
	s.stakePaid += outcome.Stake
	if outcome.FoldWin {
		s.foldWins++
		return
	}
	s.winningLayouts[outcome.Layout]++
}

// Uptime returns the time since the server started.
func (s *Stats) Uptime() time.Duration {
	if s == nil {
		return 0
	}
	return s.clock.Since(s.started)
}

// StatsSnapshot is a point in time copy of Stats.
type StatsSnapshot struct {
	StartedAt        time.Time      `json:"started_at"`
	UptimeSeconds    float64        `json:"uptime_seconds"`
	Connections      int            `json:"connections"`
	PeakConnections  int            `json:"peak_connections"`
	TotalConnections int            `json:"total_connections"`
	Players          int            `json:"players"`
	Logins           int            `json:"logins"`
	Messages         int            `json:"messages"`
	ProtocolErrors   int            `json:"protocol_errors"`
	Dropped          int            `json:"dropped_connections"`
	GamesCreated     int            `json:"games_created"`
	GamesStarted     int            `json:"games_started"`
	GamesCompleted   int            `json:"games_completed"`
	GamesAborted     int            `json:"games_aborted"`
	FoldWins         int            `json:"fold_wins"`
	StakePaid        int            `json:"stake_paid"`
	WinningLayouts   map[string]int `json:"winning_layouts,omitempty"`
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := StatsSnapshot{
		StartedAt:        s.started,
		UptimeSeconds:    s.Uptime().Seconds(),
		Connections:      s.connections,
		PeakConnections:  s.peakConnections,
		TotalConnections: s.totalConnections,
		Players:          s.players,
		Logins:           s.logins,
		Messages:         s.messages,
		ProtocolErrors:   s.protocolErrors,
		Dropped:          s.dropped,
		GamesCreated:     s.gamesCreated,
		GamesStarted:     s.gamesStarted,
		GamesCompleted:   s.gamesCompleted,
		GamesAborted:     s.gamesAborted,
		FoldWins:         s.foldWins,
		StakePaid:        s.stakePaid,
	}
	if len(s.winningLayouts) > 0 {
		snap.WinningLayouts = make(map[string]int, len(s.winningLayouts))
		for layout, n := range s.winningLayouts {
			snap.WinningLayouts[layout.String()] = n
		}
	}
	return snap
}

// WriteText renders the snapshot as the plain text /stats page.
func (snap StatsSnapshot) WriteText(w io.Writer) error {
	lines := []struct {
		label string
		value any
	}{
		{"uptime", time.Duration(snap.UptimeSeconds * float64(time.Second)).Round(time.Second)},
		{"connections", snap.Connections},
		{"peak_connections", snap.PeakConnections},
		{"total_connections", snap.TotalConnections},
		{"players", snap.Players},
		{"logins", snap.Logins},
		{"messages", snap.Messages},
		{"protocol_errors", snap.ProtocolErrors},
		{"dropped_connections", snap.Dropped},
		{"games_created", snap.GamesCreated},
		{"games_started", snap.GamesStarted},
		{"games_completed", snap.GamesCompleted},
		{"games_aborted", snap.GamesAborted},
		{"fold_wins", snap.FoldWins},
		{"stake_paid", snap.StakePaid},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-20s %v\n", l.label, l.value); err != nil {
			return err
		}
	}

	layouts := make([]string, 0, len(snap.WinningLayouts))
	for name := range snap.WinningLayouts {
		layouts = append(layouts, name)
	}
	sort.Strings(layouts)
	for _, name := range layouts {
		if _, err := fmt.Fprintf(w, "win[%s] %d\n", name, snap.WinningLayouts[name]); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshotFile stores the snapshot as JSON, replacing path atomically.
func (s *Stats) WriteSnapshotFile(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write stats %s: %w", path, err)
	}
	return nil
}
