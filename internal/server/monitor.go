package server

import (
	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/poker"
)

// GameMonitor receives notifications about games as the event loop drives
// them. Monitors are called from the event loop goroutine and must not block.
type GameMonitor interface {
	// OnGameStart is called when the last seat of a game is taken.
	OnGameStart(start GameStart)

	// OnGameComplete is called after a game is decided or aborted.
	OnGameComplete(outcome GameOutcome)
}

// GameStart describes a game that just filled up.
type GameStart struct {
	GameID  int
	Players []string // join order
}

// GameOutcome describes how a game ended.
type GameOutcome struct {
	GameID     int
	Aborted    bool
	FoldWin    bool
	WinnerID   int
	WinnerName string
	Layout     poker.Layout // winning layout, unset on a fold win
	Stake      int
	Seats      []SeatOutcome
}

// SeatOutcome is one player's part in a finished game.
type SeatOutcome struct {
	PlayerID int
	Name     string
	Cards    []poker.Card
	Layout   poker.Layout
	Scored   bool // Layout is only meaningful when the hand was compared
	Folded   bool
	Cash     int
}

func newGameStart(g *game.Game) GameStart {
	start := GameStart{GameID: g.ID()}
	for _, p := range g.Players() {
		start.Players = append(start.Players, p.Name)
	}
	return start
}

func newGameOutcome(g *game.Game, res game.Result) GameOutcome {
	out := GameOutcome{
		GameID:     g.ID(),
		FoldWin:    res.FoldWin,
		WinnerID:   res.Winner.ID,
		WinnerName: res.Winner.Name,
		Stake:      res.Stake,
	}
	if !res.FoldWin {
		out.Layout = res.WinningHand.Layout
	}
	for _, p := range g.Players() {
		seat := SeatOutcome{
			PlayerID: p.ID,
			Name:     p.Name,
			Cards:    p.HandCopy(),
			Folded:   p.Folded,
			Cash:     p.Cash,
		}
		if h, ok := res.HandOf(p.ID); ok {
			seat.Layout = h.Layout
			seat.Scored = true
		}
		out.Seats = append(out.Seats, seat)
	}
	return out
}

func newAbortedOutcome(g *game.Game) GameOutcome {
	out := GameOutcome{GameID: g.ID(), Aborted: true, WinnerID: -1, Stake: g.Stake()}
	for _, p := range g.Players() {
		out.Seats = append(out.Seats, SeatOutcome{PlayerID: p.ID, Name: p.Name, Folded: p.Folded, Cash: p.Cash})
	}
	return out
}

// NullGameMonitor is a no-op implementation.
type NullGameMonitor struct{}

func (NullGameMonitor) OnGameStart(GameStart)      {}
func (NullGameMonitor) OnGameComplete(GameOutcome) {}

// MultiGameMonitor fans events out to several monitors.
type MultiGameMonitor struct {
	monitors []GameMonitor
}

// NewMultiGameMonitor builds a composite monitor, pruning nil entries and
// returning a NullGameMonitor when nothing is left.
func NewMultiGameMonitor(monitors ...GameMonitor) GameMonitor {
	filtered := make([]GameMonitor, 0, len(monitors))
	for _, monitor := range monitors {
		if monitor != nil {
			filtered = append(filtered, monitor)
		}
	}

	switch len(filtered) {
	case 0:
		return NullGameMonitor{}
	case 1:
		return filtered[0]
	default:
		return MultiGameMonitor{monitors: filtered}
	}
}

func (m MultiGameMonitor) OnGameStart(start GameStart) {
	for _, monitor := range m.monitors {
		monitor.OnGameStart(start)
	}
}

func (m MultiGameMonitor) OnGameComplete(outcome GameOutcome) {
	for _, monitor := range m.monitors {
		monitor.OnGameComplete(outcome)
	}
}
