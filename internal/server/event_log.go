package server

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/lox/drawpoker/poker"
)

// EventLog is a GameMonitor that appends one JSON object per game event to
// a writer, for offline analysis of long running servers.
type EventLog struct {
	logger zerolog.Logger
}

// NewEventLog creates an event log writing to w.
func NewEventLog(w io.Writer) *EventLog {
	return &EventLog{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

func (e *EventLog) OnGameStart(start GameStart) {
	e.logger.Log().
		Str("event", "game_start").
		Int("game", start.GameID).
		Strs("players", start.Players).
		Send()
}

func (e *EventLog) OnGameComplete(outcome GameOutcome) {
	if outcome.Aborted {
		e.logger.Log().
			Str("event", "game_aborted").
			Int("game", outcome.GameID).
			Int("stake", outcome.Stake).
			Send()
		return
	}

	seats := zerolog.Arr()
	for _, seat := range outcome.Seats {
		d := zerolog.Dict().
			Int("player", seat.PlayerID).
			Str("name", seat.Name).
			Str("cards", poker.FormatCards(seat.Cards)).
			Bool("folded", seat.Folded).
			Int("cash", seat.Cash)
		if seat.Scored {
			d = d.Str("layout", seat.Layout.String())
		}
		seats = seats.Dict(d)
	}

	ev := e.logger.Log().
		Str("event", "game_complete").
		Int("game", outcome.GameID).
		Int("winner_id", outcome.WinnerID).
		Str("winner", outcome.WinnerName).
		Bool("fold_win", outcome.FoldWin).
		Int("stake", outcome.Stake)
	if !outcome.FoldWin {
		ev = ev.Str("layout", outcome.Layout.String())
	}
	ev.Array("seats", seats).Send()
}
