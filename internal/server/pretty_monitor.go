package server

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/drawpoker/internal/display"
)

// PrettyMonitor prints every game result as a styled table.
type PrettyMonitor struct {
	writer    io.Writer
	styles    display.Styles
	completed int
}

// NewPrettyMonitor creates a monitor writing to w, or stdout when w is nil.
func NewPrettyMonitor(w io.Writer, styles display.Styles) *PrettyMonitor {
	if w == nil {
		w = os.Stdout
	}
	return &PrettyMonitor{writer: w, styles: styles}
}

func (m *PrettyMonitor) OnGameStart(start GameStart) {
	fmt.Fprintf(m.writer, "%s %s\n",
		m.styles.Info.Render(fmt.Sprintf("game %d started:", start.GameID)),
		strings.Join(start.Players, ", "))
}

func (m *PrettyMonitor) OnGameComplete(outcome GameOutcome) {
	if outcome.Aborted {
		fmt.Fprintln(m.writer, m.styles.Warning.Render(fmt.Sprintf("game %d aborted with %d staked", outcome.GameID, outcome.Stake)))
		return
	}
	m.completed++

	rows := make([]display.Row, 0, len(outcome.Seats))
	for _, seat := range outcome.Seats {
		row := display.Row{
			Name:   seat.Name,
			Cards:  seat.Cards,
			Cash:   seat.Cash,
			Winner: seat.PlayerID == outcome.WinnerID,
			Folded: seat.Folded,
		}
		switch {
		case seat.Scored:
			row.Layout = seat.Layout.Describe()
		case seat.Folded:
			row.Layout = "folded"
		default:
			row.Layout = "-"
		}
		if row.Winner {
			row.Comment = fmt.Sprintf("wins %d", outcome.Stake)
		}
		rows = append(rows, row)
	}

	title := fmt.Sprintf("Game %d (#%d)", outcome.GameID, m.completed)
	fmt.Fprintln(m.writer)
	fmt.Fprintln(m.writer, m.styles.Table(title, rows))
	if outcome.FoldWin {
		fmt.Fprintln(m.writer, m.styles.Info.Render(outcome.WinnerName+" won uncontested"))
	}
}
