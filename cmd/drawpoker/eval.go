package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/drawpoker/internal/display"
	"github.com/lox/drawpoker/poker"
)

// EvalCmd classifies hands with the same evaluator the server uses at
// showdown.
type EvalCmd struct {
	Hands []string `arg:"" help:"Hands of five RANK-SUIT cards, one quoted argument per hand"`
	Plain bool     `help:"Disable colours"`
}

func (c *EvalCmd) Run() error {
	styles := display.DefaultStyles()
	if c.Plain {
		styles = display.PlainStyles()
	}
	return c.run(os.Stdout, styles)
}

func (c *EvalCmd) run(w io.Writer, styles display.Styles) error {
	seats := make([]poker.Seat, 0, len(c.Hands))
	var all []poker.Card
	for i, arg := range c.Hands {
		cards, err := poker.ParseCards(strings.Fields(arg)...)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		seats = append(seats, poker.Seat{PlayerID: i, Hand: cards})
		all = append(all, cards...)
	}
	// Hands are dealt from one deck, so no card may appear twice.
	if _, err := poker.NewDeckFrom(all, nil); err != nil {
		return err
	}

	hands, err := poker.EvaluateAll(seats)
	if err != nil {
		return err
	}
	// EvaluateAll sorts weakest first; print in argument order.
	byID := make(map[int]poker.EvaluatedHand, len(hands))
	for _, h := range hands {
		byID[h.PlayerID] = h
	}
	for i := range seats {
		fmt.Fprintln(w, styles.Evaluation(byID[i]))
	}

	if len(hands) > 1 {
		best, _ := poker.Best(hands, func(int) bool { return true })
		fmt.Fprintln(w, styles.Winner.Render(fmt.Sprintf("hand %d wins with %s", best.PlayerID+1, best.Layout.Describe())))
	}
	return nil
}
