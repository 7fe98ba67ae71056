package game

import (
	"fmt"

	"github.com/lox/drawpoker/poker"
)

// ChangeCard swaps the card at index for the top of the deck. The old card
// leaves the hand and goes to the front of the deck, so it is the last card
// that could ever be drawn again.
func (g *Game) ChangeCard(id, index int) (poker.Card, error) {
	p, ok := g.players[id]
	if !ok {
		return poker.Card{}, ErrNotSeated
	}
	if p.Exchanges >= g.rules.MaxExchanges {
		return poker.Card{}, ErrExchangeLimit
	}
	if index < 0 || index >= len(p.Hand) {
		return poker.Card{}, fmt.Errorf("index %d: %w", index, ErrBadCardIndex)
	}
	drawn, err := g.deck.PopTop()
	if err != nil {
		return poker.Card{}, fmt.Errorf("exchange for player %d: %w", id, err)
	}
	g.deck.PushFront(p.Hand[index])
	p.Hand[index] = drawn
	p.Exchanges++
	return drawn, nil
}

// AdvanceExchange moves play on after a player finishes exchanging. While
// the queue holds players the next one is prompted (StepChange). Otherwise
// the minimum bet resets and the second auction opens (StepSecondAuction).
func (g *Game) AdvanceExchange() (Step, int) {
	if next := g.NextFromQueue(); next != -1 {
		return StepChange, next
	}
	g.stage = SecondAuction
	g.minimumBet = g.rules.MinimumBet
	if first := g.RebuildQueue(); first != -1 {
		return StepSecondAuction, first
	}
	g.EnterShowdown()
	return StepShowdown, -1
}
