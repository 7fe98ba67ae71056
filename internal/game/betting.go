package game

import "fmt"

// Action is a betting decision.
type Action int

const (
	Fold Action = iota
	Call
	Raise
	AllIn
)

var actionNames = [...]string{
	Fold:  "fold",
	Call:  "call",
	Raise: "raise",
	AllIn: "allIn",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a wire token to an Action.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return Action(a), true
		}
	}
	return 0, false
}

// Call pays the minimum bet into the stake and returns the amount paid.
func (g *Game) Call(id int) (int, error) {
	p, ok := g.players[id]
	if !ok {
		return 0, ErrNotSeated
	}
	amount := g.minimumBet
	if p.Cash < amount {
		return 0, fmt.Errorf("call %d with %d: %w", amount, p.Cash, ErrInsufficientFunds)
	}
	p.Cash -= amount
	g.stake += amount
	return amount, nil
}

// Raise pays sum, makes it the new minimum bet, and sends everyone ahead of
// the raiser who can still act back into the queue.
func (g *Game) Raise(id, sum int) error {
	p, ok := g.players[id]
	if !ok {
		return ErrNotSeated
	}
	if sum <= g.minimumBet {
		return fmt.Errorf("raise %d over %d: %w", sum, g.minimumBet, ErrRaiseTooSmall)
	}
	if sum > p.Cash {
		return fmt.Errorf("raise %d with %d: %w", sum, p.Cash, ErrInsufficientFunds)
	}
	p.Cash -= sum
	g.stake += sum
	g.minimumBet = sum
	g.Enqueue(g.PlayersBefore(id)...)
	return nil
}

// AllIn commits all of the player's cash and returns the amount. The minimum
// bet only rises, and earlier players only act again, when the amount beats
// it.
func (g *Game) AllIn(id int) (int, error) {
	p, ok := g.players[id]
	if !ok {
		return 0, ErrNotSeated
	}
	amount := p.Cash
	p.Cash = 0
	p.AllIn = true
	g.stake += amount
	if amount > g.minimumBet {
		g.minimumBet = amount
		g.Enqueue(g.PlayersBefore(id)...)
	}
	return amount, nil
}

// Fold takes the player out of the hand. It returns the id of the last
// player standing once a single active player remains, and -1 otherwise.
// Folding twice is a no-op.
func (g *Game) Fold(id int) int {
	p, ok := g.players[id]
	if !ok || p.Folded {
		return -1
	}
	p.Folded = true
	g.active--
	g.dequeue(id)
	return g.FoldedWinner()
}

// FoldedWinner returns the only player who has not folded, or -1 while more
// than one remains.
func (g *Game) FoldedWinner() int {
	if g.active != 1 {
		return -1
	}
	for _, id := range g.order {
		if !g.players[id].Folded {
			return id
		}
	}
	return -1
}

// AdvanceAuction moves play on after a bet. While the queue holds players the
// next one is prompted (StepBet). When the first auction drains, the players
// who can still act are queued for the exchange (StepExchange); when the
// second drains, or nobody can exchange, the game goes to showdown
// (StepShowdown).
func (g *Game) AdvanceAuction() (Step, int) {
	if next := g.NextFromQueue(); next != -1 {
		return StepBet, next
	}
	g.auctionRounds++
	if g.stage == FirstAuction {
		if first := g.RebuildQueue(); first != -1 {
			g.stage = Exchange
			return StepExchange, first
		}
	}
	g.EnterShowdown()
	return StepShowdown, -1
}
