package game

import (
	"fmt"

	"github.com/lox/drawpoker/poker"
)

// Result describes how a game was decided.
type Result struct {
	GameID  int
	Winner  *Player
	Stake   int
	FoldWin bool

	// Hands holds every seated player's evaluated hand, weakest first. It is
	// empty when the game was won by folds.
	Hands       []poker.EvaluatedHand
	WinningHand poker.EvaluatedHand
}

// HandOf returns the evaluated hand of playerID.
func (r Result) HandOf(playerID int) (poker.EvaluatedHand, bool) {
	for _, h := range r.Hands {
		if h.PlayerID == playerID {
			return h, true
		}
	}
	return poker.EvaluatedHand{}, false
}

// Showdown decides the game and credits the stake to the winner, exactly
// once. With a single active player left no hands are compared. Otherwise
// every seated hand is scored and the strongest among players who did not
// fold wins. The game moves to Finished; call Reset to clear the players.
func (g *Game) Showdown() (Result, error) {
	if g.stage != Showdown {
		return Result{}, ErrWrongStage
	}
	res := Result{GameID: g.id, Stake: g.stake}

	if id := g.FoldedWinner(); id != -1 {
		res.Winner = g.players[id]
		res.FoldWin = true
	} else {
		seats := make([]poker.Seat, 0, len(g.order))
		for _, id := range g.order {
			seats = append(seats, poker.Seat{PlayerID: id, Hand: g.players[id].Hand})
		}
		hands, err := poker.EvaluateAll(seats)
		if err != nil {
			return Result{}, fmt.Errorf("showdown game %d: %w", g.id, err)
		}
		best, ok := poker.Best(hands, func(id int) bool { return !g.players[id].Folded })
		if !ok {
			return Result{}, fmt.Errorf("showdown game %d: %w", g.id, ErrNoWinner)
		}
		res.Hands = hands
		res.WinningHand = best
		res.Winner = g.players[best.PlayerID]
	}

	res.Winner.Cash += g.stake
	res.Winner.Winner = true
	g.stage = Finished
	return res, nil
}
