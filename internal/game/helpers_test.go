package game

import (
	"fmt"
	"testing"

	"github.com/lox/drawpoker/internal/randutil"
)

// newTestPlayers creates n unseated players with ids 1..n.
func newTestPlayers(n int) []*Player {
	players := make([]*Player, n)
	for i := range players {
		players[i] = NewPlayer(i+1, fmt.Sprintf("player%d", i+1), DefaultRules().StartingCash)
	}
	return players
}

// newFullGame seats n players in a game sized for n, leaving it in Dealing.
func newFullGame(t *testing.T, n int) (*Game, []*Player) {
	t.Helper()
	players := newTestPlayers(n)
	g := New(1, players[0], n, DefaultRules(), randutil.New(42))
	for _, p := range players[1:] {
		g.AddPlayer(p)
	}
	if g.Stage() != Dealing {
		t.Fatalf("expected Dealing after seating %d players, got %s", n, g.Stage())
	}
	return g, players
}

// dealAll runs the dealing chain and leaves the game at the first bet.
func dealAll(t *testing.T, g *Game) int {
	t.Helper()
	if _, err := g.RequestCards(g.FounderID()); err != nil {
		t.Fatalf("request cards: %v", err)
	}
	for {
		step, next, err := g.AcceptCards(g.Current())
		if err != nil {
			t.Fatalf("accept cards: %v", err)
		}
		if step == StepBet {
			return next
		}
	}
}
