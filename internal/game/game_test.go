package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/drawpoker/internal/randutil"
)

func TestAddPlayerResults(t *testing.T) {
	t.Parallel()

	players := newTestPlayers(4)
	g := New(7, players[0], 3, DefaultRules(), randutil.New(1))

	assert.Equal(t, JoinPending, g.AddPlayer(players[1]))
	assert.Equal(t, Lobby, g.Stage())
	assert.Equal(t, JoinFilled, g.AddPlayer(players[2]))
	assert.Equal(t, Dealing, g.Stage())
	assert.Equal(t, JoinRejected, g.AddPlayer(players[3]))

	assert.Equal(t, []int{1, 2, 3}, g.Order())
	assert.Equal(t, 7, players[2].GameID)
	assert.False(t, players[3].Seated())
}

func TestAddPlayerRejectsSeatedPlayer(t *testing.T) {
	t.Parallel()

	players := newTestPlayers(3)
	a := New(1, players[0], 3, DefaultRules(), nil)
	New(2, players[1], 3, DefaultRules(), nil)

	assert.Equal(t, JoinRejected, a.AddPlayer(players[1]))
	assert.Equal(t, JoinPending, a.AddPlayer(players[2]))
	assert.Equal(t, JoinRejected, a.AddPlayer(players[2]))
}

func TestRemovePlayerFromLobby(t *testing.T) {
	t.Parallel()

	players := newTestPlayers(3)
	g := New(1, players[0], 3, DefaultRules(), nil)
	g.AddPlayer(players[1])

	require.NoError(t, g.RemovePlayer(2))
	assert.Equal(t, []int{1}, g.Order())
	assert.False(t, players[1].Seated())
	assert.Equal(t, 1, g.ActiveCount())

	assert.ErrorIs(t, g.RemovePlayer(2), ErrNotSeated)

	// The freed seat can be taken again.
	assert.Equal(t, JoinPending, g.AddPlayer(players[1]))
	assert.Equal(t, JoinFilled, g.AddPlayer(players[2]))
	assert.ErrorIs(t, g.RemovePlayer(3), ErrWrongStage)
}

func TestDealingChain(t *testing.T) {
	t.Parallel()

	g, players := newFullGame(t, 3)

	_, err := g.RequestCards(2)
	require.ErrorIs(t, err, ErrNotYourTurn, "only the founder starts dealing")

	hand, err := g.RequestCards(1)
	require.NoError(t, err)
	assert.Len(t, hand, 5)
	assert.Equal(t, hand, players[0].Hand)
	assert.Equal(t, 47, g.DeckSize())

	_, err = g.RequestCards(1)
	require.ErrorIs(t, err, ErrNotYourTurn, "cards are requested once")

	_, _, err = g.AcceptCards(2)
	require.ErrorIs(t, err, ErrNotYourTurn)

	step, next, err := g.AcceptCards(1)
	require.NoError(t, err)
	assert.Equal(t, StepDeal, step)
	assert.Equal(t, 2, next)
	assert.Len(t, players[1].Hand, 5)

	step, next, err = g.AcceptCards(2)
	require.NoError(t, err)
	assert.Equal(t, StepDeal, step)
	assert.Equal(t, 3, next)

	step, next, err = g.AcceptCards(3)
	require.NoError(t, err)
	assert.Equal(t, StepBet, step)
	assert.Equal(t, 1, next)
	assert.Equal(t, FirstAuction, g.Stage())
	assert.Equal(t, 1, g.Current())
	assert.Equal(t, []int{2, 3}, g.Queue())
	assert.Equal(t, 37, g.DeckSize())
}

func TestDealtHandsAreDistinct(t *testing.T) {
	t.Parallel()

	g, players := newFullGame(t, 4)
	dealAll(t, g)

	seen := make(map[string]bool)
	for _, p := range players {
		require.Len(t, p.Hand, 5)
		for _, c := range p.Hand {
			assert.False(t, seen[c.String()], "card %s dealt twice", c)
			seen[c.String()] = true
		}
	}
}

func TestExpect(t *testing.T) {
	t.Parallel()

	g, _ := newFullGame(t, 2)
	first := dealAll(t, g)

	assert.NoError(t, g.Expect(first, FirstAuction, SecondAuction))
	assert.ErrorIs(t, g.Expect(first, Exchange), ErrWrongStage)
	assert.ErrorIs(t, g.Expect(2, FirstAuction), ErrNotYourTurn)
	assert.ErrorIs(t, g.Expect(99, FirstAuction), ErrNotSeated)
}

func TestResetClearsPlayers(t *testing.T) {
	t.Parallel()

	g, players := newFullGame(t, 2)
	dealAll(t, g)
	players[0].Cash = 0
	players[1].Folded = true
	players[1].Exchanges = 3

	g.Reset()

	assert.Equal(t, Finished, g.Stage())
	assert.Equal(t, -1, g.Current())
	for _, p := range players {
		assert.Empty(t, p.Hand)
		assert.False(t, p.Seated())
		assert.False(t, p.Folded)
		assert.Zero(t, p.Exchanges)
	}
	assert.Equal(t, 500, players[0].Cash)
	assert.Equal(t, 10000, players[1].Cash)
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultRules().Validate())

	bad := DefaultRules()
	bad.MinimumBet = 0
	bad.HandSize = 7
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum bet")
	assert.Contains(t, err.Error(), "hand size")
}
