package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/drawpoker/internal/game"
)

func TestDisconnectUnknownPeer(t *testing.T) {
	h := newHarness(t, 2)
	assert.False(t, h.d.Disconnect(newFakePeer("ghost")))
}

func TestDisconnectFreesUsername(t *testing.T) {
	h := newHarness(t, 2)
	alice, _ := h.login("alice")

	require.True(t, h.d.Disconnect(alice))
	assert.False(t, h.d.Disconnect(alice), "second disconnect is a no-op")

	again := h.connect("again")
	h.send(again, "login alice")
	assert.Equal(t, []string{"accepted 1"}, again.take(), "ids are never reused")

	snap := h.stats.Snapshot()
	assert.Equal(t, 1, snap.Connections)
	assert.Equal(t, 1, snap.Players)
}

func TestDisconnectFounderInLobbyAbortsGame(t *testing.T) {
	h := newHarness(t, 3)
	alice, aliceID := h.login("alice")
	bob, bobID := h.login("bob")
	h.send(alice, "create "+itoa(aliceID))
	h.send(bob, "join 0 "+itoa(bobID))
	alice.take()
	bob.take()

	h.d.Disconnect(alice)

	assert.Equal(t, []string{"gameAborted 0"}, bob.take())
	_, ok := h.state.Game(0)
	assert.False(t, ok)
	player, _ := h.state.Player(bobID)
	assert.False(t, player.Seated())

	require.Len(t, h.monitor.outcomes, 1)
	assert.True(t, h.monitor.outcomes[0].Aborted)
}

func TestDisconnectMemberInLobbyFreesSeat(t *testing.T) {
	h := newHarness(t, 3)
	alice, aliceID := h.login("alice")
	bob, bobID := h.login("bob")
	h.send(alice, "create "+itoa(aliceID))
	h.send(bob, "join 0 "+itoa(bobID))
	alice.take()

	h.d.Disconnect(bob)

	g, ok := h.state.Game(0)
	require.True(t, ok)
	assert.Equal(t, []int{aliceID}, g.Order())
	assert.Equal(t, game.Lobby, g.Stage())
	assert.Empty(t, alice.take())

	carol, carolID := h.login("carol")
	h.send(carol, "join 0 "+itoa(carolID))
	assert.Equal(t, []string{"acceptedJoin 0"}, carol.take())
}

func TestDisconnectWhileDealingAbortsGame(t *testing.T) {
	h := newHarness(t, 2)
	peers, gameID := h.startGame("alice", "bob")
	h.send(peers[0], "handCards 0 0 request")
	peers[0].take()

	h.d.Disconnect(peers[1])

	assert.Equal(t, []string{"gameAborted 0"}, peers[0].take())
	_, ok := h.state.Game(gameID)
	assert.False(t, ok)

	player, _ := h.state.PlayerFor(peers[0])
	assert.Nil(t, player.Hand)
	assert.Equal(t, game.NoGame, player.GameID)
}

func TestDisconnectDuringAuctionFoldsPlayer(t *testing.T) {
	h := newHarness(t, 3)
	peers, gameID := h.startGame("alice", "bob", "carol")
	alice, bob, carol := peers[0], peers[1], peers[2]
	h.deal(peers, gameID)
	for _, p := range peers {
		p.take()
	}

	// bob is waiting to act, so play stays with alice.
	h.d.Disconnect(bob)
	assert.Equal(t, []string{"playerBet bob fold 0"}, alice.take())
	assert.Equal(t, []string{"playerBet bob fold 0"}, carol.take())

	g, ok := h.state.Game(gameID)
	require.True(t, ok)
	assert.Equal(t, 0, g.Current())
	assert.Equal(t, 2, g.ActiveCount())
	assert.NotContains(t, g.Queue(), 1)

	// alice holds the turn and is the founder; carol is left alone and the
	// server settles the game on its own.
	h.d.Disconnect(alice)
	assert.Equal(t, []string{
		"playerBet alice fold 0",
		"winner 2 carol 0",
		"foldWinner carol 2 0 10000",
	}, carol.take())

	_, ok = h.state.Game(gameID)
	assert.False(t, ok)
}

func TestDisconnectOfCurrentPlayerAdvancesAuction(t *testing.T) {
	h := newHarness(t, 3)
	peers, gameID := h.startGame("alice", "bob", "carol")
	alice, bob, carol := peers[0], peers[1], peers[2]
	h.deal(peers, gameID)
	for _, p := range peers {
		p.take()
	}

	h.d.Disconnect(alice)
	assert.Equal(t, []string{"playerBet alice fold 0", "startAuction 10000 100 0"}, bob.take())
	assert.Equal(t, []string{"playerBet alice fold 0"}, carol.take())

	h.send(bob, "bet 0 1 fold 0")
	assert.Equal(t, []string{"acceptedBet", "winner 2 carol 0", "foldWinner carol 2 0 10000"}, bob.take())
	assert.Equal(t, []string{"playerBet bob fold 0", "winner 2 carol 0", "foldWinner carol 2 0 10000"}, carol.take())

	_, ok := h.state.Game(gameID)
	assert.False(t, ok, "orphaned showdown is summarized by the server")
}

func TestDisconnectDuringExchangeEndsHeadsUp(t *testing.T) {
	h := newHarness(t, 2)
	peers, gameID := h.startGame("alice", "bob")
	alice, bob := peers[0], peers[1]
	h.deal(peers, gameID)
	h.send(alice, "bet 0 0 call 0")
	h.send(bob, "bet 0 1 call 0")
	alice.take()
	bob.take()

	h.d.Disconnect(alice)
	assert.Equal(t, []string{
		"playerBet alice fold 0",
		"winner 1 bob 200",
		"foldWinner bob 1 200 10100",
	}, bob.take())
}

func TestDisconnectInShowdownSummarizesWithoutFounder(t *testing.T) {
	h := newHarness(t, 2)
	peers, gameID := h.startGame("alice", "bob")
	alice, bob := peers[0], peers[1]
	h.deal(peers, gameID)
	h.send(alice, "bet 0 0 call 0")
	h.send(bob, "bet 0 1 call 0")
	h.send(alice, "exchange 0 0 no")
	h.send(bob, "exchange 0 1 no")
	h.send(alice, "bet 0 0 call 0")
	h.send(bob, "bet 0 1 call 0")
	bob.take()

	g, _ := h.state.Game(gameID)
	require.Equal(t, game.Showdown, g.Stage())

	h.d.Disconnect(alice)

	replies := bob.take()
	require.Len(t, replies, 1)
	assert.Regexp(t, `^score \w+ [01] (alice|bob) \w+ 400 \d+$`, replies[0])
	_, ok := h.state.Game(gameID)
	assert.False(t, ok)
}
