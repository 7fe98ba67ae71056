package server

import (
	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/internal/protocol"
)

// Disconnect erases p from every registry and reconciles the game its player
// was sitting at. It reports whether p was still registered.
//
// A player leaving the lobby gives up the seat, unless they founded the game,
// which aborts it. Leaving while cards are dealt aborts the game. Leaving a
// running hand folds the player, and play moves on if it was their turn.
func (d *Dispatcher) Disconnect(p Peer) bool {
	if !d.state.Connected(p) {
		return false
	}
	player, ok := d.state.Release(p)
	d.stats.ConnectionClosed(ok)
	if !ok {
		d.logger.Debug("Peer disconnected", "peer", p.ID())
		return true
	}
	d.logger.Info("Player disconnected", "player", player.ID, "name", player.Name, "peer", p.ID())

	if !player.Seated() {
		return true
	}
	g, ok := d.state.Game(player.GameID)
	if !ok {
		return true
	}

	switch stage := g.Stage(); {
	case stage == game.Lobby && player.ID == g.FounderID():
		d.abort(g)
	case stage == game.Lobby:
		if err := g.RemovePlayer(player.ID); err != nil {
			d.logger.Error("Failed to unseat player", "game", g.ID(), "player", player.ID, "error", err)
		}
	case stage == game.Dealing:
		d.abort(g)
	case stage.InPlay():
		d.autoFold(g, player)
	case stage == game.Showdown:
		d.summarizeIfOrphaned(g)
	}
	return true
}

func (d *Dispatcher) autoFold(g *game.Game, player *game.Player) {
	if player.Folded {
		d.summarizeIfOrphaned(g)
		return
	}
	wasCurrent := g.Current() == player.ID
	stage := g.Stage()

	winner := g.Fold(player.ID)
	d.logger.Info("Folding disconnected player", "game", g.ID(), "player", player.ID, "had_turn", wasCurrent)
	d.broadcastExcept(g, player.ID, protocol.PlayerBet(player.Name, game.Fold.String(), 0))

	if winner != -1 {
		d.foldedOut(g, winner)
		return
	}
	if !wasCurrent {
		return
	}
	if stage == game.Exchange {
		step, next := g.AdvanceExchange()
		d.announce(g, step, next)
		return
	}
	step, next := g.AdvanceAuction()
	d.announce(g, step, next)
}
