package server

import (
	"errors"

	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/internal/protocol"
)

// login <name>
func (d *Dispatcher) handleLogin(p Peer, msg protocol.Message) error {
	if err := msg.Arity(1, 1); err != nil {
		return err
	}
	if _, ok := d.state.PlayerFor(p); ok {
		return protocol.ErrAlreadyLogged
	}

	player, err := d.state.Login(p, msg.Args[0])
	if errors.Is(err, errNameTaken) {
		return protocol.ErrUsernameTaken
	}
	if err != nil {
		return err
	}

	d.stats.PlayerLoggedIn()
	d.logger.Info("Player logged in", "player", player.ID, "name", player.Name, "peer", p.ID())
	d.reply(p, protocol.Accepted(player.ID))
	return nil
}

// create <playerID>
func (d *Dispatcher) handleCreate(p Peer, msg protocol.Message) error {
	if err := msg.Arity(1, 1); err != nil {
		return err
	}
	player, err := d.loggedIn(p)
	if err != nil {
		return err
	}
	playerID, err := msg.Int(0)
	if err != nil {
		return err
	}
	if playerID != player.ID {
		return protocol.ErrInvalidPlayer
	}
	if player.Seated() {
		return protocol.ErrNotAllowed
	}

	g := d.state.CreateGame(player)
	d.stats.GameCreated()
	d.logger.Info("Game created", "game", g.ID(), "founder", player.ID, "seats", g.MaxPlayers())
	d.reply(p, protocol.AcceptedCreate(g.ID()))
	return nil
}

// join <gameID> <playerID>
func (d *Dispatcher) handleJoin(p Peer, msg protocol.Message) error {
	if err := msg.Arity(2, 2); err != nil {
		return err
	}
	player, err := d.loggedIn(p)
	if err != nil {
		return err
	}
	gameID, err := msg.Int(0)
	if err != nil {
		return err
	}
	playerID, err := msg.Int(1)
	if err != nil {
		return err
	}
	if playerID != player.ID {
		return protocol.ErrInvalidPlayer
	}

	g, ok := d.state.Game(gameID)
	if !ok {
		d.reply(p, protocol.RejectedJoin(gameID))
		return nil
	}

	switch g.AddPlayer(player) {
	case game.JoinRejected:
		d.logger.Debug("Join rejected", "game", gameID, "player", player.ID)
		d.reply(p, protocol.RejectedJoin(gameID))

	case game.JoinPending:
		d.logger.Info("Player joined", "game", gameID, "player", player.ID, "seated", g.Size())
		d.reply(p, protocol.AcceptedJoin(gameID))
		d.broadcastExcept(g, player.ID, protocol.PlayerJoin(player.Name))

	case game.JoinFilled:
		d.logger.Info("Game full, starting", "game", gameID, "players", g.Order())
		d.reply(p, protocol.AcceptedJoin(gameID))
		d.broadcastExcept(g, player.ID, protocol.PlayerJoin(player.Name))
		d.broadcast(g, protocol.StartGame(gameID))
		d.monitor.OnGameStart(newGameStart(g))
	}
	return nil
}
