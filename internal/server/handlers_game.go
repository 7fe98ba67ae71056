package server

import (
	"errors"
	"fmt"

	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/internal/protocol"
)

// handCards <gameID> <playerID> request|accepted
func (d *Dispatcher) handleHandCards(p Peer, msg protocol.Message) error {
	if err := msg.Arity(3, 3); err != nil {
		return err
	}
	player, g, err := d.seated(p, msg)
	if err != nil {
		return err
	}

	switch msg.Args[2] {
	case "request":
		hand, err := g.RequestCards(player.ID)
		if err != nil {
			return gameError(err)
		}
		d.logger.Debug("Dealing started", "game", g.ID(), "player", player.ID)
		d.reply(p, protocol.Cards(hand))
		return nil

	case "accepted":
		step, next, err := g.AcceptCards(player.ID)
		if err != nil {
			return gameError(err)
		}
		d.announce(g, step, next)
		return nil

	default:
		return protocol.InvalidArguments(msg.Verb)
	}
}

// bet <gameID> <playerID> fold|call|raise|allIn <amount>
func (d *Dispatcher) handleBet(p Peer, msg protocol.Message) error {
	if err := msg.Arity(4, 4); err != nil {
		return err
	}
	player, g, err := d.seated(p, msg)
	if err != nil {
		return err
	}
	action, ok := game.ParseAction(msg.Args[2])
	if !ok {
		return protocol.InvalidArguments(msg.Verb)
	}
	sum, err := msg.Int(3)
	if err != nil {
		return err
	}
	if err := g.Expect(player.ID, game.FirstAuction, game.SecondAuction); err != nil {
		return gameError(err)
	}

	var (
		amount int
		winner = -1
	)
	switch action {
	case game.Fold:
		winner = g.Fold(player.ID)
	case game.Call:
		amount, err = g.Call(player.ID)
	case game.Raise:
		err = g.Raise(player.ID, sum)
		amount = sum
	case game.AllIn:
		amount, err = g.AllIn(player.ID)
	}

	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		d.reply(p, protocol.DeniedBet(protocol.ReasonInsufficientFunds))
		return nil
	case errors.Is(err, game.ErrRaiseTooSmall):
		d.reply(p, protocol.DeniedBet(protocol.ReasonRaiseTooSmall))
		return nil
	case err != nil:
		return fmt.Errorf("bet %s: %w", action, err)
	}

	d.logger.Debug("Bet accepted", "game", g.ID(), "player", player.ID, "action", action, "amount", amount, "stake", g.Stake())
	d.reply(p, protocol.AcceptedBet())
	d.broadcastExcept(g, player.ID, protocol.PlayerBet(player.Name, action.String(), amount))

	if winner != -1 {
		d.foldedOut(g, winner)
		return nil
	}
	step, next := g.AdvanceAuction()
	d.announce(g, step, next)
	return nil
}

// exchange <gameID> <playerID> yes <index> | no
func (d *Dispatcher) handleExchange(p Peer, msg protocol.Message) error {
	if err := msg.Arity(3, 4); err != nil {
		return err
	}
	player, g, err := d.seated(p, msg)
	if err != nil {
		return err
	}

	switch {
	case msg.Args[2] == "yes" && len(msg.Args) == 4:
		index, err := msg.Int(3)
		if err != nil {
			return err
		}
		if err := g.Expect(player.ID, game.Exchange); err != nil {
			return gameError(err)
		}
		card, err := g.ChangeCard(player.ID, index)
		switch {
		case errors.Is(err, game.ErrBadCardIndex):
			d.reply(p, protocol.DeniedChange())
			return nil
		case errors.Is(err, game.ErrExchangeLimit):
			d.reply(p, protocol.DeniedChange())
			step, next := g.AdvanceExchange()
			d.announce(g, step, next)
			return nil
		case err != nil:
			return err
		}
		d.logger.Debug("Card exchanged", "game", g.ID(), "player", player.ID, "index", index, "exchanges", player.Exchanges)
		d.reply(p, protocol.AcceptedChange(index, card))
		return nil

	case msg.Args[2] == "no" && len(msg.Args) == 3:
		if err := g.Expect(player.ID, game.Exchange); err != nil {
			return gameError(err)
		}
		d.reply(p, protocol.AcceptedEndChanging())
		step, next := g.AdvanceExchange()
		d.announce(g, step, next)
		return nil

	default:
		return protocol.InvalidArguments(msg.Verb)
	}
}

// summary <gameID> [...]
func (d *Dispatcher) handleSummary(p Peer, msg protocol.Message) error {
	if err := msg.Arity(1, -1); err != nil {
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
	g, ok := d.state.Game(gameID)
	if !ok {
		return protocol.UnknownGame(gameID)
	}
	if !g.Has(player.ID) {
		return protocol.ErrInvalidPlayer
	}
	if g.Stage() != game.Showdown {
		return protocol.ErrNotAllowed
	}
	return d.summarize(g)
}

// announce tells the table about a state transition returned by the game.
func (d *Dispatcher) announce(g *game.Game, step game.Step, next int) {
	switch step {
	case game.StepDeal:
		if p, ok := g.Player(next); ok {
			d.sendTo(next, protocol.Cards(p.Hand))
		}
	case game.StepBet:
		d.promptBet(g, next)
	case game.StepChange:
		d.sendTo(next, protocol.ChangeCards())
	case game.StepExchange:
		d.broadcast(g, protocol.NextStage())
		d.sendTo(next, protocol.ChangeCards())
	case game.StepSecondAuction:
		d.broadcast(g, protocol.NextStage())
		d.promptBet(g, next)
	case game.StepShowdown:
		d.broadcast(g, protocol.LastStage())
		d.summarizeIfOrphaned(g)
	}
	d.logger.Debug("Game advanced", "game", g.ID(), "stage", g.Stage(), "step", step, "next", next)
}

func (d *Dispatcher) promptBet(g *game.Game, playerID int) {
	p, ok := g.Player(playerID)
	if !ok {
		return
	}
	d.sendTo(playerID, protocol.StartAuction(p.Cash, g.MinimumBet(), g.Stake()))
}

// foldedOut announces the last player standing and moves to showdown.
func (d *Dispatcher) foldedOut(g *game.Game, winnerID int) {
	winner, _ := g.Player(winnerID)
	d.logger.Info("Everyone else folded", "game", g.ID(), "winner", winnerID)
	d.broadcast(g, protocol.Winner(winner.ID, winner.Name, g.Stake()))
	g.EnterShowdown()
	d.summarizeIfOrphaned(g)
}

// summarizeIfOrphaned runs the showdown on behalf of a founder who is no
// longer connected; nobody else would ever ask for it.
func (d *Dispatcher) summarizeIfOrphaned(g *game.Game) {
	if g.Stage() != game.Showdown {
		return
	}
	if _, ok := d.state.PeerOf(g.FounderID()); ok {
		return
	}
	if err := d.summarize(g); err != nil {
		d.logger.Error("Automatic summary failed", "game", g.ID(), "error", err)
	}
}

// summarize decides the game, reports the result to every member, then
// resets the players and drops the game.
func (d *Dispatcher) summarize(g *game.Game) error {
	res, err := g.Showdown()
	if errors.Is(err, game.ErrNoWinner) {
		d.logger.Warn("Game ended without a winner", "game", g.ID())
		d.abort(g)
		return nil
	}
	if err != nil {
		return err
	}

	for _, member := range g.Players() {
		if res.FoldWin {
			d.sendTo(member.ID, protocol.FoldWinner(res.Winner.Name, res.Winner.ID, res.Stake, member.Cash))
			continue
		}
		own, _ := res.HandOf(member.ID)
		d.sendTo(member.ID, protocol.Score(own.Layout, res.Winner.ID, res.Winner.Name, res.WinningHand.Layout, res.Stake, member.Cash))
	}

	d.logger.Info("Game complete", "game", g.ID(), "winner", res.Winner.ID, "stake", res.Stake, "fold_win", res.FoldWin)
	d.monitor.OnGameComplete(newGameOutcome(g, res))

	g.Reset()
	d.state.RemoveGame(g.ID())
	return nil
}

// abort ends a game without a winner, telling every connected member.
func (d *Dispatcher) abort(g *game.Game) {
	d.logger.Info("Game aborted", "game", g.ID(), "stage", g.Stage())
	d.broadcast(g, protocol.GameAborted(g.ID()))
	d.monitor.OnGameComplete(newAbortedOutcome(g))
	g.Abort()
	d.state.RemoveGame(g.ID())
}
