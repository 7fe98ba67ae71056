package server

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/internal/protocol"
)

// Dispatcher runs protocol commands against the server State. Every method
// must be called from the event loop goroutine.
type Dispatcher struct {
	state   *State
	logger  *log.Logger
	monitor GameMonitor
	stats   *Stats
}

// NewDispatcher creates a dispatcher over state. stats may be nil.
func NewDispatcher(state *State, logger *log.Logger, monitor GameMonitor, stats *Stats) *Dispatcher {
	if monitor == nil {
		monitor = NullGameMonitor{}
	}
	return &Dispatcher{
		state:   state,
		logger:  logger.WithPrefix("dispatch"),
		monitor: monitor,
		stats:   stats,
	}
}

// State exposes the registries the dispatcher mutates.
func (d *Dispatcher) State() *State { return d.state }

// Connect registers a new connection.
func (d *Dispatcher) Connect(p Peer) {
	d.state.Connect(p)
	d.stats.ConnectionOpened()
	d.logger.Debug("Peer connected", "peer", p.ID(), "addr", p.RemoteAddr())
}

// Dispatch handles one line from p. Protocol errors are answered on p and
// leave it open. Any other returned error means p must be dropped.
func (d *Dispatcher) Dispatch(p Peer, line string) error {
	if !d.state.Connected(p) {
		return nil
	}
	d.stats.MessageHandled()

	err := d.dispatch(p, line)

	var perr *protocol.Error
	if errors.As(err, &perr) {
		d.stats.ProtocolError()
		d.logger.Debug("Protocol error", "peer", p.ID(), "line", line, "reply", perr.Reply)
		d.reply(p, perr.Reply)
		return nil
	}
	return err
}

func (d *Dispatcher) dispatch(p Peer, line string) error {
	msg, err := protocol.Parse(line)
	if err != nil {
		return err
	}

	switch msg.Verb {
	case protocol.VerbLogin:
		return d.handleLogin(p, msg)
	case protocol.VerbCreate:
		return d.handleCreate(p, msg)
	case protocol.VerbJoin:
		return d.handleJoin(p, msg)
	case protocol.VerbHandCards:
		return d.handleHandCards(p, msg)
	case protocol.VerbBet:
		return d.handleBet(p, msg)
	case protocol.VerbExchange:
		return d.handleExchange(p, msg)
	case protocol.VerbSummary:
		return d.handleSummary(p, msg)
	default:
		return protocol.ErrUnknownCommand
	}
}

// reply sends msg on p, logging failures. A full send buffer closes p and
// the loop learns about it through the disconnect event.
func (d *Dispatcher) reply(p Peer, msg string) {
	if err := p.Send(msg); err != nil {
		d.logger.Debug("Send failed", "peer", p.ID(), "error", err)
	}
}

// sendTo sends msg to a player if they are still connected.
func (d *Dispatcher) sendTo(playerID int, msg string) {
	if p, ok := d.state.PeerOf(playerID); ok {
		d.reply(p, msg)
	}
}

// broadcast sends msg to every connected member of g in join order.
func (d *Dispatcher) broadcast(g *game.Game, msg string) {
	d.broadcastExcept(g, -1, msg)
}

func (d *Dispatcher) broadcastExcept(g *game.Game, skip int, msg string) {
	for _, id := range g.Order() {
		if id != skip {
			d.sendTo(id, msg)
		}
	}
}

// loggedIn returns the player bound to p.
func (d *Dispatcher) loggedIn(p Peer) (*game.Player, error) {
	player, ok := d.state.PlayerFor(p)
	if !ok {
		return nil, protocol.ErrNotLoggedIn
	}
	return player, nil
}

// seated resolves the "<gameID> <playerID>" prefix shared by the in-game
// verbs. The player id must belong to p and the player must sit at the game.
func (d *Dispatcher) seated(p Peer, msg protocol.Message) (*game.Player, *game.Game, error) {
	player, err := d.loggedIn(p)
	if err != nil {
		return nil, nil, err
	}
	gameID, err := msg.Int(0)
	if err != nil {
		return nil, nil, err
	}
	playerID, err := msg.Int(1)
	if err != nil {
		return nil, nil, err
	}
	if playerID != player.ID {
		return nil, nil, protocol.ErrInvalidPlayer
	}
	g, ok := d.state.Game(gameID)
	if !ok {
		return nil, nil, protocol.UnknownGame(gameID)
	}
	if !g.Has(player.ID) {
		return nil, nil, protocol.ErrInvalidPlayer
	}
	return player, g, nil
}

// gameError turns game rule violations into protocol replies.
func gameError(err error) error {
	switch {
	case errors.Is(err, game.ErrWrongStage):
		return protocol.ErrNotAllowed
	case errors.Is(err, game.ErrNotYourTurn):
		return protocol.ErrNotYourTurn
	case errors.Is(err, game.ErrNotSeated):
		return protocol.ErrInvalidPlayer
	default:
		return err
	}
}
