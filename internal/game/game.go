package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/drawpoker/poker"
)

var (
	ErrGameFull          = errors.New("game is full")
	ErrNotSeated         = errors.New("player is not seated at this game")
	ErrWrongStage        = errors.New("action not allowed in this stage")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrRaiseTooSmall     = errors.New("raise must exceed the minimum bet")
	ErrExchangeLimit     = errors.New("exchange limit reached")
	ErrBadCardIndex      = errors.New("card index out of range")
	ErrNoWinner          = errors.New("no player left to win")
)

// JoinResult is the outcome of AddPlayer.
type JoinResult int

const (
	JoinRejected JoinResult = -1
	JoinPending  JoinResult = 0
	JoinFilled   JoinResult = 1
)

// Game is one table. The founder is always first in join order.
type Game struct {
	id         int
	founderID  int
	maxPlayers int
	rules      Rules

	players map[int]*Player
	order   []int // join order, append-only once dealing starts

	deck          *poker.Deck
	stage         Stage
	auctionRounds int
	stake         int
	minimumBet    int
	active        int // players who have not folded

	queue   []int
	current int // player prompted to act, or -1
}

// New creates a game in the Lobby stage with founder seated.
func New(id int, founder *Player, maxPlayers int, rules Rules, rng *rand.Rand) *Game {
	g := &Game{
		id:         id,
		founderID:  founder.ID,
		maxPlayers: maxPlayers,
		rules:      rules,
		players:    make(map[int]*Player, maxPlayers),
		deck:       poker.NewDeck(rng),
		stage:      Lobby,
		minimumBet: rules.MinimumBet,
		current:    -1,
	}
	g.seat(founder)
	return g
}

func (g *Game) ID() int         { return g.id }
func (g *Game) FounderID() int  { return g.founderID }
func (g *Game) MaxPlayers() int { return g.maxPlayers }
func (g *Game) Stage() Stage    { return g.stage }
func (g *Game) Stake() int      { return g.stake }
func (g *Game) MinimumBet() int { return g.minimumBet }

// Current returns the player who is expected to act next, or -1.
func (g *Game) Current() int { return g.current }

// ActiveCount returns the number of players who have not folded.
func (g *Game) ActiveCount() int { return g.active }

// AuctionRounds returns how many auctions have closed.
func (g *Game) AuctionRounds() int { return g.auctionRounds }

// Size returns the number of seated players.
func (g *Game) Size() int { return len(g.order) }

// Full reports whether every seat is taken.
func (g *Game) Full() bool { return len(g.order) >= g.maxPlayers }

// Order returns player ids in join order.
func (g *Game) Order() []int { return slices.Clone(g.order) }

// Player looks up a seated player.
func (g *Game) Player(id int) (*Player, bool) {
	p, ok := g.players[id]
	return p, ok
}

// Players returns the seated players in join order.
func (g *Game) Players() []*Player {
	out := make([]*Player, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.players[id])
	}
	return out
}

// Has reports whether id is seated at this game.
func (g *Game) Has(id int) bool {
	_, ok := g.players[id]
	return ok
}

// DeckSize returns the number of undealt cards.
func (g *Game) DeckSize() int { return g.deck.Len() }

func (g *Game) seat(p *Player) {
	g.players[p.ID] = p
	g.order = append(g.order, p.ID)
	g.active++
	p.GameID = g.id
}

// AddPlayer seats p. It returns JoinFilled when p takes the last seat, which
// also moves the game to Dealing, JoinPending while seats remain, and
// JoinRejected when the game is full, already running, or p sits elsewhere.
func (g *Game) AddPlayer(p *Player) JoinResult {
	if g.stage != Lobby || g.Full() || p.Seated() {
		return JoinRejected
	}
	g.seat(p)
	if g.Full() {
		g.stage = Dealing
		return JoinFilled
	}
	return JoinPending
}

// RemovePlayer unseats a player while the game is still in the Lobby.
func (g *Game) RemovePlayer(id int) error {
	if g.stage != Lobby {
		return fmt.Errorf("remove player %d: %w", id, ErrWrongStage)
	}
	p, ok := g.players[id]
	if !ok {
		return fmt.Errorf("remove player %d: %w", id, ErrNotSeated)
	}
	delete(g.players, id)
	g.order = slices.DeleteFunc(g.order, func(pid int) bool { return pid == id })
	g.active--
	p.GameID = NoGame
	return nil
}

// Expect checks that playerID is seated, that the game is in one of stages,
// and that it is playerID's turn.
func (g *Game) Expect(playerID int, stages ...Stage) error {
	if !g.Has(playerID) {
		return ErrNotSeated
	}
	if !slices.Contains(stages, g.stage) {
		return ErrWrongStage
	}
	if g.current != playerID {
		return ErrNotYourTurn
	}
	return nil
}

// NextInOrder returns the player seated after id in join order.
func (g *Game) NextInOrder(id int) (int, bool) {
	i := slices.Index(g.order, id)
	if i < 0 || i+1 >= len(g.order) {
		return -1, false
	}
	return g.order[i+1], true
}

// Deal shuffles the remaining deck and gives id a fresh hand.
func (g *Game) Deal(id int) ([]poker.Card, error) {
	p, ok := g.players[id]
	if !ok {
		return nil, fmt.Errorf("deal to player %d: %w", id, ErrNotSeated)
	}
	g.deck.Shuffle()
	hand, err := g.deck.DealHand(g.rules.HandSize)
	if err != nil {
		return nil, fmt.Errorf("deal to player %d: %w", id, err)
	}
	p.Hand = hand
	return p.HandCopy(), nil
}

// RequestCards deals the founder's hand and opens the dealing chain. Only the
// founder may ask, and only once.
func (g *Game) RequestCards(id int) ([]poker.Card, error) {
	if g.stage != Dealing {
		return nil, ErrWrongStage
	}
	if id != g.founderID || g.current != -1 {
		return nil, ErrNotYourTurn
	}
	hand, err := g.Deal(id)
	if err != nil {
		return nil, err
	}
	g.current = id
	return hand, nil
}

// AcceptCards records that id received its hand. The next player in join
// order is dealt in turn (StepDeal); after the last acknowledgement the first
// auction opens (StepBet). next is the player who must hear about it.
func (g *Game) AcceptCards(id int) (step Step, next int, err error) {
	if err := g.Expect(id, Dealing); err != nil {
		return 0, -1, err
	}
	if nextID, ok := g.NextInOrder(id); ok {
		if _, err := g.Deal(nextID); err != nil {
			return 0, -1, err
		}
		g.current = nextID
		return StepDeal, nextID, nil
	}
	g.stage = FirstAuction
	first := g.RebuildQueue()
	if first == -1 {
		g.EnterShowdown()
		return StepShowdown, -1, nil
	}
	return StepBet, first, nil
}

// EnterShowdown stops all betting and waits for the summary.
func (g *Game) EnterShowdown() {
	g.stage = Showdown
	g.queue = g.queue[:0]
	g.current = -1
}

// Abort ends the game without paying anyone.
func (g *Game) Abort() {
	g.Reset()
}

// Reset clears per-game state on every seated player and marks the game
// Finished.
func (g *Game) Reset() {
	for _, id := range g.order {
		g.players[id].ResetForNextGame(g.rules)
	}
	g.stage = Finished
	g.queue = nil
	g.current = -1
}
