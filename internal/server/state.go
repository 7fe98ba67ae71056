package server

import (
	"errors"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/drawpoker/internal/game"
)

// Peer is one client connection as seen by the event loop.
type Peer interface {
	// ID identifies the connection in logs.
	ID() string
	// Send queues one reply line without blocking.
	Send(msg string) error
	// Close tears the connection down. It is safe to call more than once.
	Close() error
	RemoteAddr() string
}

var errNameTaken = errors.New("username taken")

// State holds every registry of a running server. It is owned by the event
// loop goroutine and must not be touched from anywhere else.
type State struct {
	maxPlayers int
	rules      game.Rules
	rng        *rand.Rand

	connected map[Peer]struct{}
	playerOf  map[Peer]int
	peerOf    map[int]Peer
	players   map[int]*game.Player
	games     map[int]*game.Game
	names     map[string]int

	nextPlayerID int
	nextGameID   int
}

// NewState creates empty registries. Every game created through the state
// seats maxPlayers and plays by rules.
func NewState(maxPlayers int, rules game.Rules, rng *rand.Rand) *State {
	return &State{
		maxPlayers: maxPlayers,
		rules:      rules,
		rng:        rng,
		connected:  make(map[Peer]struct{}),
		playerOf:   make(map[Peer]int),
		peerOf:     make(map[int]Peer),
		players:    make(map[int]*game.Player),
		games:      make(map[int]*game.Game),
		names:      make(map[string]int),
	}
}

// MaxPlayers returns the table size of every game.
func (s *State) MaxPlayers() int { return s.maxPlayers }

// Rules returns the table limits of every game.
func (s *State) Rules() game.Rules { return s.rules }

// Connect registers a new connection.
func (s *State) Connect(p Peer) {
	s.connected[p] = struct{}{}
}

// Connected reports whether p is registered.
func (s *State) Connected(p Peer) bool {
	_, ok := s.connected[p]
	return ok
}

// Peers returns every registered connection.
func (s *State) Peers() []Peer {
	peers := make([]Peer, 0, len(s.connected))
	for p := range s.connected {
		peers = append(peers, p)
	}
	return peers
}

// Login binds a new player called name to p.
func (s *State) Login(p Peer, name string) (*game.Player, error) {
	if _, taken := s.names[name]; taken {
		return nil, errNameTaken
	}
	player := game.NewPlayer(s.nextPlayerID, name, s.rules.StartingCash)
	s.nextPlayerID++

	s.players[player.ID] = player
	s.playerOf[p] = player.ID
	s.peerOf[player.ID] = p
	s.names[name] = player.ID
	return player, nil
}

// PlayerFor returns the player logged in on p.
func (s *State) PlayerFor(p Peer) (*game.Player, bool) {
	id, ok := s.playerOf[p]
	if !ok {
		return nil, false
	}
	return s.players[id], true
}

// Player looks a player up by id.
func (s *State) Player(id int) (*game.Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// PeerOf returns the connection of a logged in player.
func (s *State) PeerOf(playerID int) (Peer, bool) {
	p, ok := s.peerOf[playerID]
	return p, ok
}

// CreateGame registers a new game founded by founder.
func (s *State) CreateGame(founder *game.Player) *game.Game {
	g := game.New(s.nextGameID, founder, s.maxPlayers, s.rules, s.rng)
	s.nextGameID++
	s.games[g.ID()] = g
	return g
}

// Game looks a game up by id.
func (s *State) Game(id int) (*game.Game, bool) {
	g, ok := s.games[id]
	return g, ok
}

// GameIDs returns the ids of registered games in ascending order.
func (s *State) GameIDs() []int {
	ids := make([]int, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// RemoveGame drops a game from the registry.
func (s *State) RemoveGame(id int) {
	delete(s.games, id)
}

// Release erases p from every registry and frees its username. It returns
// the player that was logged in on p, if any.
func (s *State) Release(p Peer) (*game.Player, bool) {
	delete(s.connected, p)
	id, ok := s.playerOf[p]
	if !ok {
		return nil, false
	}
	player := s.players[id]
	delete(s.playerOf, p)
	delete(s.peerOf, id)
	delete(s.players, id)
	delete(s.names, player.Name)
	return player, true
}

// Counts returns the number of connections, logged in players and games.
func (s *State) Counts() (connections, players, games int) {
	return len(s.connected), len(s.players), len(s.games)
}
