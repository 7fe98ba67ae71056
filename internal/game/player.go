package game

import (
	"slices"

	"github.com/lox/drawpoker/poker"
)

// NoGame is the GameID of a player who is not seated at any table.
const NoGame = -1

// Player is a logged in user. The server registry owns players; games only
// reference them.
type Player struct {
	ID        int
	Name      string
	Hand      []poker.Card
	Cash      int
	Exchanges int // cards swapped in the current game
	Folded    bool
	AllIn     bool
	Winner    bool
	GameID    int
}

// NewPlayer creates an unseated player holding cash.
func NewPlayer(id int, name string, cash int) *Player {
	return &Player{ID: id, Name: name, Cash: cash, GameID: NoGame}
}

// Seated reports whether the player belongs to a game.
func (p *Player) Seated() bool {
	return p.GameID != NoGame
}

// CanAct reports whether the player still takes turns: neither folded nor
// all-in.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// HandCopy returns a copy of the player's cards.
func (p *Player) HandCopy() []poker.Card {
	return slices.Clone(p.Hand)
}

// ResetForNextGame clears every per-game field and refills a broke player.
func (p *Player) ResetForNextGame(rules Rules) {
	p.Hand = nil
	p.Exchanges = 0
	p.Folded = false
	p.AllIn = false
	p.Winner = false
	p.GameID = NoGame
	if p.Cash == 0 {
		p.Cash = rules.RefillCash
	}
}
