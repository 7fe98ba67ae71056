package game

import (
	"errors"
	"fmt"

	"github.com/lox/drawpoker/poker"
)

// Rules holds the money and exchange limits applied to every game on a
// server.
type Rules struct {
	StartingCash int
	MinimumBet   int
	RefillCash   int // paid to a player who finishes a game with nothing
	MaxExchanges int
	HandSize     int
}

// DefaultRules returns the standard table limits.
func DefaultRules() Rules {
	return Rules{
		StartingCash: 10000,
		MinimumBet:   100,
		RefillCash:   500,
		MaxExchanges: 4,
		HandSize:     poker.HandSize,
	}
}

// Validate checks that the limits describe a playable game.
func (r Rules) Validate() error {
	var errs []error
	if r.StartingCash <= 0 {
		errs = append(errs, fmt.Errorf("starting cash must be positive, got %d", r.StartingCash))
	}
	if r.MinimumBet <= 0 {
		errs = append(errs, fmt.Errorf("minimum bet must be positive, got %d", r.MinimumBet))
	}
	if r.RefillCash < 0 {
		errs = append(errs, fmt.Errorf("refill cash cannot be negative, got %d", r.RefillCash))
	}
	if r.MaxExchanges < 0 {
		errs = append(errs, fmt.Errorf("max exchanges cannot be negative, got %d", r.MaxExchanges))
	}
	if r.HandSize != poker.HandSize {
		errs = append(errs, fmt.Errorf("hand size must be %d, got %d", poker.HandSize, r.HandSize))
	}
	return errors.Join(errs...)
}
