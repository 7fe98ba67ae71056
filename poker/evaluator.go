package poker

import (
	"errors"
	"fmt"
	"slices"
)

// HandSize is the number of cards in a five-card draw hand.
const HandSize = 5

// ErrHandSize is returned when a hand does not hold exactly HandSize cards.
var ErrHandSize = errors.New("hand must hold five cards")

// EvaluatedHand is a classified hand. Hands are ordered by layout and then by
// the highest card among the contributing cards, not the highest card in the
// whole hand.
type EvaluatedHand struct {
	PlayerID     int
	Hand         []Card
	Layout       Layout
	Contributing []Card // ascending
	Highest      Card   // highest contributing card
}

// Compare returns -1, 0 or +1 as h is weaker than, equal to, or stronger than
// other.
func (h EvaluatedHand) Compare(other EvaluatedHand) int {
	switch {
	case h.Layout < other.Layout:
		return -1
	case h.Layout > other.Layout:
		return 1
	default:
		return h.Highest.Compare(other.Highest)
	}
}

// Beats reports whether h is strictly stronger than other.
func (h EvaluatedHand) Beats(other EvaluatedHand) bool {
	return h.Compare(other) > 0
}

// Classify runs the classifier chain and returns the layout and contributing
// cards of the first match. The input is not modified.
func Classify(hand []Card) (Layout, []Card, error) {
	if len(hand) != HandSize {
		return HighCard, nil, fmt.Errorf("%w: got %d", ErrHandSize, len(hand))
	}
	for _, c := range classifiers {
		if cards, ok := c.match(hand); ok {
			slices.SortFunc(cards, Card.Compare)
			return c.layout, cards, nil
		}
	}
	// highCard matches every non-empty hand.
	panic("poker: no classifier matched")
}

// Evaluate classifies a player's hand.
func Evaluate(playerID int, hand []Card) (EvaluatedHand, error) {
	layout, contributing, err := Classify(hand)
	if err != nil {
		return EvaluatedHand{}, fmt.Errorf("player %d: %w", playerID, err)
	}
	return EvaluatedHand{
		PlayerID:     playerID,
		Hand:         slices.Clone(hand),
		Layout:       layout,
		Contributing: contributing,
		Highest:      contributing[len(contributing)-1],
	}, nil
}

// Seat pairs a player id with the hand they hold at showdown.
type Seat struct {
	PlayerID int
	Hand     []Card
}

// EvaluateAll scores every seat and returns the results weakest first.
func EvaluateAll(seats []Seat) ([]EvaluatedHand, error) {
	hands := make([]EvaluatedHand, 0, len(seats))
	for _, s := range seats {
		h, err := Evaluate(s.PlayerID, s.Hand)
		if err != nil {
			return nil, err
		}
		hands = append(hands, h)
	}
	slices.SortStableFunc(hands, EvaluatedHand.Compare)
	return hands, nil
}

// Best returns the strongest hand among those accepted by eligible.
func Best(hands []EvaluatedHand, eligible func(playerID int) bool) (EvaluatedHand, bool) {
	var (
		best  EvaluatedHand
		found bool
	)
	for _, h := range hands {
		if eligible != nil && !eligible(h.PlayerID) {
			continue
		}
		if !found || h.Beats(best) {
			best, found = h, true
		}
	}
	return best, found
}
