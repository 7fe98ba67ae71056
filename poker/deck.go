package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
)

var (
	// ErrInvalidDealCount is returned when a hand size is non-positive or
	// larger than the deck.
	ErrInvalidDealCount = errors.New("invalid number of cards to deal")

	// ErrEmptyDeck is returned when drawing from an empty deck.
	ErrEmptyDeck = errors.New("deck is empty")

	// ErrDuplicateCard is returned when a deck would hold the same card twice.
	ErrDuplicateCard = errors.New("duplicate card in deck")
)

// Deck is an ordered sequence of cards. The "top" of the deck is the end of
// the slice: hands and single draws are taken from there, while returned
// cards go to the front.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a complete 52-card deck in canonical order (suit by suit,
// ranks ascending). It is not shuffled.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, NumSuits*NumRanks),
		rng:   rng,
	}
	for suit := range Suit(NumSuits) {
		for rank := range Rank(NumRanks) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewDeckFrom creates a deck holding exactly the given cards, in order.
func NewDeckFrom(cards []Card, rng *rand.Rand) (*Deck, error) {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
	}
	return &Deck{cards: slices.Clone(cards), rng: rng}, nil
}

// Shuffle applies a uniform Fisher-Yates permutation.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealHand removes and returns the last n cards of the deck.
func (d *Deck) DealHand(n int) ([]Card, error) {
	if n <= 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: %d (deck has %d)", ErrInvalidDealCount, n, len(d.cards))
	}
	cut := len(d.cards) - n
	hand := slices.Clone(d.cards[cut:])
	d.cards = d.cards[:cut]
	return hand, nil
}

// PopTop removes and returns the last card of the deck.
func (d *Deck) PopTop() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	return c, nil
}

// PushFront puts a card at the bottom of the deck, the position furthest from
// the next draw.
func (d *Deck) PushFront(c Card) {
	d.cards = slices.Insert(d.cards, 0, c)
}

// Sort orders the deck ascending by rank, then suit.
func (d *Deck) Sort() {
	slices.SortFunc(d.cards, Card.Compare)
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck contents, front first.
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

// Contains reports whether c is still in the deck.
func (d *Deck) Contains(c Card) bool {
	return slices.Contains(d.cards, c)
}
