package poker

import (
	"fmt"
	"strings"
)

// Rank is a card rank ordered from Two (lowest) to Ace (highest).
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks.
const NumRanks = 13

var rankNames = [NumRanks]string{
	"TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT",
	"NINE", "TEN", "JACK", "QUEEN", "KING", "ACE",
}

// String returns the wire name of the rank (e.g. "ACE").
func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return rankNames[r]
}

// Suit is a card suit. Suits are ordered Clubs < Diamonds < Hearts < Spades and
// only break ties between cards of equal rank.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

var suitNames = [NumSuits]string{"CLUBS", "DIAMONDS", "HEARTS", "SPADES"}

// String returns the wire name of the suit (e.g. "HEARTS").
func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return suitNames[s]
}

// Card is an immutable playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from a rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String renders the card the way it travels on the wire, e.g. "TEN-HEARTS".
func (c Card) String() string {
	return c.Rank.String() + "-" + c.Suit.String()
}

// Compare orders cards by rank, then suit. It returns -1, 0 or +1.
func (c Card) Compare(other Card) int {
	switch {
	case c.Rank < other.Rank:
		return -1
	case c.Rank > other.Rank:
		return 1
	case c.Suit < other.Suit:
		return -1
	case c.Suit > other.Suit:
		return 1
	default:
		return 0
	}
}

// ParseCard parses a card in RANK-SUIT form. Matching is case-insensitive.
func ParseCard(s string) (Card, error) {
	rankPart, suitPart, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "-")
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q: expected RANK-SUIT", s)
	}

	rank, ok := parseRank(rankPart)
	if !ok {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}
	suit, ok := parseSuit(suitPart)
	if !ok {
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses every token as a card.
func ParseCards(tokens ...string) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseCard(tok)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input.
func MustParseCards(tokens ...string) []Card {
	cards, err := ParseCards(tokens...)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(s string) (Rank, bool) {
	for i, name := range rankNames {
		if name == s {
			return Rank(i), true
		}
	}
	return 0, false
}

func parseSuit(s string) (Suit, bool) {
	for i, name := range suitNames {
		if name == s {
			return Suit(i), true
		}
	}
	return 0, false
}

// FormatCards renders cards as space-separated wire tokens.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
