package poker

// Layout is the category of a five-card hand, ordered from weakest to
// strongest.
type Layout uint8

const (
	HighCard Layout = iota
	Pair
	TwoPairs
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var layoutNames = [...]string{
	HighCard:      "HIGH_CARD",
	Pair:          "PAIR",
	TwoPairs:      "TWO_PAIRS",
	ThreeOfAKind:  "THREE_OF_A_KIND",
	Straight:      "STRAIGHT",
	Flush:         "FLUSH",
	FullHouse:     "FULL_HOUSE",
	FourOfAKind:   "FOUR_OF_A_KIND",
	StraightFlush: "STRAIGHT_FLUSH",
	RoyalFlush:    "ROYAL_FLUSH",
}

// String returns the wire name of the layout, as sent in score messages.
func (l Layout) String() string {
	if int(l) >= len(layoutNames) {
		return "UNKNOWN"
	}
	return layoutNames[l]
}

// Describe returns a human readable layout name.
func (l Layout) Describe() string {
	switch l {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPairs:
		return "Two Pairs"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}
