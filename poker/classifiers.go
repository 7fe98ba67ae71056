package poker

import "slices"

// classifier reports whether a hand matches one layout and, if so, which
// cards are responsible for the match.
type classifier func(hand []Card) ([]Card, bool)

// classifiers is tried strongest first; the first match wins. High card
// always matches a non-empty hand, so evaluation never falls off the end.
var classifiers = [...]struct {
	layout Layout
	match  classifier
}{
	{RoyalFlush, royalFlush},
	{StraightFlush, straightFlush},
	{FourOfAKind, fourOfAKind},
	{FullHouse, fullHouse},
	{Flush, flush},
	{Straight, straight},
	{ThreeOfAKind, threeOfAKind},
	{TwoPairs, twoPairs},
	{Pair, onePair},
	{HighCard, highCard},
}

func sortedCopy(hand []Card) []Card {
	sorted := slices.Clone(hand)
	slices.SortFunc(sorted, Card.Compare)
	return sorted
}

// sameRankRun finds the first run of n cards sharing a rank in ascending
// order.
func sameRankRun(hand []Card, n int) ([]Card, bool) {
	sorted := sortedCopy(hand)
	for i := 0; i+n <= len(sorted); i++ {
		run := sorted[i : i+n]
		if run[0].Rank == run[n-1].Rank {
			return slices.Clone(run), true
		}
	}
	return nil, false
}

// without returns hand minus every card in remove.
func without(hand, remove []Card) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if !slices.Contains(remove, c) {
			out = append(out, c)
		}
	}
	return out
}

func onePair(hand []Card) ([]Card, bool) {
	return sameRankRun(hand, 2)
}

func threeOfAKind(hand []Card) ([]Card, bool) {
	return sameRankRun(hand, 3)
}

func fourOfAKind(hand []Card) ([]Card, bool) {
	return sameRankRun(hand, 4)
}

func twoPairs(hand []Card) ([]Card, bool) {
	first, ok := onePair(hand)
	if !ok {
		return nil, false
	}
	second, ok := onePair(without(hand, first))
	if !ok {
		return nil, false
	}
	return append(first, second...), true
}

func fullHouse(hand []Card) ([]Card, bool) {
	three, ok := threeOfAKind(hand)
	if !ok {
		return nil, false
	}
	pair, ok := onePair(without(hand, three))
	if !ok {
		return nil, false
	}
	return append(three, pair...), true
}

// straight requires every adjacent pair of ranks to differ by exactly one.
// Aces only play high.
func straight(hand []Card) ([]Card, bool) {
	if len(hand) != HandSize {
		return nil, false
	}
	sorted := sortedCopy(hand)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return nil, false
		}
	}
	return sorted, true
}

func flush(hand []Card) ([]Card, bool) {
	if len(hand) != HandSize {
		return nil, false
	}
	sorted := sortedCopy(hand)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Suit != sorted[0].Suit {
			return nil, false
		}
	}
	return sorted, true
}

func straightFlush(hand []Card) ([]Card, bool) {
	cards, ok := straight(hand)
	if !ok {
		return nil, false
	}
	if _, ok := flush(cards); !ok {
		return nil, false
	}
	return cards, true
}

func royalFlush(hand []Card) ([]Card, bool) {
	cards, ok := straightFlush(hand)
	if !ok {
		return nil, false
	}
	if cards[0].Rank != Ten || cards[len(cards)-1].Rank != Ace {
		return nil, false
	}
	return cards, true
}

func highCard(hand []Card) ([]Card, bool) {
	if len(hand) == 0 {
		return nil, false
	}
	sorted := sortedCopy(hand)
	return sorted[len(sorted)-1:], true
}
