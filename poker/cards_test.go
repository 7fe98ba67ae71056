package poker

import (
	"errors"
	"slices"
	"testing"

	"github.com/lox/drawpoker/internal/randutil"
)

func TestCardString(t *testing.T) {
	t.Parallel()

	if got := NewCard(Ten, Hearts).String(); got != "TEN-HEARTS" {
		t.Errorf("expected TEN-HEARTS, got %s", got)
	}
	if got := NewCard(Two, Clubs).String(); got != "TWO-CLUBS" {
		t.Errorf("expected TWO-CLUBS, got %s", got)
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "ACE-SPADES", want: NewCard(Ace, Spades)},
		{input: "two-hearts", want: NewCard(Two, Hearts)},
		{input: " KING-DIAMONDS ", want: NewCard(King, Diamonds)},
		{input: "ACE", wantErr: true},
		{input: "ONE-SPADES", wantErr: true},
		{input: "ACE-STARS", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCardCompare(t *testing.T) {
	t.Parallel()

	aceClubs := NewCard(Ace, Clubs)
	aceSpades := NewCard(Ace, Spades)
	kingSpades := NewCard(King, Spades)

	if aceClubs.Compare(kingSpades) != 1 {
		t.Error("rank must dominate suit")
	}
	if aceClubs.Compare(aceSpades) != -1 {
		t.Error("suit must break rank ties")
	}
	if aceSpades.Compare(NewCard(Ace, Spades)) != 0 {
		t.Error("equal cards must compare equal")
	}
}

func TestDeckDealHand(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 5, 52} {
		d := NewDeck(randutil.New(int64(n)))
		d.Shuffle()

		hand, err := d.DealHand(n)
		if err != nil {
			t.Fatalf("DealHand(%d): %v", n, err)
		}
		if len(hand) != n {
			t.Fatalf("expected %d cards, got %d", n, len(hand))
		}
		if d.Len() != 52-n {
			t.Errorf("expected %d cards left, got %d", 52-n, d.Len())
		}

		seen := make(map[Card]bool)
		for _, c := range hand {
			if seen[c] {
				t.Fatalf("duplicate card %v dealt", c)
			}
			seen[c] = true
			if d.Contains(c) {
				t.Errorf("dealt card %v still in deck", c)
			}
		}
	}
}

func TestDeckDealHandInvalid(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	for _, n := range []int{0, -1, 53} {
		if _, err := d.DealHand(n); !errors.Is(err, ErrInvalidDealCount) {
			t.Errorf("DealHand(%d) error = %v, want ErrInvalidDealCount", n, err)
		}
	}
	if d.Len() != 52 {
		t.Errorf("failed deals must not change the deck, got %d cards", d.Len())
	}
}

func TestDeckDealsFromTheEnd(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	all := d.Cards()

	hand, err := d.DealHand(5)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(hand, all[47:]) {
		t.Errorf("expected the last five cards %v, got %v", all[47:], hand)
	}

	top, err := d.PopTop()
	if err != nil {
		t.Fatal(err)
	}
	if top != all[46] {
		t.Errorf("expected PopTop to return %v, got %v", all[46], top)
	}
}

func TestDeckPushFront(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	c, err := d.PopTop()
	if err != nil {
		t.Fatal(err)
	}
	d.PushFront(c)

	if d.Len() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Len())
	}
	if d.Cards()[0] != c {
		t.Errorf("expected %v at the front", c)
	}
	next, _ := d.PopTop()
	if next == c {
		t.Error("a card pushed to the front must not be the next one drawn")
	}
}

func TestDeckSortedIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewDeck(randutil.New(1))
	b := NewDeck(randutil.New(2))
	a.Shuffle()
	b.Shuffle()
	a.Sort()
	b.Sort()

	if !slices.Equal(a.Cards(), b.Cards()) {
		t.Error("two sorted fresh decks must be identical")
	}
}

func TestDeckShuffleKeepsEveryCard(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(42))
	before := d.Cards()
	d.Shuffle()
	after := d.Cards()

	if slices.Equal(before, after) {
		t.Error("shuffle left the deck in canonical order")
	}
	slices.SortFunc(after, Card.Compare)
	slices.SortFunc(before, Card.Compare)
	if !slices.Equal(before, after) {
		t.Error("shuffle must be a permutation")
	}
}

func TestDeckPopTopEmpty(t *testing.T) {
	t.Parallel()

	d, err := NewDeckFrom(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.PopTop(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestNewDeckFromRejectsDuplicates(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("ACE-SPADES", "KING-SPADES", "ACE-SPADES")
	if _, err := NewDeckFrom(cards, nil); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("expected ErrDuplicateCard, got %v", err)
	}
}
