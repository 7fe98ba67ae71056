package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/drawpoker/poker"
)

var suitSymbols = [...]string{
	poker.Clubs:    "♣",
	poker.Diamonds: "♦",
	poker.Hearts:   "♥",
	poker.Spades:   "♠",
}

var rankSymbols = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Symbol returns the short form of a card, such as "10♥".
func Symbol(c poker.Card) string {
	return rankSymbols[c.Rank] + suitSymbols[c.Suit]
}

// Card renders a card in its suit colour.
func (s Styles) Card(c poker.Card) string {
	if c.Suit == poker.Hearts || c.Suit == poker.Diamonds {
		return s.RedCard.Render(Symbol(c))
	}
	return s.BlackCard.Render(Symbol(c))
}

// Hand renders cards separated by spaces.
func (s Styles) Hand(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return strings.Join(parts, " ")
}

// Evaluation renders a classified hand with its contributing cards.
func (s Styles) Evaluation(h poker.EvaluatedHand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Header.Render("Hand"))
	fmt.Fprintf(&b, "cards:        %s\n", s.Hand(h.Hand))
	fmt.Fprintf(&b, "layout:       %s (%s)\n", s.Layout.Render(h.Layout.Describe()), h.Layout)
	fmt.Fprintf(&b, "contributing: %s\n", s.Hand(h.Contributing))
	fmt.Fprintf(&b, "highest:      %s", s.Card(h.Highest))
	return s.Box.Render(b.String())
}

// Row is one line of a results table.
type Row struct {
	Name    string
	Cards   []poker.Card
	Layout  string
	Cash    int
	Winner  bool
	Folded  bool
	Comment string
}

// Table renders rows with aligned columns.
func (s Styles) Table(title string, rows []Row) string {
	nameWidth := 4
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}

	lines := []string{s.Header.Render(title)}
	for _, r := range rows {
		name := fmt.Sprintf("%-*s", nameWidth, r.Name)
		switch {
		case r.Winner:
			name = s.Winner.Render(name)
		case r.Folded:
			name = s.Folded.Render(name)
		}
		line := fmt.Sprintf("%s  %s  %-16s %8d", name, s.Hand(r.Cards), s.Layout.Render(r.Layout), r.Cash)
		if r.Comment != "" {
			line += "  " + s.Info.Render(r.Comment)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
