package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// Blackjack is the best possible total
	Blackjack = 21

	aceBonus = 10
)

// HandState is the classification of a hand after a turn or settlement
type HandState int

const (
	StateIdle HandState = iota
	StateWin
	StateLose
	StatePush
	StateBlackjack
)

// String returns the string representation of a hand state
func (s HandState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWin:
		return "win"
	case StateLose:
		return "lose"
	case StatePush:
		return "push"
	case StateBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Hand is an ordered, append-only set of cards held by a player or the dealer.
// The zero value is an empty hand ready to use.
type Hand struct {
	cards []deck.Card
	state HandState
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Totals returns the hand's hard total (every ace is 1) and soft total
// (every ace is 11).
func (h *Hand) Totals() (hard, soft int) {
	for _, c := range h.cards {
		hard += c.PipValue()
		soft += c.PipValue()
		if c.IsAce() {
			soft += aceBonus
		}
	}
	return hard, soft
}

// Value returns the effective total: the soft total while it is below 22 and
// differs from the hard total, otherwise the hard total.
func (h *Hand) Value() int {
	hard, soft := h.Totals()
	if soft < 22 && soft > hard {
		return soft
	}
	return hard
}

// IsSoft reports whether the effective total counts an ace as 11
func (h *Hand) IsSoft() bool {
	hard, _ := h.Totals()
	return h.Value() != hard
}

// IsBust returns true if the effective total is over 21
func (h *Hand) IsBust() bool {
	return h.Value() > Blackjack
}

// IsNatural returns true for a two-card 21. A 21 reached with more cards is
// an ordinary total.
func (h *Hand) IsNatural() bool {
	return len(h.cards) == 2 && h.Value() == Blackjack
}

// State returns the hand's classification
func (h *Hand) State() HandState {
	return h.state
}

// setState is only called by turn resolution and settlement
func (h *Hand) setState(s HandState) {
	h.state = s
}

// Clear discards every card and resets the state to idle
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
	h.state = StateIdle
}

// String returns the cards as "[A♠ K♥]"
func (h *Hand) String() string {
	return FormatCards(h.cards)
}

// TotalString renders the total the way the table announces it: "7 or 17"
// while a soft total is live, otherwise the single value.
func (h *Hand) TotalString() string {
	hard, soft := h.Totals()
	if soft < 22 && soft > hard {
		return fmt.Sprintf("%d or %d", hard, soft)
	}
	return fmt.Sprintf("%d", hard)
}

// FormatCards renders cards as "[A♠ K♥]"
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
