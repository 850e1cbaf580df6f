package deck

import (
	"errors"
	"fmt"
)

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// ErrInvalidDeckCount is returned when a shoe is configured with fewer than one deck
var ErrInvalidDeckCount = errors.New("deck count must be at least 1")

// IndexSource supplies uniformly distributed indices in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type IndexSource interface {
	IntN(n int) int
}

// Shoe is a multi-deck stack of cards. Draws take from the top (end) of the stack.
type Shoe struct {
	decks int
	cards []Card
	src   IndexSource
}

// NewShoe creates a shoe holding decks full decks in build order. Call Shuffle
// before dealing.
func NewShoe(decks int, src IndexSource) (*Shoe, error) {
	if decks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDeckCount, decks)
	}
	if src == nil {
		return nil, errors.New("shoe requires an index source")
	}
	s := &Shoe{
		decks: decks,
		cards: make([]Card, 0, decks*CardsPerDeck),
		src:   src,
	}
	s.Build()
	return s, nil
}

// NewShoeFromCards creates a shoe whose next draws return cards in the given
// order. When it runs dry it rebuilds as a regular shoe of decks decks.
func NewShoeFromCards(decks int, src IndexSource, cards ...Card) (*Shoe, error) {
	s, err := NewShoe(decks, src)
	if err != nil {
		return nil, err
	}
	s.cards = s.cards[:0]
	for i := len(cards) - 1; i >= 0; i-- {
		s.cards = append(s.cards, cards[i])
	}
	return s, nil
}

// Build discards whatever is left and refills the shoe with decks × 52 cards
// in suit-then-rank order.
func (s *Shoe) Build() {
	s.cards = s.cards[:0]
	for d := 0; d < s.decks; d++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
}

// Shuffle permutes the remaining cards uniformly at random
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.src.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card. It returns false, leaving the shoe
// untouched, when no cards remain.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	top := len(s.cards) - 1
	card := s.cards[top]
	s.cards = s.cards[:top]
	return card, true
}

// Peek returns the top card without removing it
func (s *Shoe) Peek() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Size returns the card count of a freshly built shoe
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Cards returns a copy of the remaining cards, bottom first
func (s *Shoe) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}
