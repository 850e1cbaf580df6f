package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists every suit in build order
var Suits = [...]Suit{Hearts, Diamonds, Spades, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the long name of the suit (e.g. "Hearts")
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are low; blackjack promotes them to 11
// when valuing a hand, never at the card level.
type Rank int

const (
	Ace Rank = iota + 1
	Two
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
)

// Ranks lists every rank in build order
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Nine {
		return string(rune('0' + int(r)))
	}
	return "?"
}

// Name returns the long name of the rank (e.g. "Queen")
func (r Rank) Name() string {
	names := [...]string{"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Jack", "Queen", "King"}
	if r < Ace || r > King {
		return "Unknown"
	}
	return names[r]
}

// PipValue returns the base blackjack value of the rank: Ace=1, faces=10
func (r Rank) PipValue() int {
	if r >= Ten {
		return 10
	}
	return int(r)
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// LongString returns the card as "Queen of Hearts"
func (c Card) LongString() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit.Name())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// PipValue returns the card's base blackjack value
func (c Card) PipValue() int {
	return c.Rank.PipValue()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCards parses a compact card string such as "AhKd7c" into cards.
// Ranks are A,2-9,T,J,Q,K and suits h,d,s,c; both are case-insensitive.
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length %d: %q", len(s), s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is ParseCards that panics on error, for fixtures and tests
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// ParseCard parses a single two-character card such as "Ts"
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	var rank Rank
	switch r := strings.ToUpper(s[:1]); r {
	case "A":
		rank = Ace
	case "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		if r[0] < '2' || r[0] > '9' {
			return Card{}, fmt.Errorf("invalid rank %q in card %q", r, s)
		}
		rank = Rank(r[0] - '0')
	}

	var suit Suit
	switch strings.ToLower(s[1:]) {
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "s":
		suit = Spades
	case "c":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card %q", s[1:], s)
	}
	return NewCard(suit, rank), nil
}
