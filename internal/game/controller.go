package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
)

// Action is a player's turn decision
type Action int

const (
	Stand Action = iota
	Hit
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// ControllerKind tags which kind of decision source drives a player
type ControllerKind int

const (
	Automated ControllerKind = iota
	Human
)

// String returns the string representation of a controller kind
func (k ControllerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Automated:
		return "computer"
	default:
		return "unknown"
	}
}

// TurnView is the read-only table state offered to a controller when it must
// hit or stand. Only the dealer's up card is visible.
type TurnView struct {
	Player       string
	Cards        []deck.Card
	Value        int
	Soft         bool
	Total        string // "7 or 17" style rendering
	Bankroll     int
	Wager        int
	DealerUpCard deck.Card
}

// WagerRequest describes the legal wager range for one player this round
type WagerRequest struct {
	Player   string
	Round    int
	Bankroll int
	Min      int
	Max      int
}

// Valid reports whether amount lies in the request's range
func (r WagerRequest) Valid(amount int) bool {
	return amount > 0 && amount >= r.Min && amount <= r.Max && amount <= r.Bankroll
}

// Controller is any entity (human or computer) that makes a player's decisions.
// Calls block until a decision is available or ctx is done; controllers never
// mutate table state.
type Controller interface {
	Kind() ControllerKind
	// Decide chooses Hit or Stand for the hand described by view
	Decide(ctx context.Context, view TurnView) (Action, error)
	// Wager returns a stake inside req's range
	Wager(ctx context.Context, req WagerRequest) (int, error)
}
