package game

import "errors"

// Fatal conditions. The engine stops on any of these rather than guessing.
var (
	ErrNoPlayers     = errors.New("no players at the table")
	ErrShoeExhausted = errors.New("shoe exhausted after rebuild")
	ErrInvalidWager  = errors.New("invalid wager")
	ErrEmptyHand     = errors.New("hand has no cards")
	ErrNoDecision    = errors.New("controller returned no decision")
	ErrInvalidRules  = errors.New("invalid rules")
)
