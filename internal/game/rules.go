package game

import "fmt"

// Rules holds the table configuration shared by the engine, the dealer and
// computer controllers.
type Rules struct {
	Decks             int     // decks per shoe
	StartingBankroll  int     // bankroll for new players
	EliminationFloor  int     // players at or below this bankroll are out
	MinWager          int     // smallest stake, lowered to the bankroll when short
	MaxWager          int     // largest stake, 0 for bankroll-limited only
	AutoWagerFraction float64 // computer players stake up to this share of bankroll
	DealerStandsOn    int     // dealer draws below this total
	AutoHitBelow      int     // computer players draw below this total
	MaxRounds         int     // 0 plays until everyone is eliminated
}

// DefaultRules returns the canonical table: six decks, 100 units per player,
// elimination at zero.
func DefaultRules() Rules {
	return Rules{
		Decks:             6,
		StartingBankroll:  100,
		EliminationFloor:  0,
		MinWager:          5,
		MaxWager:          500,
		AutoWagerFraction: 0.1,
		DealerStandsOn:    17,
		AutoHitBelow:      17,
	}
}

// Validate checks the rules for values the engine cannot play with
func (r Rules) Validate() error {
	switch {
	case r.Decks < 1:
		return fmt.Errorf("%w: decks must be at least 1, got %d", ErrInvalidRules, r.Decks)
	case r.StartingBankroll <= r.EliminationFloor:
		return fmt.Errorf("%w: starting bankroll %d must exceed elimination floor %d", ErrInvalidRules, r.StartingBankroll, r.EliminationFloor)
	case r.EliminationFloor < 0:
		return fmt.Errorf("%w: elimination floor cannot be negative", ErrInvalidRules)
	case r.MinWager < 1:
		return fmt.Errorf("%w: minimum wager must be at least 1, got %d", ErrInvalidRules, r.MinWager)
	case r.MaxWager != 0 && r.MaxWager < r.MinWager:
		return fmt.Errorf("%w: maximum wager %d below minimum %d", ErrInvalidRules, r.MaxWager, r.MinWager)
	case r.AutoWagerFraction <= 0 || r.AutoWagerFraction > 1:
		return fmt.Errorf("%w: auto wager fraction must be in (0, 1], got %g", ErrInvalidRules, r.AutoWagerFraction)
	case r.DealerStandsOn < 17 || r.DealerStandsOn > Blackjack:
		return fmt.Errorf("%w: dealer must stand on 17..21, got %d", ErrInvalidRules, r.DealerStandsOn)
	case r.AutoHitBelow < 2 || r.AutoHitBelow > Blackjack:
		return fmt.Errorf("%w: auto hit threshold must be in 2..21, got %d", ErrInvalidRules, r.AutoHitBelow)
	case r.MaxRounds < 0:
		return fmt.Errorf("%w: max rounds cannot be negative", ErrInvalidRules)
	}
	return nil
}

// WagerRequest returns the legal stake range for a bankroll. A bankroll below
// the table minimum may still stake whatever it has left.
func (r Rules) WagerRequest(name string, round, bankroll int) WagerRequest {
	lo := min(r.MinWager, bankroll)
	hi := bankroll
	if r.MaxWager > 0 && r.MaxWager < hi {
		hi = r.MaxWager
	}
	return WagerRequest{
		Player:   name,
		Round:    round,
		Bankroll: bankroll,
		Min:      lo,
		Max:      hi,
	}
}
