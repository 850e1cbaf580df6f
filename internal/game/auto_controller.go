package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
)

// AutoController plays without input: it hits below a fixed threshold (the
// dealer's own policy) and stakes a random slice of its bankroll.
type AutoController struct {
	rng      deck.IndexSource
	hitBelow int
	fraction float64
}

// NewAutoController creates a computer controller following the given rules
func NewAutoController(rng deck.IndexSource, rules Rules) *AutoController {
	return &AutoController{
		rng:      rng,
		hitBelow: rules.AutoHitBelow,
		fraction: rules.AutoWagerFraction,
	}
}

// Kind implements Controller
func (a *AutoController) Kind() ControllerKind {
	return Automated
}

// Decide hits while the effective total is below the threshold
func (a *AutoController) Decide(ctx context.Context, view TurnView) (Action, error) {
	if err := ctx.Err(); err != nil {
		return Stand, err
	}
	if view.Value < a.hitBelow {
		return Hit, nil
	}
	return Stand, nil
}

// Wager picks uniformly between the minimum and a fraction of the bankroll,
// clamped to the request's range.
func (a *AutoController) Wager(ctx context.Context, req WagerRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	upper := int(float64(req.Bankroll) * a.fraction)
	if upper > req.Max {
		upper = req.Max
	}
	if upper < req.Min {
		upper = req.Min
	}
	return req.Min + a.rng.IntN(upper-req.Min+1), nil
}
