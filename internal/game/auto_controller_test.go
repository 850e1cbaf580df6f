package game

import (
	"context"
	"testing"

	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoControllerDecide(t *testing.T) {
	ai := NewAutoController(randutil.New(1), DefaultRules())
	ctx := context.Background()

	for value := 4; value <= 21; value++ {
		action, err := ai.Decide(ctx, TurnView{Value: value})
		require.NoError(t, err)
		if value < 17 {
			assert.Equal(t, Hit, action, "value %d", value)
		} else {
			assert.Equal(t, Stand, action, "value %d", value)
		}
	}
	assert.Equal(t, Automated, ai.Kind())
}

func TestAutoControllerWagerStaysInRange(t *testing.T) {
	rules := DefaultRules()
	ai := NewAutoController(randutil.New(99), rules)
	ctx := context.Background()

	for _, bankroll := range []int{1, 3, 5, 20, 49, 100, 1000, 100000} {
		req := rules.WagerRequest("bot", 1, bankroll)
		for i := 0; i < 200; i++ {
			amount, err := ai.Wager(ctx, req)
			require.NoError(t, err)
			require.True(t, req.Valid(amount), "bankroll %d: wager %d outside %d..%d", bankroll, amount, req.Min, req.Max)
		}
	}
}

func TestAutoControllerWagerUsesFraction(t *testing.T) {
	rules := DefaultRules()
	ai := NewAutoController(randutil.New(5), rules)
	req := rules.WagerRequest("bot", 1, 1000)

	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		amount, err := ai.Wager(context.Background(), req)
		require.NoError(t, err)
		assert.LessOrEqual(t, amount, 100)
		assert.GreaterOrEqual(t, amount, 5)
		seen[amount] = true
	}
	assert.Greater(t, len(seen), 50, "wagers should spread across the range")
}

func TestAutoControllerHonoursCancellation(t *testing.T) {
	ai := NewAutoController(randutil.New(1), DefaultRules())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ai.Decide(ctx, TurnView{Value: 4})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = ai.Wager(ctx, DefaultRules().WagerRequest("bot", 1, 100))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"no decks", func(r *Rules) { r.Decks = 0 }},
		{"bankroll at floor", func(r *Rules) { r.StartingBankroll = r.EliminationFloor }},
		{"negative floor", func(r *Rules) { r.EliminationFloor = -1 }},
		{"zero minimum", func(r *Rules) { r.MinWager = 0 }},
		{"max below min", func(r *Rules) { r.MaxWager = 1 }},
		{"fraction above one", func(r *Rules) { r.AutoWagerFraction = 1.5 }},
		{"dealer stands on sixteen", func(r *Rules) { r.DealerStandsOn = 16 }},
		{"negative rounds", func(r *Rules) { r.MaxRounds = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			assert.ErrorIs(t, rules.Validate(), ErrInvalidRules)
		})
	}
}

func TestWagerRequestShortBankroll(t *testing.T) {
	rules := DefaultRules()

	req := rules.WagerRequest("short", 3, 3)
	assert.Equal(t, 3, req.Min)
	assert.Equal(t, 3, req.Max)

	req = rules.WagerRequest("rich", 3, 10000)
	assert.Equal(t, 5, req.Min)
	assert.Equal(t, 500, req.Max)
	assert.False(t, req.Valid(501))
	assert.False(t, req.Valid(4))
	assert.True(t, req.Valid(5))
}
