package game

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(wagers []int, actions ...Action) *ScriptedController {
	return &ScriptedController{Wagers: wagers, Actions: actions}
}

func oneRound() Rules {
	rules := DefaultRules()
	rules.MaxRounds = 1
	return rules
}

func TestEngineNaturalBeatsThreeCardTwentyOne(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted([]int{20}))
	engine, recorder := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice),
		// Alice A, dealer up 9, Alice K, dealer hole 7, dealer hit 5
		WithStackedCards("Ah9cKd7s5h"),
	)

	require.NoError(t, engine.Run(context.Background()))

	assert.Equal(t, 140, alice.Bankroll)
	assert.Equal(t, 0, alice.Wager)
	assert.Empty(t, alice.Controller.(*ScriptedController).Views, "no decision is asked for a natural")

	dealerTurn := EventsOf[DealerTurnEvent](recorder)
	require.Len(t, dealerTurn, 1)
	assert.Equal(t, 21, dealerTurn[0].Value)
	assert.Len(t, dealerTurn[0].Cards, 3)

	settlements := EventsOf[SettlementEvent](recorder)
	require.Len(t, settlements, 1)
	assert.Equal(t, StateBlackjack, settlements[0].Result)
	assert.Equal(t, 60, settlements[0].Payout)
	assert.Equal(t, 40, settlements[0].Net)
	assert.Equal(t, PhaseGameOver, engine.Phase())
	assert.Equal(t, ReasonRoundLimit, engine.Reason())
}

func TestEnginePhaseSequence(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted([]int{10}, Stand))
	engine, _ := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice),
		WithStackedCards("Th9cKd8s"),
	)

	ctx := context.Background()
	want := []Phase{PhasePlaceBets, PhaseDealHands, PhasePlayersTurn, PhaseDealerTurn, PhasePayout, PhaseRoundEnd, PhaseGameOver}
	for _, phase := range want {
		require.NoError(t, engine.Step(ctx))
		assert.Equal(t, phase, engine.Phase())
	}
	assert.Equal(t, 1, engine.Round())

	// stepping a finished game is a no-op
	require.NoError(t, engine.Step(ctx))
	assert.Equal(t, PhaseGameOver, engine.Phase())
}

func TestEnginePayoutResetsHandStates(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted([]int{10}, Hit))
	bob := NewPlayer("Bob", 100, scripted([]int{10}))
	engine, recorder := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice, bob),
		// Alice T,6 hits K and busts; Bob A,K is a natural; dealer 9,8 stands
		WithStackedCards("TdAh9c6sKc8dKs"),
	)

	ctx := context.Background()
	for engine.Phase() != PhaseRoundEnd {
		require.NoError(t, engine.Step(ctx))
	}

	settlements := EventsOf[SettlementEvent](recorder)
	require.Len(t, settlements, 2)
	assert.Equal(t, StateLose, settlements[0].Result)
	assert.Equal(t, StateBlackjack, settlements[1].Result)

	assert.Equal(t, StateIdle, alice.Hand.State())
	assert.Equal(t, StateIdle, bob.Hand.State())
	assert.Equal(t, StateIdle, engine.dealer.Hand().State())
	assert.Len(t, alice.Hand.Cards(), 3, "cards stay on the table until the round ends")
}

func TestEngineDealOrder(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted(nil))
	bob := NewPlayer("Bob", 100, scripted(nil))
	engine, recorder := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice, bob),
		WithStackedCards("2h3h4h5h6h7hTsTdTc"),
	)
	require.NoError(t, engine.Run(context.Background()))

	dealt := EventsOf[CardDealtEvent](recorder)
	require.GreaterOrEqual(t, len(dealt), 6)
	recipients := []string{}
	for _, e := range dealt[:6] {
		recipients = append(recipients, e.Recipient)
	}
	assert.Equal(t, []string{"Alice", "Bob", DealerName, "Alice", "Bob", DealerName}, recipients)
	assert.False(t, dealt[2].FaceDown, "up card is dealt face up")
	assert.True(t, dealt[5].FaceDown, "hole card is dealt face down")

	hands := EventsOf[HandsDealtEvent](recorder)
	require.Len(t, hands, 1)
	assert.Equal(t, deck.NewCard(deck.Hearts, deck.Four), hands[0].DealerUpCard)
	assert.Len(t, hands[0].Seats, 2)
}

func TestEngineTurnViewShowsOnlyUpCard(t *testing.T) {
	ctrl := scripted([]int{10}, Hit, Stand)
	alice := NewPlayer("Alice", 100, ctrl)
	engine, _ := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice),
		WithStackedCards("2h9c3dKs4cTd"),
	)
	require.NoError(t, engine.Run(context.Background()))

	require.Len(t, ctrl.Views, 2)
	assert.Equal(t, deck.NewCard(deck.Clubs, deck.Nine), ctrl.Views[0].DealerUpCard)
	assert.Equal(t, 5, ctrl.Views[0].Value)
	assert.Equal(t, 9, ctrl.Views[1].Value)
	assert.Equal(t, 90, ctrl.Views[0].Bankroll)
	assert.Equal(t, 10, ctrl.Views[0].Wager)
}

func TestEnginePlayerBustLosesWhenDealerBusts(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted([]int{20}, Hit))
	engine, recorder := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice),
		// Alice T+6 hits T, dealer T+6 hits 9
		WithStackedCards("TcTh6c6hTd9s"),
	)
	require.NoError(t, engine.Run(context.Background()))

	turns := EventsOf[TurnEndEvent](recorder)
	require.Len(t, turns, 1)
	assert.Equal(t, OutcomeBust, turns[0].Outcome)

	dealerTurn := EventsOf[DealerTurnEvent](recorder)
	require.Len(t, dealerTurn, 1)
	assert.Equal(t, OutcomeBust, dealerTurn[0].Outcome)

	assert.Equal(t, 80, alice.Bankroll)
	settlements := EventsOf[SettlementEvent](recorder)
	require.Len(t, settlements, 1)
	assert.Equal(t, StateLose, settlements[0].Result)
}

func TestEnginePushReturnsWager(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted([]int{25}, Stand))
	engine, recorder := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice),
		WithStackedCards("TcKh9cKd"),
	)
	require.NoError(t, engine.Run(context.Background()))

	assert.Equal(t, 100, alice.Bankroll)
	settlements := EventsOf[SettlementEvent](recorder)
	require.Len(t, settlements, 1)
	assert.Equal(t, StatePush, settlements[0].Result)
	assert.Equal(t, 0, settlements[0].Net)
}

func TestEngineEliminationAndRoundLimit(t *testing.T) {
	alice := NewPlayer("Alice", 10, scripted([]int{10}, Stand))
	bob := NewPlayer("Bob", 100, scripted([]int{10, 10}, Stand, Stand))
	rules := DefaultRules()
	rules.MaxRounds = 2

	engine, recorder := NewTestEngine(
		WithTestRules(rules),
		WithTestPlayers(alice, bob),
		// round 1: Alice T6, Bob T9, dealer T8
		// round 2: Bob 99, dealer T7
		WithStackedCards("TcThTd6c9h8d" + "9sTs9d7c"),
	)

	ctx := context.Background()
	for {
		require.NoError(t, engine.Step(ctx))
		if engine.Phase() == PhaseRoundStart {
			break
		}
	}
	assert.Equal(t, 1, engine.Round())
	assert.False(t, alice.Active, "Alice is eliminated at round end")
	assert.True(t, bob.Active)

	require.NoError(t, engine.Run(ctx))

	assert.Equal(t, 0, alice.Bankroll)
	assert.Equal(t, 120, bob.Bankroll)
	assert.Equal(t, 0, alice.Hand.Len(), "eliminated players receive no further cards")

	eliminations := EventsOf[EliminationEvent](recorder)
	require.Len(t, eliminations, 1)
	assert.Equal(t, "Alice", eliminations[0].Player)
	assert.Equal(t, 1, eliminations[0].Round)

	for _, e := range EventsOf[CardDealtEvent](recorder) {
		if e.Recipient == "Alice" {
			assert.LessOrEqual(t, e.HandSize, 2)
		}
	}
	assert.Len(t, EventsOf[WagerPlacedEvent](recorder), 3)

	over := EventsOf[GameOverEvent](recorder)
	require.Len(t, over, 1)
	assert.Equal(t, ReasonRoundLimit, over[0].Reason)
	assert.Equal(t, 2, over[0].Rounds)
}

func TestEngineAllEliminatedEndsGame(t *testing.T) {
	alice := NewPlayer("Alice", 10, scripted([]int{10}, Stand))
	engine, recorder := NewTestEngine(
		WithTestPlayers(alice),
		WithStackedCards("TcTd6c8d"),
	)
	require.NoError(t, engine.Run(context.Background()))

	assert.Equal(t, PhaseGameOver, engine.Phase())
	assert.Equal(t, ReasonAllEliminated, engine.Reason())
	assert.False(t, alice.Active)
	assert.Empty(t, engine.ActivePlayers())

	types := recorder.Types()
	assert.Equal(t, EventTypeGameOver, types[len(types)-1])
}

func TestEngineEliminationFloor(t *testing.T) {
	rules := oneRound()
	rules.EliminationFloor = 5
	rules.MaxRounds = 0

	// bankroll drops from 15 to 5, which is at the floor
	alice := NewPlayer("Alice", 15, scripted([]int{10}, Stand))
	engine, _ := NewTestEngine(
		WithTestRules(rules),
		WithTestPlayers(alice),
		WithStackedCards("TcTd6c8d"),
	)
	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, 5, alice.Bankroll)
	assert.False(t, alice.Active)
	assert.Equal(t, 1, engine.Round())
}

func TestEngineAutomatedGameTerminates(t *testing.T) {
	rules := DefaultRules()
	players := []*Player{
		NewPlayer("Bot 1", 30, NewAutoController(randutil.New(1), rules)),
		NewPlayer("Bot 2", 30, NewAutoController(randutil.New(2), rules)),
	}
	engine, recorder := NewTestEngine(WithTestRules(rules), WithTestPlayers(players...), WithTestSeed(7))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, engine.Run(ctx))

	assert.Equal(t, PhaseGameOver, engine.Phase())
	for _, p := range players {
		assert.False(t, p.Active)
		assert.LessOrEqual(t, p.Bankroll, rules.EliminationFloor)
	}

	// every settlement moves the bankroll by exactly its net result
	bankrolls := map[string]int{"Bot 1": 30, "Bot 2": 30}
	for _, e := range recorder.Events {
		switch ev := e.(type) {
		case WagerPlacedEvent:
			bankrolls[ev.Player] -= ev.Amount
			assert.Equal(t, bankrolls[ev.Player], ev.Bankroll)
		case SettlementEvent:
			bankrolls[ev.Player] += ev.Payout
			assert.Equal(t, bankrolls[ev.Player], ev.Bankroll)
		}
	}
}

func TestEngineReshufflesMidDeal(t *testing.T) {
	rules := oneRound()
	rules.Decks = 1
	alice := NewPlayer("Alice", 100, scripted([]int{10}, Stand))
	engine, recorder := NewTestEngine(
		WithTestRules(rules),
		WithTestPlayers(alice),
		WithStackedCards("Th9c"),
	)
	require.NoError(t, engine.Run(context.Background()))

	assert.Len(t, EventsOf[ShoeReshuffleEvent](recorder), 1)
	assert.Len(t, EventsOf[SettlementEvent](recorder), 1)
}

func TestEngineFatalErrors(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	newDealer := func() *Dealer {
		shoe, err := deck.NewShoe(1, randutil.New(1))
		require.NoError(t, err)
		return NewDealer(shoe, 17)
	}

	t.Run("empty roster", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(), newDealer(), nil, WithLogger(logger))
		require.NoError(t, err)
		err = engine.Run(context.Background())
		require.ErrorIs(t, err, ErrNoPlayers)
		assert.Equal(t, PhaseNewGame, engine.Phase())
	})

	t.Run("roster already below the floor", func(t *testing.T) {
		broke := NewPlayer("Broke", 0, scripted(nil))
		engine, err := NewEngine(DefaultRules(), newDealer(), []*Player{broke}, WithLogger(logger))
		require.NoError(t, err)
		require.ErrorIs(t, engine.Run(context.Background()), ErrNoPlayers)
	})

	t.Run("out of range wager", func(t *testing.T) {
		greedy := NewPlayer("Greedy", 100, scripted([]int{500}))
		engine, err := NewEngine(DefaultRules(), newDealer(), []*Player{greedy}, WithLogger(logger))
		require.NoError(t, err)
		err = engine.Run(context.Background())
		require.ErrorIs(t, err, ErrInvalidWager)
		assert.Equal(t, 100, greedy.Bankroll, "rejected wager is not debited")
	})

	t.Run("controller failure", func(t *testing.T) {
		broken := errors.New("input closed")
		ctrl := &ScriptedController{Err: broken}
		engine, err := NewEngine(DefaultRules(), newDealer(), []*Player{NewPlayer("Gone", 100, ctrl)}, WithLogger(logger))
		require.NoError(t, err)
		err = engine.Run(context.Background())
		require.ErrorIs(t, err, ErrNoDecision)
		require.ErrorIs(t, err, broken)
	})

	t.Run("missing controller", func(t *testing.T) {
		_, err := NewEngine(DefaultRules(), newDealer(), []*Player{{Name: "Nobody", Bankroll: 100}})
		require.Error(t, err)
	})

	t.Run("invalid rules", func(t *testing.T) {
		rules := DefaultRules()
		rules.Decks = 0
		_, err := NewEngine(rules, newDealer(), nil)
		require.ErrorIs(t, err, ErrInvalidRules)
	})
}

func TestEngineRunHonoursCancellation(t *testing.T) {
	alice := NewPlayer("Alice", 100, scripted(nil))
	engine, _ := NewTestEngine(WithTestPlayers(alice))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, engine.Run(ctx), context.Canceled)
	assert.Equal(t, PhaseRoundStart, engine.Phase())
}

func TestEnginePacing(t *testing.T) {
	mClock := quartz.NewMock(t)
	alice := NewPlayer("Alice", 100, scripted([]int{10}, Stand))
	engine, recorder := NewTestEngine(
		WithTestRules(oneRound()),
		WithTestPlayers(alice),
		WithStackedCards("Th9cKd8s"),
		WithTestEngineOptions(WithClock(mClock), WithPace(time.Second)),
	)

	done := make(chan error, 1)
	go func() { done <- engine.Run(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, PhaseGameOver, engine.Phase())
			for _, e := range recorder.Events {
				assert.False(t, e.Timestamp().After(mClock.Now()))
			}
			return
		case <-ctx.Done():
			t.Fatal("paced engine did not finish")
		case <-time.After(5 * time.Millisecond):
			mClock.Advance(time.Second).MustWait(ctx)
		}
	}
}
