package game

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// ScriptedController replays fixed wagers and actions. Once a script runs out
// it wagers the minimum and stands.
type ScriptedController struct {
	ControllerKind ControllerKind
	Wagers         []int
	Actions        []Action
	Err            error // returned from every call when set

	Views    []TurnView
	Requests []WagerRequest
}

// Kind implements Controller
func (s *ScriptedController) Kind() ControllerKind {
	return s.ControllerKind
}

// Decide implements Controller
func (s *ScriptedController) Decide(ctx context.Context, view TurnView) (Action, error) {
	s.Views = append(s.Views, view)
	if s.Err != nil {
		return Stand, s.Err
	}
	if len(s.Actions) == 0 {
		return Stand, nil
	}
	action := s.Actions[0]
	s.Actions = s.Actions[1:]
	return action, nil
}

// Wager implements Controller
func (s *ScriptedController) Wager(ctx context.Context, req WagerRequest) (int, error) {
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return 0, s.Err
	}
	if len(s.Wagers) == 0 {
		return req.Min, nil
	}
	amount := s.Wagers[0]
	s.Wagers = s.Wagers[1:]
	return amount, nil
}

// EventRecorder keeps every event it receives, in order
type EventRecorder struct {
	Events []GameEvent
}

// OnEvent implements EventSubscriber
func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []EventType {
	types := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.EventType()
	}
	return types
}

// EventsOf returns the recorded events of type T
func EventsOf[T GameEvent](r *EventRecorder) []T {
	var out []T
	for _, e := range r.Events {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// TestTableOption configures test engine creation
type TestTableOption func(*testTableBuilder)

type testTableBuilder struct {
	seed    int64
	rules   Rules
	cards   string
	players []*Player
	opts    []EngineOption
}

// WithTestSeed sets the seed of the shoe's generator
func WithTestSeed(seed int64) TestTableOption {
	return func(b *testTableBuilder) { b.seed = seed }
}

// WithTestRules replaces the default rules
func WithTestRules(rules Rules) TestTableOption {
	return func(b *testTableBuilder) { b.rules = rules }
}

// WithStackedCards makes the shoe deal these cards first (compact form, e.g. "AhKs")
func WithStackedCards(cards string) TestTableOption {
	return func(b *testTableBuilder) { b.cards = cards }
}

// WithTestPlayers seats the given players
func WithTestPlayers(players ...*Player) TestTableOption {
	return func(b *testTableBuilder) { b.players = players }
}

// WithTestEngineOptions passes options through to NewEngine
func WithTestEngineOptions(opts ...EngineOption) TestTableOption {
	return func(b *testTableBuilder) { b.opts = append(b.opts, opts...) }
}

// NewTestEngine creates an engine that has already run NewGame, with the shoe
// stacked as requested and every event recorded. It panics on setup errors.
func NewTestEngine(opts ...TestTableOption) (*Engine, *EventRecorder) {
	builder := &testTableBuilder{
		seed:  42,
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(builder)
	}

	src := randutil.New(builder.seed)
	shoe, err := deck.NewShoe(builder.rules.Decks, src)
	if err != nil {
		panic(err)
	}
	dealer := NewDealer(shoe, builder.rules.DealerStandsOn)

	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)

	engineOpts := append([]EngineOption{
		WithLogger(log.NewWithOptions(io.Discard, log.Options{})),
		WithEventBus(bus),
	}, builder.opts...)
	engine, err := NewEngine(builder.rules, dealer, builder.players, engineOpts...)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for engine.Phase() != PhaseRoundStart {
		if err := engine.Step(ctx); err != nil {
			panic(err)
		}
	}

	if builder.cards != "" {
		stacked, err := deck.NewShoeFromCards(builder.rules.Decks, src, deck.MustParseCards(builder.cards)...)
		if err != nil {
			panic(err)
		}
		dealer.shoe = stacked
	}
	return engine, recorder
}
