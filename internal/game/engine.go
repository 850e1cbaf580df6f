package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Reasons reported on GameOverEvent
const (
	ReasonAllEliminated = "all players eliminated"
	ReasonRoundLimit    = "round limit reached"
)

// Engine drives one dealer and an ordered roster through the round phases.
// It is single-threaded: every controller call blocks the table.
type Engine struct {
	rules    Rules
	dealer   *Dealer
	players  []*Player
	phase    Phase
	round    int
	reason   string
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	pause    func(ctx context.Context) error
}

// NewEngine seats players at a table run by dealer. The roster order is the
// turn order for the whole game.
func NewEngine(rules Rules, dealer *Dealer, players []*Player, opts ...EngineOption) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if dealer == nil {
		return nil, errors.New("engine requires a dealer")
	}
	for i, p := range players {
		if p == nil || p.Controller == nil {
			return nil, fmt.Errorf("player %d has no controller", i+1)
		}
	}

	cfg := &engineConfig{
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}

	e := &Engine{
		rules:    rules,
		dealer:   dealer,
		players:  players,
		phase:    PhaseIdle,
		logger:   cfg.logger.WithPrefix("engine"),
		eventBus: cfg.eventBus,
		clock:    cfg.clock,
	}
	e.pause = e.pacer(cfg.pace)
	dealer.attach(cfg.logger, cfg.eventBus, cfg.clock)
	return e, nil
}

// GetEventBus returns the event bus for subscribing to table events
func (e *Engine) GetEventBus() EventBus {
	return e.eventBus
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Round returns the number of rounds started so far
func (e *Engine) Round() int {
	return e.round
}

// Players returns the roster in turn order, eliminated players included
func (e *Engine) Players() []*Player {
	return e.players
}

// Dealer returns the table's dealer
func (e *Engine) Dealer() *Dealer {
	return e.dealer
}

// Rules returns the table rules
func (e *Engine) Rules() Rules {
	return e.rules
}

// ActivePlayers returns the players still in the game, in turn order
func (e *Engine) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(e.players))
	for _, p := range e.players {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// Run steps the engine until the game is over. It returns nil on a clean game
// over, ctx.Err() when cancelled, and the fatal error otherwise.
func (e *Engine) Run(ctx context.Context) error {
	for e.phase != PhaseGameOver {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(ctx); err != nil {
			return err
		}
		if e.phase != PhaseGameOver {
			if err := e.pause(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Step executes the current phase and advances to the next one. Stepping a
// finished game does nothing.
func (e *Engine) Step(ctx context.Context) error {
	from := e.phase
	var err error

	switch e.phase {
	case PhaseIdle:
	case PhaseNewGame:
		err = e.newGame()
	case PhaseRoundStart:
		e.roundStart()
	case PhasePlaceBets:
		err = e.placeBets(ctx)
	case PhaseDealHands:
		err = e.dealHands()
	case PhasePlayersTurn:
		err = e.playersTurn(ctx)
	case PhaseDealerTurn:
		err = e.dealerTurn()
	case PhasePayout:
		e.payout()
	case PhaseRoundEnd:
		e.phase = e.roundEnd()
		e.logger.Debug("Phase complete", "from", from, "to", e.phase, "round", e.round)
		return nil
	case PhaseGameOver:
		return nil
	default:
		err = fmt.Errorf("unknown phase %d", e.phase)
	}

	if err != nil {
		e.logger.Error("Fatal table error", "phase", from, "round", e.round, "error", err)
		return fmt.Errorf("%s (round %d): %w", from, e.round, err)
	}

	e.phase = from.next()
	e.logger.Debug("Phase complete", "from", from, "to", e.phase, "round", e.round)
	return nil
}

func (e *Engine) newGame() error {
	if len(e.players) == 0 {
		return ErrNoPlayers
	}
	e.dealer.PrepareShoe()

	snapshots := make([]PlayerSnapshot, len(e.players))
	for i, p := range e.players {
		p.Active = p.Bankroll > e.rules.EliminationFloor
		p.Hand.Clear()
		p.ClearWager()
		snapshots[i] = p.Snapshot()
	}
	if len(e.ActivePlayers()) == 0 {
		return ErrNoPlayers
	}

	e.logger.Info("New game", "players", len(e.players), "decks", e.rules.Decks)
	e.eventBus.Publish(GameStartEvent{
		Players:  snapshots,
		Decks:    e.rules.Decks,
		ShoeSize: e.dealer.ShoeRemaining(),
		stamp:    e.now(),
	})
	return nil
}

func (e *Engine) roundStart() {
	e.round++
	active := e.ActivePlayers()
	snapshots := make([]PlayerSnapshot, len(active))
	for i, p := range active {
		snapshots[i] = p.Snapshot()
	}
	e.logger.Debug("Round start", "round", e.round, "active", len(active))
	e.eventBus.Publish(RoundStartEvent{Round: e.round, Active: snapshots, stamp: e.now()})
}

func (e *Engine) placeBets(ctx context.Context) error {
	active := e.ActivePlayers()
	if len(active) == 0 {
		return ErrNoPlayers
	}

	for _, p := range active {
		req := e.rules.WagerRequest(p.Name, e.round, p.Bankroll)
		amount, err := p.Controller.Wager(ctx, req)
		if err != nil {
			return fmt.Errorf("%w: wager for %s: %w", ErrNoDecision, p.Name, err)
		}
		if !req.Valid(amount) {
			return fmt.Errorf("%w: %s offered %d outside %d..%d", ErrInvalidWager, p.Name, amount, req.Min, req.Max)
		}
		if err := p.PlaceWager(amount); err != nil {
			return err
		}

		e.logger.Debug("Wager placed", "player", p.Name, "amount", amount, "bankroll", p.Bankroll)
		e.eventBus.Publish(WagerPlacedEvent{
			Round:    e.round,
			Player:   p.Name,
			Amount:   amount,
			Bankroll: p.Bankroll,
			stamp:    e.now(),
		})
	}
	return nil
}

// dealHands deals one card to each player, the dealer's up card, a second card
// to each player, then the dealer's hole card.
func (e *Engine) dealHands() error {
	active := e.ActivePlayers()
	for pass := 0; pass < 2; pass++ {
		for _, p := range active {
			if _, err := e.dealer.Deal(p.Name, &p.Hand, false); err != nil {
				return err
			}
		}
		if _, err := e.dealer.DealSelf(pass == 1); err != nil {
			return err
		}
	}

	up, _ := e.dealer.UpCard()
	seats := make([]SeatView, len(active))
	for i, p := range active {
		seats[i] = SeatView{
			Name:  p.Name,
			Cards: p.Hand.Cards(),
			Value: p.Hand.Value(),
			Total: p.Hand.TotalString(),
		}
	}
	e.eventBus.Publish(HandsDealtEvent{
		Round:        e.round,
		DealerUpCard: up,
		Seats:        seats,
		stamp:        e.now(),
	})
	return nil
}

func (e *Engine) playersTurn(ctx context.Context) error {
	active := e.ActivePlayers()
	if len(active) == 0 {
		return ErrNoPlayers
	}
	for _, p := range active {
		outcome, err := e.playerTurn(ctx, p)
		if err != nil {
			return err
		}
		e.logger.Debug("Turn over", "player", p.Name, "outcome", outcome, "hand", p.Hand.String(), "value", p.Hand.Value())
		e.eventBus.Publish(TurnEndEvent{
			Round:   e.round,
			Player:  p.Name,
			Outcome: outcome,
			Cards:   p.Hand.Cards(),
			Value:   p.Hand.Value(),
			stamp:   e.now(),
		})
	}
	return nil
}

// playerTurn asks the player's controller to hit or stand until the hand busts,
// is a natural, or stands.
func (e *Engine) playerTurn(ctx context.Context, p *Player) (TurnOutcome, error) {
	if p.Hand.Len() == 0 {
		return OutcomeStand, fmt.Errorf("%w: %s at turn start", ErrEmptyHand, p.Name)
	}
	up, _ := e.dealer.UpCard()

	for {
		if p.Hand.IsBust() {
			return resolveTurn(&p.Hand, OutcomeBust), nil
		}
		if p.Hand.IsNatural() {
			return resolveTurn(&p.Hand, OutcomeBlackjack), nil
		}

		action, err := p.Controller.Decide(ctx, TurnView{
			Player:       p.Name,
			Cards:        p.Hand.Cards(),
			Value:        p.Hand.Value(),
			Soft:         p.Hand.IsSoft(),
			Total:        p.Hand.TotalString(),
			Bankroll:     p.Bankroll,
			Wager:        p.Wager,
			DealerUpCard: up,
		})
		if err != nil {
			return OutcomeStand, fmt.Errorf("%w: decision for %s: %w", ErrNoDecision, p.Name, err)
		}

		switch action {
		case Hit:
			if _, err := e.dealer.Deal(p.Name, &p.Hand, false); err != nil {
				return OutcomeStand, err
			}
		case Stand:
			return resolveTurn(&p.Hand, OutcomeStand), nil
		default:
			return OutcomeStand, fmt.Errorf("%w: %s chose %d", ErrNoDecision, p.Name, action)
		}
	}
}

func (e *Engine) dealerTurn() error {
	outcome, err := e.dealer.PlayTurn()
	if err != nil {
		return err
	}
	hand := e.dealer.Hand()
	e.eventBus.Publish(DealerTurnEvent{
		Round:   e.round,
		Outcome: outcome,
		Cards:   hand.Cards(),
		Value:   hand.Value(),
		stamp:   e.now(),
	})
	return nil
}

func (e *Engine) payout() {
	dealerHand := e.dealer.Hand()
	for _, p := range e.ActivePlayers() {
		result := Settle(&p.Hand, dealerHand)
		p.Hand.setState(result)

		wager := p.Wager
		paid := Payout(result, wager)
		p.Credit(paid)
		p.ClearWager()

		e.logger.Debug("Settled", "player", p.Name, "result", result, "wager", wager, "payout", paid, "bankroll", p.Bankroll)
		e.eventBus.Publish(SettlementEvent{
			Round:       e.round,
			Player:      p.Name,
			Result:      result,
			Wager:       wager,
			Payout:      paid,
			Net:         paid - wager,
			Bankroll:    p.Bankroll,
			PlayerValue: p.Hand.Value(),
			DealerValue: dealerHand.Value(),
			stamp:       e.now(),
		})
	}

	// settled hands keep their cards until roundEnd but go back to idle
	for _, p := range e.ActivePlayers() {
		p.Hand.setState(StateIdle)
	}
	dealerHand.setState(StateIdle)
}

// roundEnd clears every hand, eliminates players at or below the floor and
// picks the next phase.
func (e *Engine) roundEnd() Phase {
	e.dealer.ClearHand()
	for _, p := range e.ActivePlayers() {
		p.Hand.Clear()
		if p.Bankroll <= e.rules.EliminationFloor {
			p.Active = false
			e.logger.Info("Player eliminated", "player", p.Name, "bankroll", p.Bankroll, "round", e.round)
			e.eventBus.Publish(EliminationEvent{
				Round:    e.round,
				Player:   p.Name,
				Bankroll: p.Bankroll,
				Floor:    e.rules.EliminationFloor,
				stamp:    e.now(),
			})
		}
	}

	remaining := len(e.ActivePlayers())
	e.eventBus.Publish(RoundEndEvent{
		Round:         e.round,
		ActivePlayers: remaining,
		ShoeRemaining: e.dealer.ShoeRemaining(),
		stamp:         e.now(),
	})

	switch {
	case remaining == 0:
		e.reason = ReasonAllEliminated
	case e.rules.MaxRounds > 0 && e.round >= e.rules.MaxRounds:
		e.reason = ReasonRoundLimit
	default:
		return PhaseRoundStart
	}

	standings := make([]PlayerSnapshot, len(e.players))
	for i, p := range e.players {
		standings[i] = p.Snapshot()
	}
	e.logger.Info("Game over", "rounds", e.round, "reason", e.reason)
	e.eventBus.Publish(GameOverEvent{
		Rounds:    e.round,
		Reason:    e.reason,
		Standings: standings,
		stamp:     e.now(),
	})
	return PhaseGameOver
}

// Reason returns why the game ended, empty while it is running
func (e *Engine) Reason() string {
	return e.reason
}

func (e *Engine) now() stamp {
	return stamp{e.clock.Now()}
}

// pacer returns the pause run between phases
func (e *Engine) pacer(d time.Duration) func(ctx context.Context) error {
	if d <= 0 {
		return func(ctx context.Context) error { return nil }
	}
	return func(ctx context.Context) error {
		timer := e.clock.NewTimer(d, "engine", "pace")
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}
