// Package simulator plays many independent automated blackjack games at once
// and aggregates their outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRounds caps simulated games whose rules leave the round count unlimited
const DefaultMaxRounds = 1000

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Players     int
	Seed        int64
	Rules       game.Rules
	Concurrency int           // parallel games; 0 means GOMAXPROCS
	Timeout     time.Duration // per game; 0 disables
	Logger      *log.Logger
	Progress    func(completed, total int)
}

// Simulator runs automated blackjack games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	if config.Rules.MaxRounds == 0 {
		config.Rules.MaxRounds = DefaultMaxRounds
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the merged statistics. Games share nothing;
// each gets a seed derived from the run seed, so results are reproducible
// regardless of scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, errors.New("number of games must be positive")
	}
	if s.config.Players <= 0 {
		return nil, game.ErrNoPlayers
	}
	if err := s.config.Rules.Validate(); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation", "games", s.config.Games, "players", s.config.Players,
		"seed", s.config.Seed, "concurrency", s.config.Concurrency)

	results := make([]*statistics.Statistics, s.config.Games)

	var (
		mu        sync.Mutex
		completed int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for i := range s.config.Games {
		g.Go(func() error {
			seed := randutil.Derive(s.config.Seed, i)
			stats, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = stats

			if s.config.Progress != nil {
				mu.Lock()
				completed++
				s.config.Progress(completed, s.config.Games)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// merge in game order so Values are independent of scheduling
	total := &statistics.Statistics{}
	for _, stats := range results {
		total.Merge(stats)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "games", total.Games, "hands", total.Hands, "mean", total.Mean())
	return total, nil
}

// playGame runs one game to completion with its own shoe, generator and players
func (s *Simulator) playGame(ctx context.Context, seed int64) (*statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rules := s.config.Rules
	rng := randutil.New(seed)

	shoe, err := deck.NewShoe(rules.Decks, rng)
	if err != nil {
		return nil, err
	}

	players := make([]*game.Player, s.config.Players)
	for i := range players {
		name := fmt.Sprintf("Player %d", i+1)
		players[i] = game.NewPlayer(name, rules.StartingBankroll, game.NewAutoController(rng, rules))
	}

	stats := &statistics.Statistics{}
	bus := game.NewEventBus()
	bus.Subscribe(stats)

	engine, err := game.NewEngine(rules, game.NewDealer(shoe, rules.DealerStandsOn), players,
		game.WithLogger(s.config.Logger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return nil, err
	}

	if err := engine.Run(ctx); err != nil {
		return nil, err
	}
	s.config.Logger.Debug("Game finished", "seed", seed, "rounds", engine.Round(), "reason", engine.Reason())
	return stats, nil
}
