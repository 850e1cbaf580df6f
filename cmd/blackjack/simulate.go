package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	TableFlags `embed:""`
	LogFlags   `embed:""`

	Games       int           `default:"1000" help:"Number of games to simulate"`
	Players     int           `short:"p" default:"3" help:"Computer players per game (1-8)"`
	Concurrency int           `short:"j" help:"Games to run in parallel (0 for GOMAXPROCS)"`
	Timeout     time.Duration `default:"30s" help:"Per-game timeout"`
	Progress    bool          `default:"true" negatable:"" help:"Show progress dots"`
}

func (c *SimulateCmd) Run() error {
	logger, closeLog, err := c.setupLogger(log.WarnLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if c.Players < 1 || c.Players > 8 {
		return fmt.Errorf("players must be between 1 and 8, got %d", c.Players)
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	seed := randutil.Seed(c.Seed)
	config := simulator.Config{
		Games:       c.Games,
		Players:     c.Players,
		Seed:        seed,
		Rules:       cfg.Rules,
		Concurrency: c.Concurrency,
		Timeout:     c.Timeout,
		Logger:      logger,
	}

	var progress *progressDots
	if c.Progress {
		progress = newProgressDots(os.Stderr)
		config.Progress = progress.Update
	}

	start := time.Now()
	stats, err := simulator.New(config).Run(ctx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Seed: %d\n", seed)
	fmt.Printf("Elapsed: %s\n", time.Since(start).Round(time.Millisecond))
	simulator.PrintSummary(os.Stdout, stats)
	return nil
}
