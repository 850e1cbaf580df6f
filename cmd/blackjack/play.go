package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// defaultPace gives a human time to read each phase
const defaultPace = 500 * time.Millisecond

type PlayCmd struct {
	TableFlags `embed:""`
	LogFlags   `embed:""`

	Pace      *time.Duration `help:"Delay between game phases (default 500ms)"`
	ShowDeals bool           `name:"show-deals" help:"Announce every card as it is dealt"`
	LongNames bool           `name:"long-names" help:"Print cards as \"Queen of Hearts\""`
	NoColor   bool           `name:"no-color" help:"Disable coloured output"`
}

func (c *PlayCmd) Run() error {
	logger, closeLog, err := c.setupLogger(log.WarnLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := c.load()
	if err != nil {
		return err
	}
	pace := resolvePace(c.Pace, cfg.Pace)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	out := os.Stdout
	styles := console.NewStyles(out, c.NoColor)
	prompter := console.NewPrompter(os.Stdin, out, styles)
	defer prompter.Close()

	fmt.Fprintln(prompter, styles.Header.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Fprintln(prompter)

	if len(cfg.Seats) == 0 {
		seats, err := console.Setup(ctx, prompter, cfg.Rules.StartingBankroll)
		if err != nil {
			return leaveTable(prompter, err)
		}
		cfg.Seats = seats
	}

	seed := randutil.Seed(c.Seed)
	logger.Debug("Starting table", "seed", seed, "seats", len(cfg.Seats), "decks", cfg.Rules.Decks)

	rng := randutil.New(seed)
	players, perspective := seatPlayers(cfg, rng, prompter)

	shoe, err := deck.NewShoe(cfg.Rules.Decks, rng)
	if err != nil {
		return err
	}

	bus := game.NewEventBus()
	bus.Subscribe(console.NewRenderer(prompter, styles, console.RendererOptions{
		ShowCardDeals: c.ShowDeals,
		LongCardNames: c.LongNames,
		Perspective:   perspective,
	}))

	engine, err := game.NewEngine(cfg.Rules, game.NewDealer(shoe, cfg.Rules.DealerStandsOn), players,
		game.WithLogger(logger),
		game.WithEventBus(bus),
		game.WithPace(pace),
	)
	if err != nil {
		return err
	}

	return leaveTable(prompter, engine.Run(ctx))
}

// resolvePace picks the delay between phases: the flag wins, then the rules
// file, then defaultPace. An explicit zero turns pacing off.
func resolvePace(flag, file *time.Duration) time.Duration {
	switch {
	case flag != nil:
		return *flag
	case file != nil:
		return *file
	}
	return defaultPace
}

// seatPlayers builds players for each seat. When exactly one seat is human
// the renderer addresses that player as "You".
func seatPlayers(cfg *config.Config, rng deck.IndexSource, prompter console.Asker) ([]*game.Player, string) {
	var (
		players []*game.Player
		humans  []string
	)
	for _, seat := range cfg.Seats {
		var controller game.Controller
		if seat.Controller == config.ControllerHuman {
			controller = console.NewHumanController(prompter)
			humans = append(humans, seat.Name)
		} else {
			controller = game.NewAutoController(rng, cfg.Rules)
		}
		players = append(players, game.NewPlayer(seat.Name, seat.Bankroll, controller))
	}

	if len(humans) == 1 {
		return players, humans[0]
	}
	return players, ""
}

// leaveTable turns the ways a player can walk away into a clean exit: closed
// standard input ends the game, ctrl+c or a signal abandons it.
func leaveTable(w io.Writer, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(w, "\nGame over. Thanks for playing!")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, console.ErrInterrupted):
		fmt.Fprintln(w, "\nGame abandoned.")
		return nil
	}
	return err
}
