package main

import (
	"github.com/lox/blackjack/internal/config"
)

// TableFlags override values from the rules file. Zero means "keep".
type TableFlags struct {
	Rules     string `type:"path" help:"HCL rules file (table and seat blocks)"`
	Decks     int    `help:"Decks in the shoe"`
	Bankroll  int    `help:"Starting bankroll for every player"`
	Floor     *int   `help:"Players at or below this bankroll are eliminated"`
	MaxRounds int    `name:"max-rounds" help:"End the game after this many rounds"`
	Seed      int64  `help:"RNG seed (0 for random)"`
}

// load reads the rules file and applies flag overrides
func (f TableFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.Rules)
	if err != nil {
		return nil, err
	}

	if f.Decks != 0 {
		cfg.Rules.Decks = f.Decks
	}
	if f.Bankroll != 0 {
		cfg.Rules.StartingBankroll = f.Bankroll
		for i := range cfg.Seats {
			cfg.Seats[i].Bankroll = f.Bankroll
		}
	}
	if f.Floor != nil {
		cfg.Rules.EliminationFloor = *f.Floor
	}
	if f.MaxRounds != 0 {
		cfg.Rules.MaxRounds = f.MaxRounds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
