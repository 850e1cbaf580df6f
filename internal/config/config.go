// Package config loads table rules and seating from an HCL file.
//
//	table {
//	  decks             = 6
//	  starting_bankroll = 100
//	  elimination_floor = 0
//	  pace              = "500ms"
//	}
//
//	seat "Alice" {
//	  controller = "human"
//	}
//
//	seat "Bot" {
//	  controller = "computer"
//	  bankroll   = 250
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/game"
)

// MaxSeats is the largest roster the table accepts
const MaxSeats = 8

// Controller kinds accepted in seat blocks
const (
	ControllerHuman    = "human"
	ControllerComputer = "computer"
)

// FileConfig represents the complete rules file
type FileConfig struct {
	Table *TableConfig `hcl:"table,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// TableConfig mirrors game.Rules; zero values fall back to the defaults
type TableConfig struct {
	Decks             int     `hcl:"decks,optional"`
	StartingBankroll  int     `hcl:"starting_bankroll,optional"`
	EliminationFloor  int     `hcl:"elimination_floor,optional"`
	MinWager          int     `hcl:"min_wager,optional"`
	MaxWager          int     `hcl:"max_wager,optional"`
	AutoWagerFraction float64 `hcl:"auto_wager_fraction,optional"`
	DealerStandsOn    int     `hcl:"dealer_stands_on,optional"`
	AutoHitBelow      int     `hcl:"auto_hit_below,optional"`
	MaxRounds         int     `hcl:"max_rounds,optional"`
	Pace              string  `hcl:"pace,optional"`
}

// SeatConfig defines one player at the table
type SeatConfig struct {
	Name       string `hcl:"name,label"`
	Controller string `hcl:"controller,optional"`
	Bankroll   int    `hcl:"bankroll,optional"`
}

// Config is the resolved configuration handed to the engine
type Config struct {
	Rules game.Rules
	// Pace is nil when the file does not set one
	Pace  *time.Duration
	Seats []SeatConfig
}

// Default returns the canonical table with no pre-configured seats
func Default() *Config {
	return &Config{Rules: game.DefaultRules()}
}

// Load reads an HCL rules file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(filename, src)
}

// Parse decodes HCL source; filename is only used in diagnostics
func Parse(filename string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return fc.resolve()
}

// resolve applies defaults for missing values
func (fc *FileConfig) resolve() (*Config, error) {
	cfg := Default()
	if t := fc.Table; t != nil {
		r := &cfg.Rules
		setIfNonZero(&r.Decks, t.Decks)
		setIfNonZero(&r.StartingBankroll, t.StartingBankroll)
		setIfNonZero(&r.EliminationFloor, t.EliminationFloor)
		setIfNonZero(&r.MinWager, t.MinWager)
		setIfNonZero(&r.MaxWager, t.MaxWager)
		setIfNonZero(&r.AutoWagerFraction, t.AutoWagerFraction)
		setIfNonZero(&r.DealerStandsOn, t.DealerStandsOn)
		setIfNonZero(&r.AutoHitBelow, t.AutoHitBelow)
		setIfNonZero(&r.MaxRounds, t.MaxRounds)

		if t.Pace != "" {
			pace, err := time.ParseDuration(t.Pace)
			if err != nil {
				return nil, fmt.Errorf("invalid pace %q: %w", t.Pace, err)
			}
			cfg.Pace = &pace
		}
	}

	for _, seat := range fc.Seats {
		if seat.Controller == "" {
			seat.Controller = ControllerComputer
		}
		if seat.Bankroll == 0 {
			seat.Bankroll = cfg.Rules.StartingBankroll
		}
		cfg.Seats = append(cfg.Seats, seat)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the resolved configuration
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Pace != nil && *c.Pace < 0 {
		return fmt.Errorf("pace cannot be negative: %s", *c.Pace)
	}
	if len(c.Seats) > MaxSeats {
		return fmt.Errorf("at most %d seats allowed, got %d", MaxSeats, len(c.Seats))
	}

	names := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if seat.Name == "" {
			return errors.New("seat name cannot be empty")
		}
		if seat.Name == game.DealerName {
			return fmt.Errorf("seat name %q is reserved for the dealer", seat.Name)
		}
		if names[seat.Name] {
			return fmt.Errorf("duplicate seat %q", seat.Name)
		}
		names[seat.Name] = true

		if seat.Controller != ControllerHuman && seat.Controller != ControllerComputer {
			return fmt.Errorf("seat %q: controller must be %q or %q, got %q", seat.Name, ControllerHuman, ControllerComputer, seat.Controller)
		}
		if seat.Bankroll <= c.Rules.EliminationFloor {
			return fmt.Errorf("seat %q: bankroll %d must exceed elimination floor %d", seat.Name, seat.Bankroll, c.Rules.EliminationFloor)
		}
	}
	return nil
}

func setIfNonZero[T int | float64](dst *T, v T) {
	if v != 0 {
		*dst = v
	}
}
