package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, game.DefaultRules(), cfg.Rules)
	assert.Empty(t, cfg.Seats)
	assert.Nil(t, cfg.Pace)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultRules(), cfg.Rules)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	src := `
table {
  decks             = 2
  elimination_floor = 5
  min_wager         = 10
  pace              = "250ms"
}

seat "Alice" {
  controller = "human"
}

seat "Robot" {
  bankroll = 300
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Rules.Decks)
	assert.Equal(t, 5, cfg.Rules.EliminationFloor)
	assert.Equal(t, 10, cfg.Rules.MinWager)
	assert.Equal(t, 100, cfg.Rules.StartingBankroll, "unset values keep defaults")
	assert.Equal(t, 17, cfg.Rules.DealerStandsOn)
	require.NotNil(t, cfg.Pace)
	assert.Equal(t, 250*time.Millisecond, *cfg.Pace)

	require.Len(t, cfg.Seats, 2)
	assert.Equal(t, SeatConfig{Name: "Alice", Controller: ControllerHuman, Bankroll: 100}, cfg.Seats[0])
	assert.Equal(t, SeatConfig{Name: "Robot", Controller: ControllerComputer, Bankroll: 300}, cfg.Seats[1])
}

func TestParseZeroPace(t *testing.T) {
	cfg, err := Parse("test.hcl", []byte(`table { pace = "0s" }`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Pace, "an explicit zero is kept so it can turn pacing off")
	assert.Zero(t, *cfg.Pace)

	cfg, err = Parse("test.hcl", []byte(`table { decks = 2 }`))
	require.NoError(t, err)
	assert.Nil(t, cfg.Pace)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `table {`},
		{"unknown attribute", `table { jokers = 2 }`},
		{"bad pace", `table { pace = "soon" }`},
		{"invalid rules", `table { dealer_stands_on = 12 }`},
		{"unknown controller", `seat "Alice" { controller = "robot" }`},
		{"duplicate seat", "seat \"A\" {}\nseat \"A\" {}"},
		{"dealer seat name", `seat "Dealer" {}`},
		{"negative pace", `table { pace = "-1s" }`},
		{"bankroll at floor", `seat "A" { bankroll = -1 }`},
		{"too many seats", `
seat "1" {}
seat "2" {}
seat "3" {}
seat "4" {}
seat "5" {}
seat "6" {}
seat "7" {}
seat "8" {}
seat "9" {}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.hcl", []byte(tt.src))
			assert.Error(t, err)
		})
	}
}
