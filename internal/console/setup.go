package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/config"
)

// Setup asks how many players sit at the table and whether each one is a
// human or a computer. Seats are named "Player 1", "Player 2", ...
func Setup(ctx context.Context, p Asker, bankroll int) ([]config.SeatConfig, error) {
	count, err := askPlayerCount(ctx, p)
	if err != nil {
		return nil, err
	}

	seats := make([]config.SeatConfig, 0, count)
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf("Player %d", i)
		controller, err := askController(ctx, p, name)
		if err != nil {
			return nil, err
		}
		seats = append(seats, config.SeatConfig{Name: name, Controller: controller, Bankroll: bankroll})
	}
	return seats, nil
}

func askPlayerCount(ctx context.Context, p Asker) (int, error) {
	for {
		answer, err := p.Ask(ctx, "How many players will there be?")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		switch {
		case err != nil:
			p.Warn("Not a number, please try again")
		case n < 1:
			p.Warn("Number of players must be greater than 0")
		case n > config.MaxSeats:
			p.Warn("Number of players must be %d or less", config.MaxSeats)
		default:
			return n, nil
		}
	}
}

func askController(ctx context.Context, p Asker, name string) (string, error) {
	for {
		answer, err := p.Ask(ctx, name+": is this a human (h) or computer (c) player?")
		if err != nil {
			return "", err
		}
		switch strings.ToLower(answer) {
		case "h", "human":
			return config.ControllerHuman, nil
		case "c", "computer":
			return config.ControllerComputer, nil
		}
		p.Warn("Please answer h or c")
	}
}
