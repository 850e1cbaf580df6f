package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// HumanController asks a person at the terminal for every decision
type HumanController struct {
	prompter Asker
}

var _ game.Controller = (*HumanController)(nil)

// NewHumanController creates a controller that asks through prompter
func NewHumanController(prompter Asker) *HumanController {
	return &HumanController{prompter: prompter}
}

// Kind returns game.Human
func (h *HumanController) Kind() game.ControllerKind {
	return game.Human
}

// Decide asks "hit (h) or stand (s)" until it gets one of those answers
func (h *HumanController) Decide(ctx context.Context, view game.TurnView) (game.Action, error) {
	question := fmt.Sprintf("%s: your hand is %s (total %s), dealer shows %s. Hit (h) or stand (s)?",
		view.Player, game.FormatCards(view.Cards), view.Total, view.DealerUpCard)
	for {
		answer, err := h.prompter.Ask(ctx, question)
		if err != nil {
			return game.Stand, err
		}
		if action, ok := parseAction(answer); ok {
			return action, nil
		}
		h.prompter.Warn("Please answer h to hit or s to stand")
	}
}

// Wager asks for a stake until the answer is a number inside req's range
func (h *HumanController) Wager(ctx context.Context, req game.WagerRequest) (int, error) {
	question := fmt.Sprintf("%s, you have $%d. How much would you like to wager?", req.Player, req.Bankroll)
	for {
		answer, err := h.prompter.Ask(ctx, question)
		if err != nil {
			return 0, err
		}
		amount, err := strconv.Atoi(strings.TrimPrefix(answer, "$"))
		switch {
		case err != nil:
			h.prompter.Warn("Not a number, please try again")
		case amount < req.Min:
			h.prompter.Warn("Wager amount must be at least $%d", req.Min)
		case amount > req.Bankroll:
			h.prompter.Warn("You don't have enough money to wager $%d", amount)
		case amount > req.Max:
			h.prompter.Warn("The table maximum is $%d", req.Max)
		default:
			return amount, nil
		}
	}
}

func parseAction(answer string) (game.Action, bool) {
	switch strings.ToLower(answer) {
	case "h", "hit":
		return game.Hit, true
	case "s", "stand":
		return game.Stand, true
	}
	return game.Stand, false
}
