package game

// TurnOutcome is how a player's or the dealer's turn ended
type TurnOutcome int

const (
	OutcomeStand TurnOutcome = iota
	OutcomeBust
	OutcomeBlackjack
)

// String returns the string representation of a turn outcome
func (o TurnOutcome) String() string {
	switch o {
	case OutcomeStand:
		return "stand"
	case OutcomeBust:
		return "bust"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// resolveTurn classifies a finished hand and records the terminal state on it.
// A standing hand stays idle until settlement.
func resolveTurn(h *Hand, outcome TurnOutcome) TurnOutcome {
	switch outcome {
	case OutcomeBust:
		h.setState(StateLose)
	case OutcomeBlackjack:
		h.setState(StateBlackjack)
	}
	return outcome
}

// Settle compares a player's finished hand against the dealer's and returns
// the player's result. Precedence:
//  1. player bust loses, whatever the dealer did
//  2. dealer bust wins
//  3. player natural against a dealer without one pays blackjack
//  4. dealer natural against a player without one loses
//  5. higher total wins, equal totals push
func Settle(player, dealer *Hand) HandState {
	switch {
	case player.IsBust():
		return StateLose
	case dealer.IsBust():
		return StateWin
	case player.IsNatural() && !dealer.IsNatural():
		return StateBlackjack
	case dealer.IsNatural() && !player.IsNatural():
		return StateLose
	}

	pv, dv := player.Value(), dealer.Value()
	switch {
	case pv > dv:
		return StateWin
	case pv < dv:
		return StateLose
	default:
		return StatePush
	}
}

// Payout returns the amount credited back to the bankroll for a settled wager.
// The wager was debited when placed, so a push returns it, a win doubles it,
// blackjack triples it and a loss returns nothing.
func Payout(result HandState, wager int) int {
	switch result {
	case StatePush:
		return wager
	case StateWin:
		return 2 * wager
	case StateBlackjack:
		return 3 * wager
	default:
		return 0
	}
}
