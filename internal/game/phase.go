package game

// Phase is a state of the round engine
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseNewGame
	PhaseRoundStart
	PhasePlaceBets
	PhaseDealHands
	PhasePlayersTurn
	PhaseDealerTurn
	PhasePayout
	PhaseRoundEnd
	PhaseGameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseNewGame:
		return "new-game"
	case PhaseRoundStart:
		return "round-start"
	case PhasePlaceBets:
		return "place-bets"
	case PhaseDealHands:
		return "deal-hands"
	case PhasePlayersTurn:
		return "players-turn"
	case PhaseDealerTurn:
		return "dealer-turn"
	case PhasePayout:
		return "payout"
	case PhaseRoundEnd:
		return "round-end"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// next returns the phase that follows p in an ongoing game. RoundEnd branches
// on the roster and is decided by the engine.
func (p Phase) next() Phase {
	switch p {
	case PhaseIdle:
		return PhaseNewGame
	case PhaseNewGame:
		return PhaseRoundStart
	case PhaseRoundStart:
		return PhasePlaceBets
	case PhasePlaceBets:
		return PhaseDealHands
	case PhaseDealHands:
		return PhasePlayersTurn
	case PhasePlayersTurn:
		return PhaseDealerTurn
	case PhaseDealerTurn:
		return PhasePayout
	case PhasePayout:
		return PhaseRoundEnd
	default:
		return PhaseGameOver
	}
}
