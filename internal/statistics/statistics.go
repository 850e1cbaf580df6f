package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the settlement of one player's hand
type HandResult struct {
	Player      string
	Result      game.HandState
	Wager       int
	Net         int // payout minus wager
	PlayerValue int
	DealerValue int
}

// Busted reports whether the player went over 21
func (r HandResult) Busted() bool {
	return r.PlayerValue > game.Blackjack
}

// Statistics tracks outcomes across many settled hands and finished games.
// It subscribes to a table's event bus; merge per-game values to aggregate.
type Statistics struct {
	Hands   int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins        int
	Blackjacks  int
	Pushes      int
	Losses      int
	PlayerBusts int
	DealerBusts int
	Wagered     int

	// Net by outcome; these must add up to SumNet
	WinNet       float64
	BlackjackNet float64
	LossNet      float64

	Games        int
	Rounds       int
	Eliminations int
	RoundsToBust int // sum of elimination rounds
}

var _ game.EventSubscriber = (*Statistics)(nil)

// OnEvent folds table events into the statistics
func (s *Statistics) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.SettlementEvent:
		s.Add(HandResult{
			Player:      e.Player,
			Result:      e.Result,
			Wager:       e.Wager,
			Net:         e.Net,
			PlayerValue: e.PlayerValue,
			DealerValue: e.DealerValue,
		})
	case game.EliminationEvent:
		s.Eliminations++
		s.RoundsToBust += e.Round
	case game.GameOverEvent:
		s.Games++
		s.Rounds += e.Rounds
	}
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.Wagered += result.Wager

	switch result.Result {
	case game.StateBlackjack:
		s.Blackjacks++
		s.BlackjackNet += net
	case game.StateWin:
		s.Wins++
		s.WinNet += net
	case game.StatePush:
		s.Pushes++
	default:
		s.Losses++
		s.LossNet += net
	}

	if result.Busted() {
		s.PlayerBusts++
	} else if result.DealerValue > game.Blackjack {
		s.DealerBusts++
	}
}

// Merge adds other's counts into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Blackjacks += other.Blackjacks
	s.Pushes += other.Pushes
	s.Losses += other.Losses
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.Wagered += other.Wagered
	s.WinNet += other.WinNet
	s.BlackjackNet += other.BlackjackNet
	s.LossNet += other.LossNet
	s.Games += other.Games
	s.Rounds += other.Rounds
	s.Eliminations += other.Eliminations
	s.RoundsToBust += other.RoundsToBust
}

// Mean returns the average net result per hand in dollars
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Rate returns count as a fraction of all hands
func (s *Statistics) Rate(count int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(count) / float64(s.Hands)
}

// ReturnPerWager returns net result per dollar wagered; negative is the house edge
func (s *Statistics) ReturnPerWager() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.Wagered)
}

// MeanRoundsToBust returns the average round on which players were eliminated
func (s *Statistics) MeanRoundsToBust() float64 {
	if s.Eliminations == 0 {
		return 0
	}
	return float64(s.RoundsToBust) / float64(s.Eliminations)
}

// IsLedgerBalanced checks that net by outcome adds up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-s.WinNet-s.BlackjackNet-s.LossNet) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumNet=%.2f, WinNet=%.2f, BlackjackNet=%.2f, LossNet=%.2f",
			s.SumNet, s.WinNet, s.BlackjackNet, s.LossNet)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if outcomes := s.Wins + s.Blackjacks + s.Pushes + s.Losses; outcomes != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands count (%d)", outcomes, s.Hands)
	}
	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}
	return nil
}
