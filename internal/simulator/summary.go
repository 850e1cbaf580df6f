package simulator

import (
	"fmt"
	"io"

	"github.com/lox/blackjack/internal/statistics"
)

// PrintSummary writes a report of simulation results to w
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d (%d rounds, %d hands)\n", stats.Games, stats.Rounds, stats.Hands)
	fmt.Fprintf(w, "Total wagered: $%d\n", stats.Wagered)

	fmt.Fprintf(w, "\n=== NET RESULT PER HAND ===\n")
	fmt.Fprintf(w, "Mean: $%.4f\n", stats.Mean())
	fmt.Fprintf(w, "Median: $%.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: $%.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: $%.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [$%.4f, $%.4f]\n", low, high)
	fmt.Fprintf(w, "Return per $1 wagered: %+.4f\n", stats.ReturnPerWager())
	fmt.Fprintf(w, "Percentiles: P5=%.2f, P25=%.2f, P75=%.2f, P95=%.2f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	outcome := func(label string, count int) {
		fmt.Fprintf(w, "%-12s %8d (%5.1f%%)\n", label, count, stats.Rate(count)*100)
	}
	outcome("Blackjack", stats.Blackjacks)
	outcome("Win", stats.Wins)
	outcome("Push", stats.Pushes)
	outcome("Lose", stats.Losses)
	outcome("Player bust", stats.PlayerBusts)
	outcome("Dealer bust", stats.DealerBusts)

	if stats.Eliminations > 0 {
		fmt.Fprintf(w, "\n=== ELIMINATIONS ===\n")
		fmt.Fprintf(w, "Players eliminated: %d, on average in round %.1f\n", stats.Eliminations, stats.MeanRoundsToBust())
	}
}
