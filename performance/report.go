package performance

import (
	"fmt"
	"io"
	"math"
	"time"
)

// WriteReport renders the report as the plain-text summary the CLI
// prints and the journal can archive.
func WriteReport(w io.Writer, r Report) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, " Backtest Performance Summary")
	fmt.Fprintln(w, "============================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capital")
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintf(w, "Initial Capital:   %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Equity:      %.2f\n", r.FinalEquity)
	fmt.Fprintf(w, "Total Return:      %.2f (%.2f%%)\n", r.TotalReturn, r.TotalReturnPct*100)
	fmt.Fprintf(w, "Total Fees:        %.2f\n", r.TotalFees)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintf(w, "Trades:            %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Wins:              %d\n", r.WinningTrades)
	fmt.Fprintf(w, "Losses:            %d\n", r.LosingTrades)
	fmt.Fprintf(w, "Win Rate:          %.2f%%\n", r.WinRate*100)
	fmt.Fprintf(w, "Average Win:       %.2f\n", r.AverageWin)
	fmt.Fprintf(w, "Average Loss:      %.2f\n", r.AverageLoss)
	fmt.Fprintf(w, "Largest Win:       %.2f\n", r.LargestWin)
	fmt.Fprintf(w, "Largest Loss:      %.2f\n", r.LargestLoss)
	fmt.Fprintf(w, "Expectancy:        %.2f per trade\n", r.Expectancy)
	fmt.Fprintf(w, "Profit Factor:     %s\n", ratio(r.ProfitFactor))
	if r.AvgHoldingTime > 0 {
		fmt.Fprintf(w, "Avg Holding Time:  %s\n", r.AvgHoldingTime.Round(time.Minute))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintf(w, "Sharpe Ratio:      %s\n", ratio(r.SharpeRatio))
	fmt.Fprintf(w, "Sortino Ratio:     %s\n", ratio(r.SortinoRatio))
	fmt.Fprintf(w, "Max Drawdown:      %.2f%%\n", r.MaxDrawdown*100)
	fmt.Fprintln(w)
}

func ratio(x float64) string {
	if math.IsInf(x, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", x)
}
