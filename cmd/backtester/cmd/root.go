package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "A rule-based trading strategy backtester",
	Long: `Backtester simulates rule-based trading strategies against historical
price bars to estimate profitability before risking capital.

It provides tools for:
  - Bar-by-bar backtesting with stop-loss/take-profit risk rules
  - Equity-fraction position sizing with a drawdown guard
  - Performance statistics (Sharpe, Sortino, drawdown, profit factor)
  - Journaling trades and equity curves to CSV or SQLite
  - Deterministic demo data when no market data is available`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
