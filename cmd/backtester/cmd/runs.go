package cmd

import (
	"fmt"
	"time"

	"github.com/quantkit/backtester/journal"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded backtest runs",
	Long:  `List run summaries from a SQLite journal, most recent first.`,
	RunE:  listRuns,
}

var (
	runsDBPath string
	runsLimit  int
	runsShow   string
)

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVarP(&runsDBPath, "db", "d", "./backtests.sqlite", "path to SQLite journal DB")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "max runs to list")
	runsCmd.Flags().StringVar(&runsShow, "trades", "", "run ID: also list that run's trades")
}

func listRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %-14s trades=%-4d return=%6.2f%%  maxdd=%6.2f%%\n",
			r.RunID,
			r.Created.Format("2006-01-02 15:04"),
			r.Strategy,
			r.Trades,
			r.ReturnPct*100,
			r.MaxDrawdown*100,
		)
	}

	if runsShow == "" {
		return nil
	}
	trades, err := j.ListTradesByRun(runsShow)
	if err != nil {
		return err
	}
	fmt.Printf("\ntrades for run %s:\n", runsShow)
	for _, t := range trades {
		fmt.Printf("  %-12s %s -> %s  qty=%g entry=%.2f exit=%.2f pnl=%.2f (%s)\n",
			t.Instrument,
			t.EntryTime.Format(time.RFC3339),
			t.ExitTime.Format(time.RFC3339),
			t.Quantity, t.EntryPrice, t.ExitPrice, t.PnL, t.Reason,
		)
	}
	return nil
}
