package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quantkit/backtester/backtest"
	"github.com/quantkit/backtester/config"
	"github.com/quantkit/backtester/data"
	"github.com/quantkit/backtester/journal"
	"github.com/quantkit/backtester/market"
	"github.com/quantkit/backtester/performance"
	"github.com/quantkit/backtester/risk"
	"github.com/quantkit/backtester/strategies"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest",
	Long: `Run a backtest over historical bars from a CSV file, or over
deterministic demo data when no CSV is given.

Example:
  backtester run --csv data/bars.csv --strategy ma-crossover
  backtester run --config backtest.yaml`,
	RunE: runBacktest,
}

var (
	runConfigPath string
	runCSVPath    string
	runStrategy   string
	runCapital    float64
	runSeed       int64
	runDays       int
	runSymbols    []string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON config file")
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "path to bar CSV (time,instrument,o,h,l,c,v)")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "", "strategy name (ma-crossover, rsi-macd, bollinger-rsi, combined)")
	runCmd.Flags().Float64Var(&runCapital, "capital", 0, "initial capital (overrides config)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "demo data seed (overrides config)")
	runCmd.Flags().IntVar(&runDays, "days", 0, "demo data days (overrides config)")
	runCmd.Flags().StringSliceVar(&runSymbols, "symbols", nil, "demo data symbols (overrides config)")
}

func loadConfig() (*config.Config, error) {
	if runConfigPath != "" {
		return config.LoadFromFile(runConfigPath)
	}
	return config.Default(), nil
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runCSVPath != "" {
		cfg.Data.CSVPath = runCSVPath
	}
	if runStrategy != "" {
		cfg.Strategy.Name = runStrategy
	}
	if runCapital > 0 {
		cfg.Backtest.InitialCapital = runCapital
	}
	if runSeed != 0 {
		cfg.Data.Seed = runSeed
	}
	if runDays > 0 {
		cfg.Data.Days = runDays
	}
	if len(runSymbols) > 0 {
		cfg.Data.Symbols = runSymbols
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	bars, err := loadBars(cfg)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	instruments := market.Instruments(bars)
	slog.Info("bars loaded", "bars", len(bars), "instruments", len(instruments))

	// Validate the strategy once up front, then hand the factory to the
	// per-instrument dispatcher.
	if _, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Params); err != nil {
		return err
	}
	src := strategies.NewMulti(cfg.Strategy.Name, strategyFactory(cfg.Strategy.Name, cfg.Strategy.Params))

	engine, err := backtest.NewEngine(cfg.Backtest, risk.NewManager(cfg.Risk))
	if err != nil {
		return err
	}

	slog.Info("running backtest", "strategy", cfg.Strategy.Name, "capital", cfg.Backtest.InitialCapital)
	res, err := engine.Run(bars, src)
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}
	slog.Info("backtest complete", "trades", len(res.Trades), "skipped_entries", len(res.Skipped))

	rep, err := performance.Summarize(res.Trades, res.Equity, performance.Config{
		InitialCapital: cfg.Backtest.InitialCapital,
		PeriodsPerYear: cfg.PeriodsPerYear,
	})
	if err != nil {
		return err
	}
	performance.WriteReport(os.Stdout, rep)

	return persist(cfg, instruments, res, rep)
}

// strategyFactory builds fresh per-instrument strategy instances. The
// name and params are validated before the dispatcher is constructed,
// so a failure here means the registry and validation disagree.
func strategyFactory(name string, p strategies.Params) func() strategies.Strategy {
	return func() strategies.Strategy {
		s, err := strategies.ByName(name, p)
		if err != nil {
			panic(fmt.Sprintf("strategy %q: %v", name, err))
		}
		return s
	}
}

func loadBars(cfg *config.Config) ([]market.Bar, error) {
	if cfg.Data.CSVPath != "" {
		bars, err := data.LoadCSV(cfg.Data.CSVPath)
		if err != nil {
			return nil, err
		}
		byInst := market.SplitByInstrument(bars)
		series := make([][]market.Bar, 0, len(byInst))
		for _, s := range byInst {
			series = append(series, s)
		}
		return market.Merge(series...)
	}

	gen := data.NewGenerator(cfg.Data.Seed)
	byInst := gen.GenerateAll(cfg.Data.Symbols, data.GenerateOptions{
		Days:            cfg.Data.Days,
		IntervalMinutes: cfg.Data.IntervalMinutes,
	})
	series := make([][]market.Bar, 0, len(byInst))
	for _, s := range byInst {
		series = append(series, s)
	}
	return market.Merge(series...)
}

func persist(cfg *config.Config, instruments []string, res *backtest.Result, rep performance.Report) error {
	switch cfg.Journal.Type {
	case "", "none":
		return nil

	case "csv":
		j, err := journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		run := journal.NewRun(cfg.Strategy.Name, instruments, res, rep)
		if err := journal.Record(j, run.RunID, res); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		slog.Info("results journaled", "run_id", run.RunID, "trades", cfg.Journal.TradesFile, "equity", cfg.Journal.EquityFile)

	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		run := journal.NewRun(cfg.Strategy.Name, instruments, res, rep)
		if err := j.RecordRun(run); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		if err := journal.Record(j, run.RunID, res); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		slog.Info("results journaled", "run_id", run.RunID, "db", cfg.Journal.DBPath)
	}
	return nil
}
