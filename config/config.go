// Package config loads and validates the full backtester configuration
// from YAML or JSON. All configuration errors are rejected here, before
// any simulation step runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/quantkit/backtester/backtest"
	"github.com/quantkit/backtester/risk"
	"github.com/quantkit/backtester/strategies"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration surface.
type Config struct {
	Backtest backtest.Config `json:"backtest" yaml:"backtest"`
	Risk     risk.Config     `json:"risk" yaml:"risk"`

	// PeriodsPerYear annualizes Sharpe/Sortino; 6300 = 25 fifteen-minute
	// session bars x 252 trading days.
	PeriodsPerYear int `json:"periods_per_year" yaml:"periods_per_year"`

	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// StrategyConfig selects a signal strategy and its indicator parameters.
type StrategyConfig struct {
	Name   string            `json:"name" yaml:"name"`
	Params strategies.Params `json:"params" yaml:"params"`
}

// DataConfig selects the bar source: a CSV file, or the deterministic
// demo generator when CSVPath is empty.
type DataConfig struct {
	Symbols         []string `json:"symbols" yaml:"symbols"`
	CSVPath         string   `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	Days            int      `json:"days" yaml:"days"`
	IntervalMinutes int      `json:"interval_minutes" yaml:"interval_minutes"`
	Seed            int64    `json:"seed" yaml:"seed"`
}

// JournalConfig selects where results are persisted.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile reads a config file, trying YAML first and falling back
// to JSON, then validates it.
func LoadFromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		if jerr := json.Unmarshal(raw, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the config as YAML (.yaml/.yml) or indented JSON.
func (c *Config) SaveToFile(path string) error {
	var raw []byte
	var err error
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		raw, err = yaml.Marshal(c)
	} else {
		raw, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Backtest.Validate(); err != nil {
		return err
	}
	if err := c.Risk.Validate(); err != nil {
		return err
	}
	if c.PeriodsPerYear <= 0 {
		return fmt.Errorf("periods_per_year must be a positive integer, got %d", c.PeriodsPerYear)
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if err := c.Strategy.Params.Validate(); err != nil {
		return fmt.Errorf("strategy params: %w", err)
	}
	if len(c.Data.Symbols) == 0 && c.Data.CSVPath == "" {
		return fmt.Errorf("data requires symbols or csv_path")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be none, csv or sqlite, got %q", c.Journal.Type)
	}
	return nil
}

// Default returns the stock intraday defaults.
func Default() *Config {
	return &Config{
		Backtest: backtest.Config{
			InitialCapital: 100_000,
			FeeRate:        0.0003,
		},
		Risk:           risk.Default(),
		PeriodsPerYear: 6300,
		Strategy: StrategyConfig{
			Name:   "combined",
			Params: strategies.DefaultParams(),
		},
		Data: DataConfig{
			Symbols:         []string{"RELIANCE", "TCS", "INFY", "HDFCBANK", "ICICIBANK"},
			Days:            7,
			IntervalMinutes: 15,
			Seed:            42,
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
		},
		LogLevel: "info",
	}
}
