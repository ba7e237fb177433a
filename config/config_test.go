package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	raw := `
backtest:
  initial_capital: 250000
  fee_rate: 0.0005
risk:
  position_size_fraction: 0.2
  stop_loss_fraction: 0.02
  take_profit_fraction: 0.05
strategy:
  name: ma-crossover
data:
  symbols: [TCS]
journal:
  type: none
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 250_000.0, cfg.Backtest.InitialCapital)
	assert.Equal(t, 0.0005, cfg.Backtest.FeeRate)
	assert.Equal(t, 0.2, cfg.Risk.PositionSizeFraction)
	assert.Equal(t, "ma-crossover", cfg.Strategy.Name)
	assert.Equal(t, []string{"TCS"}, cfg.Data.Symbols)
	assert.Equal(t, "none", cfg.Journal.Type)

	// Untouched sections keep their defaults.
	assert.Equal(t, 6300, cfg.PeriodsPerYear)
	assert.Equal(t, 14, cfg.Strategy.Params.RSIPeriod)
}

func TestLoadFromFileJSON(t *testing.T) {
	raw := `{
  "backtest": {"initial_capital": 50000, "fee_rate": 0.001},
  "strategy": {"name": "rsi-macd"},
  "journal": {"type": "none"}
}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50_000.0, cfg.Backtest.InitialCapital)
	assert.Equal(t, "rsi-macd", cfg.Strategy.Name)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	raw := `
risk:
  position_size_fraction: 2.0
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFromFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not valid"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Backtest.InitialCapital = 123_456
	cfg.Strategy.Name = "bollinger-rsi"

	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg.Backtest.InitialCapital, got.Backtest.InitialCapital)
		assert.Equal(t, cfg.Strategy.Name, got.Strategy.Name)
	}
}

func TestValidateJournalSection(t *testing.T) {
	cfg := Default()
	cfg.Journal = JournalConfig{Type: "csv"}
	assert.Error(t, cfg.Validate())

	cfg.Journal = JournalConfig{Type: "sqlite"}
	assert.Error(t, cfg.Validate())

	cfg.Journal = JournalConfig{Type: "sqlite", DBPath: "runs.db"}
	assert.NoError(t, cfg.Validate())

	cfg.Journal = JournalConfig{Type: "postgres"}
	assert.Error(t, cfg.Validate())

	cfg.Journal = JournalConfig{}
	assert.NoError(t, cfg.Validate())
}

func TestValidateDataSection(t *testing.T) {
	cfg := Default()
	cfg.Data.Symbols = nil
	cfg.Data.CSVPath = ""
	assert.Error(t, cfg.Validate())

	cfg.Data.CSVPath = "bars.csv"
	assert.NoError(t, cfg.Validate())
}

func TestValidateStrategySection(t *testing.T) {
	cfg := Default()
	cfg.Strategy.Name = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Strategy.Params.MAShort = 0
	assert.Error(t, cfg.Validate())
}
