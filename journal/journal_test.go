package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantkit/backtester/backtest"
	"github.com/quantkit/backtester/performance"
	"github.com/quantkit/backtester/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade() backtest.Trade {
	entry := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	return backtest.Trade{
		Instrument: "TCS",
		EntryTime:  entry,
		EntryPrice: 100,
		ExitTime:   entry.Add(2 * time.Hour),
		ExitPrice:  103,
		Quantity:   50,
		PnL:        147.5,
		Fees:       2.5,
		Reason:     risk.ExitTakeProfit,
	}
}

func sampleResult() *backtest.Result {
	t0 := time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)
	return &backtest.Result{
		Trades: []backtest.Trade{sampleTrade()},
		Equity: []backtest.EquityPoint{
			{Time: t0, Equity: 100_000},
			{Time: t0.Add(15 * time.Minute), Equity: 100_147.5},
		},
		Start: t0,
		End:   t0.Add(15 * time.Minute),
	}
}

func TestFromTrade(t *testing.T) {
	tr := sampleTrade()
	rec := FromTrade("run-1", tr)

	assert.NotEmpty(t, rec.TradeID)
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, tr.Instrument, rec.Instrument)
	assert.Equal(t, tr.Quantity, rec.Quantity)
	assert.Equal(t, tr.PnL, rec.PnL)
	assert.Equal(t, "take_profit", rec.Reason)

	// Each record gets its own ID.
	assert.NotEqual(t, rec.TradeID, FromTrade("run-1", tr).TradeID)
}

func TestCSVJournalWritesRows(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	require.NoError(t, Record(j, "run-1", sampleResult()))
	require.NoError(t, j.Close())

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 2) // header + one trade
	assert.Equal(t, "trade_id", trades[0][0])
	assert.Equal(t, "run-1", trades[1][1])
	assert.Equal(t, "TCS", trades[1][2])
	assert.Equal(t, "take_profit", trades[1][10])

	equity := readCSV(t, equityPath)
	require.Len(t, equity, 3) // header + two snapshots
	assert.Equal(t, "100000.000000", equity[1][2])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	res := sampleResult()
	require.NoError(t, Record(j, "run-1", res))

	trades, err := j.ListTradesByRun("run-1")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "TCS", trades[0].Instrument)
	assert.Equal(t, 50.0, trades[0].Quantity)
	assert.True(t, trades[0].ExitTime.Equal(sampleTrade().ExitTime))

	curve, err := j.ListEquityByRun("run-1")
	require.NoError(t, err)
	require.Len(t, curve, 2)
	assert.Equal(t, 100_000.0, curve[0].Equity)
}

func TestSQLiteRunSummaries(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	res := sampleResult()
	rep := performance.Report{
		InitialCapital: 100_000,
		FinalEquity:    100_147.5,
		TotalTrades:    1,
		WinningTrades:  1,
		WinRate:        1,
		SharpeRatio:    1.5,
		MaxDrawdown:    -0.01,
		TotalReturnPct: 0.001475,
	}

	run := NewRun("combined", []string{"TCS", "INFY"}, res, rep)
	require.NoError(t, j.RecordRun(run))

	got, err := j.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, "combined", got.Strategy)
	assert.Equal(t, []string{"TCS", "INFY"}, got.Instruments)
	assert.Equal(t, 1, got.Trades)
	assert.InDelta(t, 1.5, got.Sharpe, 1e-9)

	runs, err := j.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.RunID, runs[0].RunID)

	_, err = j.GetRun("no-such-run")
	require.Error(t, err)
}

func TestSQLiteListTradesClosedBetween(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	tr := sampleTrade()
	require.NoError(t, j.RecordTrade(FromTrade("run-1", tr)))

	got, err := j.ListTradesClosedBetween(tr.ExitTime.Add(-time.Hour), tr.ExitTime.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = j.ListTradesClosedBetween(tr.ExitTime.Add(time.Hour), tr.ExitTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewRunCopiesReportFields(t *testing.T) {
	rep := performance.Report{
		InitialCapital: 100_000,
		FinalEquity:    104_000,
		TotalTrades:    8,
		WinningTrades:  5,
		LosingTrades:   3,
		WinRate:        0.625,
		ProfitFactor:   2.1,
		SortinoRatio:   1.8,
		TotalReturnPct: 0.04,
	}

	run := NewRun("rsi-macd", []string{"SBIN"}, sampleResult(), rep)
	assert.NotEmpty(t, run.RunID)
	assert.False(t, run.Created.IsZero())
	assert.Equal(t, 8, run.Trades)
	assert.Equal(t, 5, run.Wins)
	assert.Equal(t, 0.625, run.WinRate)
	assert.Equal(t, 0.04, run.ReturnPct)
}

func TestSplitInstruments(t *testing.T) {
	assert.Nil(t, splitInstruments(""))
	assert.Equal(t, []string{"TCS"}, splitInstruments("TCS"))
	assert.Equal(t, []string{"TCS", "INFY"}, splitInstruments("TCS,INFY"))
}
