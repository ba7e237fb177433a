// Package journal persists backtest output. The engine itself never does
// I/O; a journal consumes the in-memory results read-only after (or
// during) a run.
package journal

import (
	"time"

	"github.com/quantkit/backtester/backtest"
	"github.com/quantkit/backtester/pkg/id"
)

// TradeRecord is one persisted trade row.
type TradeRecord struct {
	TradeID    string
	RunID      string
	Instrument string
	Quantity   float64
	EntryPrice float64
	ExitPrice  float64
	EntryTime  time.Time
	ExitTime   time.Time
	PnL        float64
	Fees       float64
	Reason     string
}

// EquitySnapshot is one persisted equity-curve row.
type EquitySnapshot struct {
	RunID  string
	Time   time.Time
	Equity float64
}

// Journal is the minimal sink for a run's trades and equity curve.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// FromTrade converts an engine trade into a persistable record with a
// fresh ULID.
func FromTrade(runID string, t backtest.Trade) TradeRecord {
	return TradeRecord{
		TradeID:    id.New(),
		RunID:      runID,
		Instrument: t.Instrument,
		Quantity:   t.Quantity,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		EntryTime:  t.EntryTime,
		ExitTime:   t.ExitTime,
		PnL:        t.PnL,
		Fees:       t.Fees,
		Reason:     string(t.Reason),
	}
}

// Record writes a completed result's trade log and equity curve to j.
func Record(j Journal, runID string, res *backtest.Result) error {
	for _, t := range res.Trades {
		if err := j.RecordTrade(FromTrade(runID, t)); err != nil {
			return err
		}
	}
	for _, p := range res.Equity {
		if err := j.RecordEquity(EquitySnapshot{RunID: runID, Time: p.Time, Equity: p.Equity}); err != nil {
			return err
		}
	}
	return nil
}
