package backtest

import (
	"fmt"
	"time"

	"github.com/quantkit/backtester/market"
	"github.com/quantkit/backtester/risk"
)

// Position is an open long holding in one instrument. It is owned
// exclusively by the engine for its lifetime: created on entry, read by
// the risk checks, and converted to a Trade on close.
type Position struct {
	Instrument string
	EntryTime  time.Time
	EntryPrice float64
	Quantity   float64
	StopLoss   float64
	TakeProfit float64

	entryFee float64
}

// Trade is the immutable record of a closed position.
type Trade struct {
	Instrument string
	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	Quantity   float64
	PnL        float64
	Fees       float64
	Reason     risk.ExitReason
}

// EquityPoint is one equity-curve snapshot, appended once per processed
// bar and never mutated afterwards.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// Account is the engine's view of simulated capital. Equity is cash plus
// the mark-to-market value of open positions.
type Account struct {
	Cash      float64
	Equity    float64
	Positions map[string]*Position
}

// SkipReason explains why an enter signal produced no position.
type SkipReason string

const (
	SkipInsufficientCapital SkipReason = "insufficient_capital"
	SkipDrawdownGuard       SkipReason = "drawdown_guard"
	SkipMaxPositions        SkipReason = "max_positions"
	SkipFinalBar            SkipReason = "final_bar"
)

// SkippedEntry records an enter signal that was declined. Skips are
// diagnostics, not errors; the run continues.
type SkippedEntry struct {
	Instrument string
	Time       time.Time
	Reason     SkipReason
}

// Result bundles everything a completed run produces. All fields are
// in-memory; persistence is the journal package's concern.
type Result struct {
	Trades  []Trade
	Equity  []EquityPoint
	Account Account
	Skipped []SkippedEntry

	Start time.Time
	End   time.Time
}

// Config is the engine's own configuration surface.
type Config struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`

	// FeeRate is the flat fee fraction charged on both the entry and
	// exit notional.
	FeeRate float64 `json:"fee_rate" yaml:"fee_rate"`
}

func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive, got %g", c.InitialCapital)
	}
	if c.FeeRate < 0 || c.FeeRate >= 1 {
		return fmt.Errorf("fee_rate must be in [0, 1), got %g", c.FeeRate)
	}
	return nil
}

// SignalSource yields one directional signal per bar per instrument.
// Implementations are typically streaming strategies; the engine calls
// OnBar exactly once per bar in global chronological order.
type SignalSource interface {
	OnBar(b market.Bar) market.Signal
}

// SignalFunc adapts a plain function to a SignalSource.
type SignalFunc func(b market.Bar) market.Signal

func (f SignalFunc) OnBar(b market.Bar) market.Signal { return f(b) }
