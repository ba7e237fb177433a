package risk

import (
	"math"

	"github.com/quantkit/backtester/market"
)

// ExitReason explains why a position was closed.
type ExitReason string

const (
	ExitSignal      ExitReason = "signal_exit"
	ExitStopLoss    ExitReason = "stop_loss"
	ExitTakeProfit  ExitReason = "take_profit"
	ExitEndOfPeriod ExitReason = "end_of_period"
)

// Manager applies the sizing and exit policy. It reads account equity to
// make decisions but never mutates account state; the simulation engine
// owns that.
type Manager struct {
	cfg Config

	peak   float64
	halted bool
}

func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

func (m *Manager) Config() Config { return m.cfg }

// Size converts current equity and the candidate entry price into a
// quantity. Notional = equity * PositionSizeFraction; share-lot
// instruments floor to whole units. A result of 0 means the entry is
// rejected (insufficient capital for even one unit), which callers treat
// as a no-op, not an error.
func (m *Manager) Size(equity, price float64) float64 {
	if price <= 0 || equity <= 0 {
		return 0
	}
	notional := equity * m.cfg.PositionSizeFraction
	qty := notional / price
	if !m.cfg.FractionalUnits {
		qty = math.Floor(qty)
	}
	if qty <= 0 {
		return 0
	}
	return qty
}

// ExitLevels derives the stop-loss and take-profit prices for a long
// entry at the given price.
func (m *Manager) ExitLevels(entry float64) (stop, take float64) {
	stop = entry * (1 - m.cfg.StopLossFraction)
	take = entry * (1 + m.cfg.TakeProfitFraction)
	return stop, take
}

// CheckExit evaluates a bar against the position's stop and take levels
// using the bar's low and high, since either level could be touched
// intrabar. If both are touched within the same bar the stop wins
// (conservative bias). Signal exits are the caller's concern and rank
// below stop/take for the same bar.
func (m *Manager) CheckExit(stop, take float64, b market.Bar) (price float64, reason ExitReason, hit bool) {
	stopHit := stop > 0 && b.Low <= stop
	takeHit := take > 0 && b.High >= take

	switch {
	case stopHit:
		return stop, ExitStopLoss, true
	case takeHit:
		return take, ExitTakeProfit, true
	}
	return 0, "", false
}

// Observe feeds the current mark-to-market equity into the drawdown
// guard. The guard trips when drawdown from the running peak exceeds the
// ceiling and re-arms only after it recovers below the recovery
// threshold (hysteresis).
func (m *Manager) Observe(equity float64) {
	if equity > m.peak {
		m.peak = equity
	}
	if m.cfg.DrawdownCeiling <= 0 || m.peak <= 0 {
		return
	}

	dd := (m.peak - equity) / m.peak
	if m.halted {
		if dd <= m.cfg.DrawdownRecovery {
			m.halted = false
		}
		return
	}
	if dd > m.cfg.DrawdownCeiling {
		m.halted = true
	}
}

// CanEnter reports whether the policy currently permits a new entry.
func (m *Manager) CanEnter(openPositions int) bool {
	if m.halted {
		return false
	}
	if m.cfg.MaxOpenPositions > 0 && openPositions >= m.cfg.MaxOpenPositions {
		return false
	}
	return true
}

// Halted reports whether the drawdown guard is currently tripped.
func (m *Manager) Halted() bool { return m.halted }
