package risk

import "fmt"

// Config holds the position-sizing and exit-level policy. All fractions
// are expressed as 0.10 = 10%.
type Config struct {
	// PositionSizeFraction of current equity committed per entry.
	PositionSizeFraction float64 `json:"position_size_fraction" yaml:"position_size_fraction"`

	// StopLossFraction below entry and TakeProfitFraction above entry.
	StopLossFraction   float64 `json:"stop_loss_fraction" yaml:"stop_loss_fraction"`
	TakeProfitFraction float64 `json:"take_profit_fraction" yaml:"take_profit_fraction"`

	// FractionalUnits allows sizing in exact notional/price units
	// (crypto convention). When false, quantities floor to whole shares.
	FractionalUnits bool `json:"fractional_units" yaml:"fractional_units"`

	// MaxOpenPositions caps concurrent positions across instruments.
	// 0 means unlimited.
	MaxOpenPositions int `json:"max_open_positions" yaml:"max_open_positions"`

	// Drawdown guard: when running drawdown from the equity peak exceeds
	// DrawdownCeiling, new entries are suspended until it recovers below
	// DrawdownRecovery. Both zero disables the guard.
	DrawdownCeiling  float64 `json:"drawdown_ceiling" yaml:"drawdown_ceiling"`
	DrawdownRecovery float64 `json:"drawdown_recovery" yaml:"drawdown_recovery"`
}

// Validate rejects configuration errors before any simulation step runs.
func (c Config) Validate() error {
	if c.PositionSizeFraction <= 0 || c.PositionSizeFraction > 1 {
		return fmt.Errorf("position_size_fraction must be in (0, 1], got %g", c.PositionSizeFraction)
	}
	if c.StopLossFraction <= 0 || c.StopLossFraction >= 1 {
		return fmt.Errorf("stop_loss_fraction must be in (0, 1), got %g", c.StopLossFraction)
	}
	if c.TakeProfitFraction <= 0 || c.TakeProfitFraction >= 1 {
		return fmt.Errorf("take_profit_fraction must be in (0, 1), got %g", c.TakeProfitFraction)
	}
	if c.MaxOpenPositions < 0 {
		return fmt.Errorf("max_open_positions must be >= 0, got %d", c.MaxOpenPositions)
	}
	if c.DrawdownCeiling < 0 || c.DrawdownCeiling >= 1 {
		return fmt.Errorf("drawdown_ceiling must be in [0, 1), got %g", c.DrawdownCeiling)
	}
	if c.DrawdownRecovery < 0 || c.DrawdownRecovery >= 1 {
		return fmt.Errorf("drawdown_recovery must be in [0, 1), got %g", c.DrawdownRecovery)
	}
	if c.DrawdownCeiling > 0 && c.DrawdownRecovery > c.DrawdownCeiling {
		return fmt.Errorf("drawdown_recovery %g must not exceed drawdown_ceiling %g",
			c.DrawdownRecovery, c.DrawdownCeiling)
	}
	return nil
}

// Default mirrors the stock intraday defaults: 10% of equity per entry,
// 1.5% stop, 3% target (2:1 reward/risk), at most 3 concurrent positions.
func Default() Config {
	return Config{
		PositionSizeFraction: 0.10,
		StopLossFraction:     0.015,
		TakeProfitFraction:   0.03,
		MaxOpenPositions:     3,
		DrawdownCeiling:      0.12,
		DrawdownRecovery:     0.08,
	}
}
