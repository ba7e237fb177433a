// Package performance reduces a completed trade log and equity curve
// into summary statistics. Degenerate inputs (zero trades, zero
// variance, zero losing trades) resolve to defined sentinel values,
// never a runtime failure, so a completed backtest always yields a
// report.
package performance

import (
	"fmt"
	"math"
	"time"

	"github.com/quantkit/backtester/backtest"
)

// Config is the analyzer's configuration surface.
type Config struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`

	// PeriodsPerYear annualizes Sharpe and Sortino; e.g. 252 for daily
	// bars, 252*25 for 15-minute bars on a 6.25h session.
	PeriodsPerYear int `json:"periods_per_year" yaml:"periods_per_year"`
}

func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive, got %g", c.InitialCapital)
	}
	if c.PeriodsPerYear <= 0 {
		return fmt.Errorf("periods_per_year must be a positive integer, got %d", c.PeriodsPerYear)
	}
	return nil
}

// Report holds the derived statistics for one run. It is recomputed
// fresh from the trade log and equity curve, never persisted as mutable
// state.
type Report struct {
	InitialCapital float64
	FinalEquity    float64
	TotalReturn    float64
	TotalReturnPct float64

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64

	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64

	AverageWin  float64
	AverageLoss float64
	LargestWin  float64
	LargestLoss float64
	Expectancy  float64
	TotalFees   float64

	SharpeRatio  float64
	SortinoRatio float64

	// MaxDrawdown is the largest peak-to-trough decline as a negative
	// fraction of the peak (-0.12 = a 12% drawdown).
	MaxDrawdown float64

	AvgHoldingTime time.Duration
}

// Summarize computes the report from an ordered trade log and equity
// curve. The only error it can return is an invalid Config; everything
// else reduces to sentinel values.
func Summarize(trades []backtest.Trade, curve []backtest.EquityPoint, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	r := Report{
		InitialCapital: cfg.InitialCapital,
		FinalEquity:    cfg.InitialCapital,
		TotalTrades:    len(trades),
	}
	if n := len(curve); n > 0 {
		r.FinalEquity = curve[n-1].Equity
	}
	r.TotalReturn = r.FinalEquity - cfg.InitialCapital
	r.TotalReturnPct = r.TotalReturn / cfg.InitialCapital

	var holding time.Duration
	for _, t := range trades {
		r.TotalFees += t.Fees
		holding += t.ExitTime.Sub(t.EntryTime)
		switch {
		case t.PnL > 0:
			r.WinningTrades++
			r.GrossProfit += t.PnL
			if t.PnL > r.LargestWin {
				r.LargestWin = t.PnL
			}
		case t.PnL < 0:
			r.LosingTrades++
			r.GrossLoss += t.PnL
			if t.PnL < r.LargestLoss {
				r.LargestLoss = t.PnL
			}
		}
	}

	if r.TotalTrades > 0 {
		r.WinRate = float64(r.WinningTrades) / float64(r.TotalTrades)
		r.Expectancy = (r.GrossProfit + r.GrossLoss) / float64(r.TotalTrades)
		r.AvgHoldingTime = holding / time.Duration(r.TotalTrades)
	}
	if r.WinningTrades > 0 {
		r.AverageWin = r.GrossProfit / float64(r.WinningTrades)
	}
	if r.LosingTrades > 0 {
		r.AverageLoss = r.GrossLoss / float64(r.LosingTrades)
	}

	// Profit factor: gross profit over gross loss magnitude. No losses
	// with any profit is +Inf by definition, not a failure.
	switch {
	case r.GrossLoss != 0:
		r.ProfitFactor = r.GrossProfit / math.Abs(r.GrossLoss)
	case r.GrossProfit > 0:
		r.ProfitFactor = math.Inf(1)
	}

	returns := periodReturns(curve)
	r.SharpeRatio, r.SortinoRatio = riskRatios(returns, cfg.PeriodsPerYear)
	r.MaxDrawdown = maxDrawdown(curve)

	return r, nil
}

// periodReturns converts consecutive equity snapshots into simple
// period returns.
func periodReturns(curve []backtest.EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			continue
		}
		out = append(out, (curve[i].Equity-prev)/prev)
	}
	return out
}

// riskRatios computes annualized Sharpe and Sortino. Zero total variance
// yields a Sharpe of 0. Sortino is +Inf only when no negative period
// returns exist; downside with zero deviation (a single losing period,
// or identical ones) yields 0, never the no-downside sentinel.
func riskRatios(returns []float64, periodsPerYear int) (sharpe, sortino float64) {
	if len(returns) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	annual := math.Sqrt(float64(periodsPerYear))

	if sd := sampleStdev(returns, mean); sd > 0 {
		sharpe = mean / sd * annual
	}

	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	dmean := 0.0
	for _, r := range downside {
		dmean += r
	}
	if len(downside) > 0 {
		dmean /= float64(len(downside))
	}
	if len(downside) == 0 {
		sortino = math.Inf(1)
	} else if dsd := sampleStdev(downside, dmean); dsd > 0 {
		sortino = mean / dsd * annual
	}
	return sharpe, sortino
}

// sampleStdev is the n-1 standard deviation; fewer than two samples
// yields 0.
func sampleStdev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// maxDrawdown walks the curve tracking the running peak and returns the
// deepest decline as a negative fraction.
func maxDrawdown(curve []backtest.EquityPoint) float64 {
	var peak, worst float64
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak <= 0 {
			continue
		}
		dd := (p.Equity - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
