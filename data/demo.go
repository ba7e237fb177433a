// Package data loads bar series from CSV files and generates
// deterministic demo data, so the backtester works without any broker
// or exchange access.
package data

import (
	"math"
	"math/rand"
	"time"

	"github.com/quantkit/backtester/market"
)

// basePrices seeds the demo walk per symbol; unknown symbols start at
// 1000.
var basePrices = map[string]float64{
	"RELIANCE":   2800,
	"TCS":        3500,
	"INFY":       1450,
	"HDFCBANK":   1650,
	"ICICIBANK":  1100,
	"SBIN":       750,
	"WIPRO":      450,
	"TATAMOTORS": 900,
}

// Generator produces reproducible OHLCV bars: a seeded random walk with
// momentum, mean-reversion toward a mild upward trend, and intraday
// trading sessions (09:15-15:30, weekends skipped).
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator with the given seed. The same seed
// always yields the same bars.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// GenerateOptions shapes one instrument's demo series.
type GenerateOptions struct {
	Days            int
	IntervalMinutes int
	BasePrice       float64 // 0 picks a per-symbol default
	Volatility      float64 // daily volatility, 0 defaults to 2%
	Start           time.Time
}

// Generate produces one instrument's bar series.
func (g *Generator) Generate(symbol string, opts GenerateOptions) []market.Bar {
	if opts.Days <= 0 {
		opts.Days = 50
	}
	if opts.IntervalMinutes <= 0 {
		opts.IntervalMinutes = 15
	}
	if opts.Volatility <= 0 {
		opts.Volatility = 0.02
	}
	base := opts.BasePrice
	if base == 0 {
		if p, ok := basePrices[symbol]; ok {
			base = p
		} else {
			base = 1000
		}
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	times := sessionTimes(start, opts.Days, opts.IntervalMinutes)
	n := len(times)
	if n == 0 {
		return nil
	}

	// A mild upward trend keeps demo backtests interesting, with
	// momentum and mean-reversion layered onto the per-bar noise.
	perDay := 375 / opts.IntervalMinutes
	sigma := opts.Volatility / math.Sqrt(float64(perDay))

	returns := make([]float64, n)
	for i := range returns {
		returns[i] = g.rng.NormFloat64() * sigma
	}
	for i := 1; i < n; i++ {
		trend := 0.15 * float64(i) / float64(n)
		returns[i] += 0.3*returns[i-1] - 0.1*(returns[i-1]-trend)
	}

	bars := make([]market.Bar, 0, n)
	cum := 0.0
	for i, t := range times {
		cum += returns[i]
		trend := 0.15 * float64(i) / float64(max(n-1, 1))
		close := base * (1 + cum + trend)
		if close <= 0 {
			close = 0.01
		}

		spread := close * opts.Volatility * 0.5
		open := close + (g.rng.Float64()*2-1)*spread
		if open <= 0 {
			open = close
		}
		high := math.Max(open, close) + g.rng.Float64()*spread
		low := math.Min(open, close) - g.rng.Float64()*spread
		if low <= 0 {
			low = math.Min(open, close)
		}

		volume := 1_000_000 + g.rng.Float64()*4_000_000
		volume *= 1 + math.Abs(close-open)/open*10

		bars = append(bars, market.Bar{
			Instrument: symbol,
			Time:       t,
			Open:       round2(open),
			High:       round2(high),
			Low:        round2(low),
			Close:      round2(close),
			Volume:     math.Trunc(volume),
		})
	}
	return bars
}

// GenerateAll produces series for several symbols with one shared
// timeline.
func (g *Generator) GenerateAll(symbols []string, opts GenerateOptions) map[string][]market.Bar {
	out := make(map[string][]market.Bar, len(symbols))
	for _, sym := range symbols {
		out[sym] = g.Generate(sym, opts)
	}
	return out
}

// sessionTimes yields intraday bar open times: 09:15 through 15:30,
// Monday to Friday.
func sessionTimes(start time.Time, days, intervalMinutes int) []time.Time {
	var times []time.Time
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for d := 0; d < days; d++ {
		date := day.AddDate(0, 0, d)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		open := date.Add(9*time.Hour + 15*time.Minute)
		for m := 0; ; m += intervalMinutes {
			t := open.Add(time.Duration(m) * time.Minute)
			if t.Hour() > 15 || (t.Hour() == 15 && t.Minute() > 30) {
				break
			}
			times = append(times, t)
		}
	}
	return times
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
