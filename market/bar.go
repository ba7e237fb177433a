package market

import (
	"fmt"
	"time"
)

// Bar is one OHLCV sample for a fixed interval. Bars are immutable once
// produced; the engine never writes back into them.
type Bar struct {
	Instrument string
	Time       time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64
}

// Validate checks a single bar for obvious data corruption.
func (b Bar) Validate() error {
	if b.Instrument == "" {
		return fmt.Errorf("bar at %s: empty instrument", b.Time.Format(time.RFC3339))
	}
	if b.Time.IsZero() {
		return fmt.Errorf("bar for %s: zero timestamp", b.Instrument)
	}
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("bar %s @ %s: non-positive price (O=%g H=%g L=%g C=%g)",
			b.Instrument, b.Time.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close)
	}
	if b.High < b.Low {
		return fmt.Errorf("bar %s @ %s: high %g below low %g",
			b.Instrument, b.Time.Format(time.RFC3339), b.High, b.Low)
	}
	return nil
}

// ValidateSeries checks one instrument's bars for chronological order and
// duplicate timestamps. Duplicates are a data-integrity error, never
// silently deduplicated: they indicate upstream corruption.
func ValidateSeries(bars []Bar) error {
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev := bars[i-1]
		if b.Instrument != prev.Instrument {
			return fmt.Errorf("series mixes instruments %s and %s", prev.Instrument, b.Instrument)
		}
		if b.Time.Equal(prev.Time) {
			return fmt.Errorf("duplicate timestamp %s for %s",
				b.Time.Format(time.RFC3339), b.Instrument)
		}
		if b.Time.Before(prev.Time) {
			return fmt.Errorf("out-of-order bar %s @ %s (previous %s)",
				b.Instrument, b.Time.Format(time.RFC3339), prev.Time.Format(time.RFC3339))
		}
	}
	return nil
}
