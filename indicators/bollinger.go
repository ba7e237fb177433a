package indicators

import (
	"fmt"
	"math"
)

// Bollinger is a streaming Bollinger Bands indicator: an SMA middle band
// with upper/lower bands at a configured number of standard deviations.
type Bollinger struct {
	period int
	stddev float64
	window []float64
}

func NewBollinger(period int, stddev float64) *Bollinger {
	return &Bollinger{
		period: period,
		stddev: stddev,
		window: make([]float64, 0, period),
	}
}

func (b *Bollinger) Name() string { return fmt.Sprintf("BB(%d,%.1f)", b.period, b.stddev) }
func (b *Bollinger) Warmup() int  { return b.period }

func (b *Bollinger) Reset() {
	b.window = b.window[:0]
}

func (b *Bollinger) Update(close float64) {
	b.window = append(b.window, close)
	if len(b.window) > b.period {
		b.window = b.window[1:]
	}
}

func (b *Bollinger) Ready() bool { return len(b.window) >= b.period }

// Middle returns the middle band (SMA).
func (b *Bollinger) Middle() float64 {
	if !b.Ready() {
		return 0
	}
	sum := 0.0
	for _, v := range b.window {
		sum += v
	}
	return sum / float64(len(b.window))
}

// Bands returns the upper and lower bands.
func (b *Bollinger) Bands() (upper, lower float64) {
	if !b.Ready() {
		return 0, 0
	}
	mid := b.Middle()
	variance := 0.0
	for _, v := range b.window {
		d := v - mid
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(len(b.window)))
	return mid + b.stddev*sd, mid - b.stddev*sd
}
