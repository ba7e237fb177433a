// Package indicators provides streaming technical indicators. Each
// indicator consumes one close price per bar via Update and reports
// Ready once its warmup window is full.
package indicators

import "fmt"

// SMA is a streaming simple moving average.
type SMA struct {
	period int
	window []float64
	sum    float64
}

func NewSMA(period int) *SMA {
	return &SMA{period: period, window: make([]float64, 0, period)}
}

func (s *SMA) Name() string { return fmt.Sprintf("SMA(%d)", s.period) }
func (s *SMA) Warmup() int  { return s.period }

func (s *SMA) Reset() {
	s.window = s.window[:0]
	s.sum = 0
}

func (s *SMA) Update(close float64) {
	s.window = append(s.window, close)
	s.sum += close
	if len(s.window) > s.period {
		s.sum -= s.window[0]
		s.window = s.window[1:]
	}
}

func (s *SMA) Ready() bool { return len(s.window) >= s.period }

func (s *SMA) Value() float64 {
	if !s.Ready() {
		return 0
	}
	return s.sum / float64(len(s.window))
}

// EMA is a streaming exponential moving average seeded with the SMA of
// the first period closes.
type EMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

func NewEMA(period int) *EMA {
	return &EMA{period: period, multiplier: 2.0 / float64(period+1)}
}

func (e *EMA) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }
func (e *EMA) Warmup() int  { return e.period }

func (e *EMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *EMA) Update(close float64) {
	e.count++
	if e.count < e.period {
		e.warmupSum += close
		return
	}
	if e.count == e.period {
		e.warmupSum += close
		e.ema = e.warmupSum / float64(e.period)
		return
	}
	e.ema = (close-e.ema)*e.multiplier + e.ema
}

func (e *EMA) Ready() bool { return e.count >= e.period }

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}
