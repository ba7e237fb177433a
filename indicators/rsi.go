package indicators

import "fmt"

// RSI is a streaming Relative Strength Index using Wilder smoothing.
type RSI struct {
	period  int
	count   int
	prev    float64
	avgGain float64
	avgLoss float64
}

func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string { return fmt.Sprintf("RSI(%d)", r.period) }
func (r *RSI) Warmup() int  { return r.period + 1 }

func (r *RSI) Reset() {
	r.count = 0
	r.prev = 0
	r.avgGain = 0
	r.avgLoss = 0
}

func (r *RSI) Update(close float64) {
	r.count++
	if r.count == 1 {
		r.prev = close
		return
	}

	change := close - r.prev
	r.prev = close

	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	n := float64(r.period)
	if r.count <= r.period+1 {
		// Simple average over the first period changes.
		r.avgGain += gain / n
		r.avgLoss += loss / n
		return
	}
	r.avgGain = (r.avgGain*(n-1) + gain) / n
	r.avgLoss = (r.avgLoss*(n-1) + loss) / n
}

func (r *RSI) Ready() bool { return r.count >= r.period+1 }

// Value is in [0, 100]; 100 when there have been no losses.
func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}
	if r.avgLoss == 0 {
		return 100
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}
