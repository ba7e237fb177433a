package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feed(ind interface{ Update(float64) }, closes ...float64) {
	for _, c := range closes {
		ind.Update(c)
	}
}

func TestSMA(t *testing.T) {
	s := NewSMA(3)
	assert.False(t, s.Ready())
	assert.Equal(t, 0.0, s.Value())

	feed(s, 1, 2, 3)
	assert.True(t, s.Ready())
	assert.InDelta(t, 2.0, s.Value(), 1e-12)

	// Window slides: (2+3+10)/3.
	s.Update(10)
	assert.InDelta(t, 5.0, s.Value(), 1e-12)
}

func TestSMAReset(t *testing.T) {
	s := NewSMA(2)
	feed(s, 5, 7)
	assert.True(t, s.Ready())

	s.Reset()
	assert.False(t, s.Ready())
	assert.Equal(t, 0.0, s.Value())
}

func TestEMASeedsWithSMA(t *testing.T) {
	e := NewEMA(3)
	feed(e, 2, 4, 6)
	assert.True(t, e.Ready())
	assert.InDelta(t, 4.0, e.Value(), 1e-12)

	// multiplier = 2/(3+1) = 0.5; next value = (8-4)*0.5 + 4.
	e.Update(8)
	assert.InDelta(t, 6.0, e.Value(), 1e-12)
}

func TestEMANotReadyDuringWarmup(t *testing.T) {
	e := NewEMA(5)
	feed(e, 1, 2, 3, 4)
	assert.False(t, e.Ready())
	assert.Equal(t, 0.0, e.Value())
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	r := NewRSI(3)
	feed(r, 10, 11, 12, 13)
	assert.True(t, r.Ready())
	assert.Equal(t, 100.0, r.Value())
}

func TestRSIAllLossesIsZero(t *testing.T) {
	r := NewRSI(3)
	feed(r, 13, 12, 11, 10)
	assert.True(t, r.Ready())
	assert.InDelta(t, 0.0, r.Value(), 1e-12)
}

func TestRSIBalancedIsFifty(t *testing.T) {
	// Alternating equal gains and losses: avg gain equals avg loss.
	r := NewRSI(4)
	feed(r, 100, 101, 100, 101, 100)
	assert.True(t, r.Ready())
	assert.InDelta(t, 50.0, r.Value(), 1e-9)
}

func TestRSIWarmup(t *testing.T) {
	r := NewRSI(14)
	assert.Equal(t, 15, r.Warmup())
	feed(r, 1, 2, 3)
	assert.False(t, r.Ready())
}

func TestMACDRisingTrendPositiveLine(t *testing.T) {
	m := NewMACD(3, 6, 3)
	for c := 1.0; c <= 20; c++ {
		m.Update(c)
	}
	assert.True(t, m.Ready())
	// Fast EMA tracks a rising series above the slow EMA.
	assert.True(t, m.Line() > 0)
}

func TestMACDHistogramFlipsOnReversal(t *testing.T) {
	m := NewMACD(3, 6, 3)
	for c := 1.0; c <= 15; c++ {
		m.Update(c)
	}
	assert.True(t, m.Histogram() > 0)

	for c := 15.0; c >= 1; c-- {
		m.Update(c)
	}
	assert.True(t, m.Histogram() < 0)
}

func TestBollingerBands(t *testing.T) {
	b := NewBollinger(4, 2.0)
	feed(b, 2, 4, 4, 6)
	assert.True(t, b.Ready())
	assert.InDelta(t, 4.0, b.Middle(), 1e-12)

	// Population stddev of {2,4,4,6} is sqrt(2).
	upper, lower := b.Bands()
	assert.InDelta(t, 4.0+2.0*1.4142135, upper, 1e-6)
	assert.InDelta(t, 4.0-2.0*1.4142135, lower, 1e-6)
}

func TestBollingerFlatSeries(t *testing.T) {
	b := NewBollinger(3, 2.0)
	feed(b, 5, 5, 5)
	upper, lower := b.Bands()
	assert.Equal(t, 5.0, upper)
	assert.Equal(t, 5.0, lower)
}
