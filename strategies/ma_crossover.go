package strategies

import (
	"github.com/quantkit/backtester/indicators"
	"github.com/quantkit/backtester/market"
)

// MACrossover enters on a golden cross (short SMA crossing above long
// SMA) and exits on a death cross.
type MACrossover struct {
	short *indicators.SMA
	long  *indicators.SMA

	prevDiff float64
	havePrev bool
}

func NewMACrossover(p Params) *MACrossover {
	return &MACrossover{
		short: indicators.NewSMA(p.MAShort),
		long:  indicators.NewSMA(p.MALong),
	}
}

func (s *MACrossover) Name() string { return "ma-crossover" }

func (s *MACrossover) Reset() {
	s.short.Reset()
	s.long.Reset()
	s.prevDiff = 0
	s.havePrev = false
}

func (s *MACrossover) OnBar(b market.Bar) market.Signal {
	sig := market.Signal{Instrument: b.Instrument, Time: b.Time, Direction: market.Hold}

	s.short.Update(b.Close)
	s.long.Update(b.Close)
	if !s.long.Ready() {
		return sig
	}

	diff := s.short.Value() - s.long.Value()
	if s.havePrev {
		switch {
		case diff > 0 && s.prevDiff <= 0:
			sig.Direction = market.Enter
		case diff < 0 && s.prevDiff >= 0:
			sig.Direction = market.Exit
		}
	}
	s.prevDiff = diff
	s.havePrev = true
	return sig
}
