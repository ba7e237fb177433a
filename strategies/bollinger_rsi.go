package strategies

import (
	"github.com/quantkit/backtester/indicators"
	"github.com/quantkit/backtester/market"
)

// BollingerRSI enters when price sits within 1% of the lower band while
// RSI is oversold, and exits when price sits within 1% of the upper band
// while RSI is overbought.
type BollingerRSI struct {
	p  Params
	bb *indicators.Bollinger
	rs *indicators.RSI
}

func NewBollingerRSI(p Params) *BollingerRSI {
	return &BollingerRSI{
		p:  p,
		bb: indicators.NewBollinger(p.BBPeriod, p.BBStdDev),
		rs: indicators.NewRSI(p.RSIPeriod),
	}
}

func (s *BollingerRSI) Name() string { return "bollinger-rsi" }

func (s *BollingerRSI) Reset() {
	s.bb.Reset()
	s.rs.Reset()
}

func (s *BollingerRSI) OnBar(b market.Bar) market.Signal {
	sig := market.Signal{Instrument: b.Instrument, Time: b.Time, Direction: market.Hold}

	s.bb.Update(b.Close)
	s.rs.Update(b.Close)
	if !s.bb.Ready() || !s.rs.Ready() {
		return sig
	}

	upper, lower := s.bb.Bands()
	rsi := s.rs.Value()

	switch {
	case b.Close <= lower*1.01 && rsi < s.p.RSIOversold:
		sig.Direction = market.Enter
	case b.Close >= upper*0.99 && rsi > s.p.RSIOverbought:
		sig.Direction = market.Exit
	}
	return sig
}
