package strategies

import (
	"github.com/quantkit/backtester/indicators"
	"github.com/quantkit/backtester/market"
)

// RSIMACD enters when RSI is oversold and the MACD line crosses above
// its signal line; it exits when RSI is overbought or the MACD line
// crosses below its signal line.
type RSIMACD struct {
	p    Params
	rsi  *indicators.RSI
	macd *indicators.MACD

	prevHist float64
	havePrev bool
}

func NewRSIMACD(p Params) *RSIMACD {
	return &RSIMACD{
		p:    p,
		rsi:  indicators.NewRSI(p.RSIPeriod),
		macd: indicators.NewMACD(p.MACDFast, p.MACDSlow, p.MACDSignal),
	}
}

func (s *RSIMACD) Name() string { return "rsi-macd" }

func (s *RSIMACD) Reset() {
	s.rsi.Reset()
	s.macd.Reset()
	s.prevHist = 0
	s.havePrev = false
}

func (s *RSIMACD) OnBar(b market.Bar) market.Signal {
	sig := market.Signal{Instrument: b.Instrument, Time: b.Time, Direction: market.Hold}

	s.rsi.Update(b.Close)
	s.macd.Update(b.Close)
	if !s.rsi.Ready() || !s.macd.Ready() {
		return sig
	}

	hist := s.macd.Histogram()
	crossUp := s.havePrev && hist > 0 && s.prevHist <= 0
	crossDown := s.havePrev && hist < 0 && s.prevHist >= 0
	s.prevHist = hist
	s.havePrev = true

	rsi := s.rsi.Value()
	switch {
	case rsi < s.p.RSIOversold && crossUp:
		sig.Direction = market.Enter
	case rsi > s.p.RSIOverbought || crossDown:
		sig.Direction = market.Exit
	}
	return sig
}
