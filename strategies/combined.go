package strategies

import (
	"github.com/quantkit/backtester/indicators"
	"github.com/quantkit/backtester/market"
)

// Combined has each indicator vote for buy or sell and emits a signal
// only when at least MinSignalStrength indicators agree. Above-average
// volume adds a confirmation vote to whichever side already has votes.
// When both sides clear the threshold the stronger side wins; a tie is
// neutral.
type Combined struct {
	p Params

	rsi  *indicators.RSI
	macd *indicators.MACD
	maS  *indicators.SMA
	maL  *indicators.SMA
	bb   *indicators.Bollinger
	vol  *indicators.SMA

	prevHist   float64
	prevMADiff float64
	havePrev   bool
}

func NewCombined(p Params) *Combined {
	return &Combined{
		p:    p,
		rsi:  indicators.NewRSI(p.RSIPeriod),
		macd: indicators.NewMACD(p.MACDFast, p.MACDSlow, p.MACDSignal),
		maS:  indicators.NewSMA(p.MAShort),
		maL:  indicators.NewSMA(p.MALong),
		bb:   indicators.NewBollinger(p.BBPeriod, p.BBStdDev),
		vol:  indicators.NewSMA(p.VolumePeriod),
	}
}

func (s *Combined) Name() string { return "combined" }

func (s *Combined) Reset() {
	s.rsi.Reset()
	s.macd.Reset()
	s.maS.Reset()
	s.maL.Reset()
	s.bb.Reset()
	s.vol.Reset()
	s.prevHist = 0
	s.prevMADiff = 0
	s.havePrev = false
}

func (s *Combined) OnBar(b market.Bar) market.Signal {
	sig := market.Signal{Instrument: b.Instrument, Time: b.Time, Direction: market.Hold}

	s.rsi.Update(b.Close)
	s.macd.Update(b.Close)
	s.maS.Update(b.Close)
	s.maL.Update(b.Close)
	s.bb.Update(b.Close)
	s.vol.Update(b.Volume)

	if !s.rsi.Ready() || !s.macd.Ready() || !s.maL.Ready() || !s.bb.Ready() {
		return sig
	}

	hist := s.macd.Histogram()
	maDiff := s.maS.Value() - s.maL.Value()

	buy, sell := 0, 0

	if rsi := s.rsi.Value(); rsi < s.p.RSIOversold {
		buy++
	} else if rsi > s.p.RSIOverbought {
		sell++
	}

	if s.havePrev {
		if hist > 0 && s.prevHist <= 0 {
			buy++
		} else if hist < 0 && s.prevHist >= 0 {
			sell++
		}
		if maDiff > 0 && s.prevMADiff <= 0 {
			buy++
		} else if maDiff < 0 && s.prevMADiff >= 0 {
			sell++
		}
	}

	upper, lower := s.bb.Bands()
	if b.Close <= lower*1.01 {
		buy++
	} else if b.Close >= upper*0.99 {
		sell++
	}

	if s.vol.Ready() && s.vol.Value() > 0 && b.Volume/s.vol.Value() > s.p.VolumeThreshold {
		if buy > 0 {
			buy++
		}
		if sell > 0 {
			sell++
		}
	}

	s.prevHist = hist
	s.prevMADiff = maDiff
	s.havePrev = true

	min := s.p.MinSignalStrength
	switch {
	case buy >= min && sell >= min:
		if buy > sell {
			sig.Direction = market.Enter
		} else if sell > buy {
			sig.Direction = market.Exit
		}
	case buy >= min:
		sig.Direction = market.Enter
	case sell >= min:
		sig.Direction = market.Exit
	}
	if sig.Direction != market.Hold {
		votes := buy
		if sig.Direction == market.Exit {
			votes = sell
		}
		sig.Strength = float64(votes)
	}
	return sig
}
