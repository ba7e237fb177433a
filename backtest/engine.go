package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/quantkit/backtester/market"
	"github.com/quantkit/backtester/risk"
)

// Engine drives the bar-by-bar simulation. It is strictly sequential:
// bar N's transition depends on the state bar N-1 produced, so all
// instruments run merged on one timeline. The engine exclusively owns
// the account and equity curve; the risk manager only reads equity and
// returns decisions.
type Engine struct {
	cfg Config
	rm  *risk.Manager

	cash      float64
	positions map[string]*Position
	lastClose map[string]float64

	trades  []Trade
	equity  []EquityPoint
	skipped []SkippedEntry
}

func NewEngine(cfg Config, rm *risk.Manager) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("backtest config: %w", err)
	}
	if err := rm.Config().Validate(); err != nil {
		return nil, fmt.Errorf("risk config: %w", err)
	}
	return &Engine{
		cfg:       cfg,
		rm:        rm,
		cash:      cfg.InitialCapital,
		positions: make(map[string]*Position),
		lastClose: make(map[string]float64),
	}, nil
}

// Run executes the simulation over bars, which must already be merged
// into one non-decreasing global timeline (see market.Merge). For each
// bar: exit checks first (stop/take, then signal exit), then entries,
// then a mark-to-market equity snapshot. Any position still open at an
// instrument's final bar is force-closed at that bar's close, so the
// trade log never contains an unrealized position.
//
// The equity curve always opens with an initial-capital seed stamped at
// the first bar's time, followed by one snapshot per processed bar; a
// one-bar run therefore yields two points sharing a timestamp, the seed
// and the post-bar mark.
func (e *Engine) Run(bars []market.Bar, src SignalSource) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("backtest: signal source is required")
	}

	lastIdx, err := e.indexFinalBars(bars)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	// Seed snapshot: the curve always starts at initial capital.
	seedTime := time.Time{}
	if len(bars) > 0 {
		seedTime = bars[0].Time
		res.Start = bars[0].Time
		res.End = bars[len(bars)-1].Time
	}
	e.equity = append(e.equity, EquityPoint{Time: seedTime, Equity: e.cfg.InitialCapital})
	e.rm.Observe(e.cfg.InitialCapital)

	seen := make(map[string]time.Time)
	var prevGlobal time.Time

	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if last, ok := seen[b.Instrument]; ok {
			if b.Time.Equal(last) {
				return nil, fmt.Errorf("duplicate timestamp %s for %s",
					b.Time.Format(time.RFC3339), b.Instrument)
			}
			if b.Time.Before(last) {
				return nil, fmt.Errorf("out-of-order bar %s @ %s (previous %s)",
					b.Instrument, b.Time.Format(time.RFC3339), last.Format(time.RFC3339))
			}
		}
		if b.Time.Before(prevGlobal) {
			return nil, fmt.Errorf("global timeline regression at %s @ %s",
				b.Instrument, b.Time.Format(time.RFC3339))
		}
		seen[b.Instrument] = b.Time
		prevGlobal = b.Time
		e.lastClose[b.Instrument] = b.Close

		sig := src.OnBar(b)

		// 1) Exits for an open position: stop/take on intrabar touch
		// first, then a signal exit at the close.
		if pos, ok := e.positions[b.Instrument]; ok {
			if px, reason, hit := e.rm.CheckExit(pos.StopLoss, pos.TakeProfit, b); hit {
				e.closePosition(pos, b.Time, px, reason)
			} else if sig.Direction == market.Exit {
				e.closePosition(pos, b.Time, b.Close, risk.ExitSignal)
			}
		} else if sig.Direction == market.Enter {
			// 2) Entry. An entry on the instrument's last bar would be
			// force-closed at the same price and only pay fees; skip it.
			if i == lastIdx[b.Instrument] {
				e.skip(b, SkipFinalBar)
			} else {
				e.tryOpen(b)
			}
		}

		// Force-close at the instrument's final bar.
		if i == lastIdx[b.Instrument] {
			if pos, ok := e.positions[b.Instrument]; ok {
				e.closePosition(pos, b.Time, b.Close, risk.ExitEndOfPeriod)
			}
		}

		// 3) Mark-to-market snapshot, one per processed bar.
		eq := e.markEquity()
		e.equity = append(e.equity, EquityPoint{Time: b.Time, Equity: eq})
		e.rm.Observe(eq)
	}

	res.Trades = e.trades
	res.Equity = e.equity
	res.Skipped = e.skipped
	res.Account = Account{
		Cash:      e.cash,
		Equity:    e.markEquity(),
		Positions: e.positions,
	}
	return res, nil
}

// indexFinalBars records the index of each instrument's last bar so the
// loop knows when to force-close.
func (e *Engine) indexFinalBars(bars []market.Bar) (map[string]int, error) {
	last := make(map[string]int)
	for i, b := range bars {
		if b.Instrument == "" {
			return nil, fmt.Errorf("bar %d: empty instrument", i)
		}
		last[b.Instrument] = i
	}
	return last, nil
}

func (e *Engine) tryOpen(b market.Bar) {
	if !e.rm.CanEnter(len(e.positions)) {
		reason := SkipMaxPositions
		if e.rm.Halted() {
			reason = SkipDrawdownGuard
		}
		e.skip(b, reason)
		return
	}

	price := b.Close
	qty := e.rm.Size(e.markEquity(), price)

	// Cash is the binding constraint: sizing uses equity, but capital
	// tied up in other positions cannot be spent again.
	affordable := e.cash / (price * (1 + e.cfg.FeeRate))
	if !e.rm.Config().FractionalUnits {
		affordable = math.Floor(affordable)
	}
	if affordable < qty {
		qty = affordable
	}
	if qty <= 0 {
		e.skip(b, SkipInsufficientCapital)
		return
	}

	stop, take := e.rm.ExitLevels(price)
	notional := qty * price
	fee := notional * e.cfg.FeeRate
	e.cash -= notional + fee

	e.positions[b.Instrument] = &Position{
		Instrument: b.Instrument,
		EntryTime:  b.Time,
		EntryPrice: price,
		Quantity:   qty,
		StopLoss:   stop,
		TakeProfit: take,
		entryFee:   fee,
	}
}

func (e *Engine) closePosition(pos *Position, t time.Time, price float64, reason risk.ExitReason) {
	notional := pos.Quantity * price
	exitFee := notional * e.cfg.FeeRate
	e.cash += notional - exitFee

	fees := pos.entryFee + exitFee
	e.trades = append(e.trades, Trade{
		Instrument: pos.Instrument,
		EntryTime:  pos.EntryTime,
		EntryPrice: pos.EntryPrice,
		ExitTime:   t,
		ExitPrice:  price,
		Quantity:   pos.Quantity,
		PnL:        (price-pos.EntryPrice)*pos.Quantity - fees,
		Fees:       fees,
		Reason:     reason,
	})
	delete(e.positions, pos.Instrument)
}

func (e *Engine) markEquity() float64 {
	eq := e.cash
	for inst, pos := range e.positions {
		eq += pos.Quantity * e.lastClose[inst]
	}
	return eq
}

func (e *Engine) skip(b market.Bar, reason SkipReason) {
	e.skipped = append(e.skipped, SkippedEntry{
		Instrument: b.Instrument,
		Time:       b.Time,
		Reason:     reason,
	})
}
