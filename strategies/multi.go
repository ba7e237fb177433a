package strategies

import "github.com/quantkit/backtester/market"

// Multi dispatches a merged multi-instrument bar stream to one strategy
// instance per instrument, so per-instrument indicator state never
// mixes.
type Multi struct {
	factory func() Strategy
	name    string
	perInst map[string]Strategy
}

// NewMulti wraps a strategy factory. The factory is invoked lazily, once
// per instrument seen.
func NewMulti(name string, factory func() Strategy) *Multi {
	return &Multi{
		factory: factory,
		name:    name,
		perInst: make(map[string]Strategy),
	}
}

func (m *Multi) Name() string { return m.name }

func (m *Multi) Reset() {
	m.perInst = make(map[string]Strategy)
}

func (m *Multi) OnBar(b market.Bar) market.Signal {
	s, ok := m.perInst[b.Instrument]
	if !ok {
		s = m.factory()
		m.perInst[b.Instrument] = s
	}
	return s.OnBar(b)
}
