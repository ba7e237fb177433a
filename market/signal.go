package market

import "time"

// Direction is the per-bar decision a strategy emits for an instrument.
type Direction int8

const (
	Hold  Direction = 0
	Enter Direction = +1
	Exit  Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return "hold"
	}
}

// Signal is one directional decision, aligned to a bar by instrument and
// timestamp. Strength is optional (0 when the strategy has no notion of
// confidence) and is informational only.
type Signal struct {
	Instrument string
	Time       time.Time
	Direction  Direction
	Strength   float64
}
