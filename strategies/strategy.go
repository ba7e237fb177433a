// Package strategies turns a stream of bars into directional signals.
// Each strategy is stateful and consumes bars for a single instrument in
// chronological order; wrap with Multi for merged multi-instrument
// timelines.
package strategies

import (
	"fmt"
	"strings"

	"github.com/quantkit/backtester/market"
)

// Strategy emits at most one signal per bar. It satisfies the engine's
// SignalSource contract.
type Strategy interface {
	Name() string
	Reset()
	OnBar(b market.Bar) market.Signal
}

// Params collects the indicator knobs shared across strategies.
type Params struct {
	RSIPeriod     int     `json:"rsi_period" yaml:"rsi_period"`
	RSIOversold   float64 `json:"rsi_oversold" yaml:"rsi_oversold"`
	RSIOverbought float64 `json:"rsi_overbought" yaml:"rsi_overbought"`

	MACDFast   int `json:"macd_fast" yaml:"macd_fast"`
	MACDSlow   int `json:"macd_slow" yaml:"macd_slow"`
	MACDSignal int `json:"macd_signal" yaml:"macd_signal"`

	MAShort int `json:"ma_short" yaml:"ma_short"`
	MALong  int `json:"ma_long" yaml:"ma_long"`

	BBPeriod int     `json:"bb_period" yaml:"bb_period"`
	BBStdDev float64 `json:"bb_stddev" yaml:"bb_stddev"`

	// Combined-strategy voting.
	MinSignalStrength int     `json:"min_signal_strength" yaml:"min_signal_strength"`
	VolumeThreshold   float64 `json:"volume_threshold" yaml:"volume_threshold"`
	VolumePeriod      int     `json:"volume_period" yaml:"volume_period"`
}

func DefaultParams() Params {
	return Params{
		RSIPeriod:         14,
		RSIOversold:       30,
		RSIOverbought:     70,
		MACDFast:          12,
		MACDSlow:          26,
		MACDSignal:        9,
		MAShort:           20,
		MALong:            50,
		BBPeriod:          20,
		BBStdDev:          2,
		MinSignalStrength: 2,
		VolumeThreshold:   1.2,
		VolumePeriod:      20,
	}
}

func (p Params) Validate() error {
	if p.MAShort <= 0 || p.MALong <= 0 || p.MAShort >= p.MALong {
		return fmt.Errorf("ma periods must satisfy 0 < short < long, got %d/%d", p.MAShort, p.MALong)
	}
	if p.RSIPeriod <= 0 {
		return fmt.Errorf("rsi_period must be positive, got %d", p.RSIPeriod)
	}
	if p.MACDFast <= 0 || p.MACDSlow <= 0 || p.MACDSignal <= 0 || p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("macd periods must satisfy 0 < fast < slow and signal > 0, got %d/%d/%d",
			p.MACDFast, p.MACDSlow, p.MACDSignal)
	}
	if p.BBPeriod <= 0 || p.BBStdDev <= 0 {
		return fmt.Errorf("bollinger params must be positive, got %d/%g", p.BBPeriod, p.BBStdDev)
	}
	if p.MinSignalStrength < 1 {
		return fmt.Errorf("min_signal_strength must be >= 1, got %d", p.MinSignalStrength)
	}
	return nil
}

// ByName builds a strategy instance by its registered name.
func ByName(name string, p Params) (Strategy, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ma-crossover", "ma_crossover":
		return NewMACrossover(p), nil
	case "rsi-macd", "rsi_macd":
		return NewRSIMACD(p), nil
	case "bollinger-rsi", "bollinger_rsi":
		return NewBollingerRSI(p), nil
	case "combined":
		return NewCombined(p), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: ma-crossover, rsi-macd, bollinger-rsi, combined)", name)
	}
}
