package performance

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReport(t *testing.T) {
	r := Report{
		InitialCapital: 100_000,
		FinalEquity:    104_000,
		TotalReturn:    4000,
		TotalReturnPct: 0.04,
		TotalTrades:    5,
		WinningTrades:  3,
		LosingTrades:   2,
		WinRate:        0.6,
		ProfitFactor:   2.5,
		SharpeRatio:    1.25,
		SortinoRatio:   math.Inf(1),
		MaxDrawdown:    -0.08,
	}

	var sb strings.Builder
	WriteReport(&sb, r)
	out := sb.String()

	assert.Contains(t, out, "Initial Capital:   100000.00")
	assert.Contains(t, out, "Win Rate:          60.00%")
	assert.Contains(t, out, "Profit Factor:     2.50")
	assert.Contains(t, out, "Sortino Ratio:     inf")
	assert.Contains(t, out, "Max Drawdown:      -8.00%")
}

func TestRatioRendering(t *testing.T) {
	assert.Equal(t, "1.23", ratio(1.234))
	assert.Equal(t, "inf", ratio(math.Inf(1)))
	assert.Equal(t, "0.00", ratio(0))
}
