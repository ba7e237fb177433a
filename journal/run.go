package journal

import (
	"strings"
	"time"

	"github.com/quantkit/backtester/backtest"
	"github.com/quantkit/backtester/performance"
	"github.com/quantkit/backtester/pkg/id"
)

// Run is one persisted backtest run: metadata plus the headline
// statistics, so past runs can be compared without recomputing.
type Run struct {
	RunID       string
	Created     time.Time
	Strategy    string
	Instruments []string
	Start       time.Time
	End         time.Time

	InitialCapital float64
	FinalEquity    float64

	Trades      int
	Wins        int
	Losses      int
	WinRate     float64
	ProfitFac   float64
	Sharpe      float64
	Sortino     float64
	MaxDrawdown float64
	ReturnPct   float64
}

// NewRun assembles a Run record from a completed result and its report.
func NewRun(strategy string, instruments []string, res *backtest.Result, rep performance.Report) Run {
	return Run{
		RunID:          id.New(),
		Created:        time.Now().UTC(),
		Strategy:       strategy,
		Instruments:    instruments,
		Start:          res.Start,
		End:            res.End,
		InitialCapital: rep.InitialCapital,
		FinalEquity:    rep.FinalEquity,
		Trades:         rep.TotalTrades,
		Wins:           rep.WinningTrades,
		Losses:         rep.LosingTrades,
		WinRate:        rep.WinRate,
		ProfitFac:      rep.ProfitFactor,
		Sharpe:         rep.SharpeRatio,
		Sortino:        rep.SortinoRatio,
		MaxDrawdown:    rep.MaxDrawdown,
		ReturnPct:      rep.TotalReturnPct,
	}
}

func joinInstruments(names []string) string { return strings.Join(names, ",") }

func splitInstruments(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
