package data

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quantkit/backtester/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := GenerateOptions{Days: 5, IntervalMinutes: 15}

	a := NewGenerator(42).Generate("TCS", opts)
	b := NewGenerator(42).Generate("TCS", opts)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)

	c := NewGenerator(43).Generate("TCS", opts)
	assert.NotEqual(t, a, c)
}

func TestGenerateSeriesIsValid(t *testing.T) {
	bars := NewGenerator(7).Generate("RELIANCE", GenerateOptions{Days: 10})
	require.NotEmpty(t, bars)
	assert.NoError(t, market.ValidateSeries(bars))

	for _, b := range bars {
		assert.True(t, b.High >= b.Open && b.High >= b.Close)
		assert.True(t, b.Low <= b.Open && b.Low <= b.Close)
		assert.True(t, b.Volume > 0)
	}
}

func TestGenerateSessionTimes(t *testing.T) {
	// 2024-01-01 is a Monday; 7 calendar days hold 5 trading days.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := NewGenerator(1).Generate("INFY", GenerateOptions{
		Days: 7, IntervalMinutes: 15, Start: start,
	})
	require.NotEmpty(t, bars)

	days := make(map[string]bool)
	for _, b := range bars {
		wd := b.Time.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)

		mins := b.Time.Hour()*60 + b.Time.Minute()
		assert.GreaterOrEqual(t, mins, 9*60+15)
		assert.LessOrEqual(t, mins, 15*60+30)

		days[b.Time.Format("2006-01-02")] = true
	}
	assert.Len(t, days, 5)

	// 09:15 through 15:30 at 15m spacing is 26 bars per day.
	assert.Len(t, bars, 5*26)
}

func TestGenerateUsesBasePrice(t *testing.T) {
	bars := NewGenerator(1).Generate("TCS", GenerateOptions{Days: 2, BasePrice: 100})
	require.NotEmpty(t, bars)
	assert.InDelta(t, 100, bars[0].Close, 15)
}

func TestGenerateAllSharesTimeline(t *testing.T) {
	series := NewGenerator(42).GenerateAll([]string{"TCS", "INFY"}, GenerateOptions{Days: 3})
	require.Len(t, series, 2)
	require.Equal(t, len(series["TCS"]), len(series["INFY"]))

	for i := range series["TCS"] {
		assert.Equal(t, series["TCS"][i].Time, series["INFY"][i].Time)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	bars := NewGenerator(42).Generate("TCS", GenerateOptions{Days: 2})
	require.NotEmpty(t, bars)

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, WriteCSV(path, bars))

	got, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, bars, got)
}

func TestReadBarsSkipsHeader(t *testing.T) {
	in := strings.Join([]string{
		"time,instrument,open,high,low,close,volume",
		"2024-01-01T09:15:00Z,TCS,100,101,99,100.5,5000",
		"2024-01-01T09:30:00Z,TCS,100.5,102,100,101,6000",
	}, "\n")

	bars, err := ReadBars(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "TCS", bars[0].Instrument)
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 6000.0, bars[1].Volume)
}

func TestReadBarsWithoutHeaderOrVolume(t *testing.T) {
	in := "2024-01-01T09:15:00Z,INFY,100,101,99,100.5\n"

	bars, err := ReadBars(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 0.0, bars[0].Volume)
}

func TestReadBarsErrors(t *testing.T) {
	_, err := ReadBars(strings.NewReader("2024-01-01T09:15:00Z,TCS,100\n"))
	require.Error(t, err)

	_, err = ReadBars(strings.NewReader("not-a-time,TCS,100,101,99,100.5\n"))
	require.Error(t, err)

	_, err = ReadBars(strings.NewReader("2024-01-01T09:15:00Z,TCS,100,abc,99,100.5\n"))
	require.Error(t, err)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
