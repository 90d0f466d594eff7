package analytics

import (
	"testing"
	"time"

	"MacroPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curveTable(dates []time.Time, short, long []float64) models.Table {
	mk := func(vals []float64) models.TimeSeries {
		obs := make([]models.Observation, len(dates))
		for i, d := range dates {
			obs[i] = models.Observation{Date: d, Value: vals[i]}
		}
		return models.NewTimeSeries(obs)
	}
	return models.Table{
		models.SeriesDGS1MO: mk(short),
		models.SeriesDGS30:  mk(long),
	}
}

func TestCurveSnapshotFallsBackToPriorTradingDay(t *testing.T) {
	mon := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	tue := mon.AddDate(0, 0, 1)
	thu := mon.AddDate(0, 0, 3)
	wed := mon.AddDate(0, 0, 2)

	table := curveTable([]time.Time{mon, tue, thu}, []float64{5.0, 5.1, 5.2}, []float64{4.0, 4.1, 4.2})

	snap := CurveSnapshot(table, wed)
	require.NotNil(t, snap)
	assert.Equal(t, tue, snap.Date, "a non-trading day must fall back to the prior available date")
	assert.Equal(t, "2024-06-04", snap.DateStr)
}

func TestCurveSnapshotBeforeHistory(t *testing.T) {
	mon := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	table := curveTable([]time.Time{mon}, []float64{5.0}, []float64{4.0})

	assert.Nil(t, CurveSnapshot(table, mon.AddDate(0, 0, -1)))
	assert.Nil(t, CurveSnapshot(models.Table{}, mon))
}

func TestCurveSnapshotInversion(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	inverted := curveTable([]time.Time{d}, []float64{5.5}, []float64{4.4})
	snap := CurveSnapshot(inverted, d)
	require.NotNil(t, snap)
	assert.True(t, snap.Inverted)

	normal := curveTable([]time.Time{d}, []float64{4.4}, []float64{5.5})
	snap = CurveSnapshot(normal, d)
	require.NotNil(t, snap)
	assert.False(t, snap.Inverted)
}

func TestCurveSnapshotOffsetClamps(t *testing.T) {
	d1 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	table := curveTable([]time.Time{d1, d2}, []float64{5.0, 5.1}, []float64{4.0, 4.1})

	snap := CurveSnapshotOffset(table, 1)
	require.NotNil(t, snap)
	assert.Equal(t, d1, snap.Date)

	// history shorter than the offset falls back to the latest row
	snap = CurveSnapshotOffset(table, 252)
	require.NotNil(t, snap)
	assert.Equal(t, d2, snap.Date)
}

func TestInversionStats(t *testing.T) {
	s := daily(t0, 0.5, -0.1, 0.2, -0.3, -0.4)
	st := InversionStats(models.SeriesT10Y2Y, s)

	assert.True(t, st.Inverted)
	assert.Equal(t, 3, st.DaysInverted)
	assert.Equal(t, 2, st.Streak)
	assert.Equal(t, models.Float(-0.4), st.Current)
	assert.Equal(t, "10Y-2Y Spread", st.Label)
}

func TestInversionPeriods(t *testing.T) {
	s := daily(t0, 0.1, -0.2, -0.5, 0.3, -0.1)
	periods := InversionPeriods(s)

	require.Len(t, periods, 2)
	// newest first
	assert.Equal(t, s[4].Date, periods[0].Start)
	assert.Equal(t, s[4].Date, periods[0].End, "trailing open period closes at final date")

	assert.Equal(t, s[1].Date, periods[1].Start)
	assert.Equal(t, s[3].Date, periods[1].End)
	assert.Equal(t, 2, periods[1].Days)
	assert.Equal(t, -0.5, periods[1].MinSpread)
}

func TestInversionPeriodsNone(t *testing.T) {
	assert.Empty(t, InversionPeriods(daily(t0, 0.1, 0.2)))
	assert.Empty(t, InversionPeriods(nil))
}
