package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

type stubFetcher struct {
	hasKey bool
	table  models.Table
}

func (s *stubFetcher) HasCredential() bool { return s.hasKey }

func (s *stubFetcher) Fetch(_ context.Context, id string, _ time.Time) (models.TimeSeries, error) {
	if ts, ok := s.table[id]; ok {
		return ts, nil
	}
	return nil, models.ErrRetrieval
}

func (s *stubFetcher) FetchBatch(_ context.Context, ids []string, _ time.Time) models.Table {
	out := make(models.Table)
	for _, id := range ids {
		if ts, ok := s.table[id]; ok {
			out[id] = ts
		}
	}
	return out
}

func monthlySeries(values ...float64) models.TimeSeries {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]models.Observation, len(values))
	for i, v := range values {
		obs[i] = models.Observation{Date: t0.AddDate(0, i, 0), Value: v}
	}
	return models.NewTimeSeries(obs)
}

func dailySeries(values ...float64) models.TimeSeries {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]models.Observation, len(values))
	for i, v := range values {
		obs[i] = models.Observation{Date: t0.AddDate(0, 0, i), Value: v}
	}
	return models.NewTimeSeries(obs)
}

func constSeries(n int, v float64) models.TimeSeries {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return monthlySeries(vals...)
}

func newViewService(f *stubFetcher) *ViewService {
	return NewViewService(f, nopMetrics{}, nil)
}

func TestOverviewNeedsKey(t *testing.T) {
	v := newViewService(&stubFetcher{hasKey: false})

	view, err := v.Overview(context.Background(), models.OverviewRequest{Start: "2000-01-01"})
	require.NoError(t, err)
	require.True(t, view.NeedsKey)
	require.Empty(t, view.KeyMetrics)
}

func TestOverviewKeyMetrics(t *testing.T) {
	cpi := make([]float64, 14)
	for i := range cpi {
		cpi[i] = 100 + float64(i)
	}
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesCPI:      monthlySeries(cpi...),
			models.SeriesT10Y2Y:   dailySeries(-0.5),
			models.SeriesSahmRule: monthlySeries(0.1, 0.2, 0.3, 0.7),
		},
	}
	v := newViewService(f)

	view, err := v.Overview(context.Background(), models.OverviewRequest{Start: "2000-01-01"})
	require.NoError(t, err)
	require.False(t, view.NeedsKey)
	require.Len(t, view.KeyMetrics, 4)

	spread := view.KeyMetrics[0]
	require.Equal(t, models.SeriesT10Y2Y, spread.SeriesID)
	require.InDelta(t, -0.5, float64(spread.Value), 1e-9)
	require.Equal(t, models.TierRisk, spread.Tier)
	require.Equal(t, "INVERTED", spread.Badge)

	// YoY lag is 13 observations including the current one: 113 vs s[1]=101
	cpiCard := view.KeyMetrics[1]
	require.InDelta(t, 11.88, float64(cpiCard.Value), 1e-6)
	// prior month's YoY drops the last point: 112 vs s[0]=100 -> 12.00
	require.InDelta(t, -0.12, float64(cpiCard.Delta), 1e-6)
	require.Equal(t, models.TierRisk, cpiCard.Tier)

	sahm := view.KeyMetrics[3]
	require.InDelta(t, 0.7, float64(sahm.Value), 1e-9)
	require.InDelta(t, 0.6, float64(sahm.Delta), 1e-9)
	require.Equal(t, "TRIGGERED", sahm.Badge)

	// core PCE absent from the table: card renders with undefined value
	require.False(t, view.KeyMetrics[2].Value.IsDefined())
}

func TestRecessionSaturatedScore(t *testing.T) {
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesSahmRule: constSeries(3, 0.8),
			models.SeriesT10Y2Y:   constSeries(3, -1.5),
			models.SeriesT10Y3M:   constSeries(3, -2.0),
		},
	}
	v := newViewService(f)

	view, err := v.Recession(context.Background(), models.RecessionRequest{Start: "1990-01-01"})
	require.NoError(t, err)
	require.InDelta(t, 100.0, float64(view.Score), 1e-9)
	require.Equal(t, models.RiskHigh, view.Level)

	require.Len(t, view.Signals, 3)
	for _, sig := range view.Signals {
		require.True(t, sig.Triggered, sig.Label)
	}
	require.Len(t, view.Components, 3)
	require.Equal(t, 3, view.ScoreSeries.Points.Len())
}

func TestRecessionEmptyTable(t *testing.T) {
	v := newViewService(&stubFetcher{hasKey: true, table: models.Table{}})

	view, err := v.Recession(context.Background(), models.RecessionRequest{Start: "1990-01-01"})
	require.NoError(t, err)
	require.InDelta(t, 0.0, float64(view.Score), 1e-9)
	require.Equal(t, models.RiskLow, view.Level)
}

func TestYieldCurveSnapshots(t *testing.T) {
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesDGS2:   dailySeries(4.8, 4.9, 5.0),
			models.SeriesDGS10:  dailySeries(4.2, 4.3, 4.4),
			models.SeriesT10Y2Y: dailySeries(-0.6, -0.6, -0.6),
		},
	}
	v := newViewService(f)

	view, err := v.YieldCurve(context.Background(), models.YieldCurveRequest{Start: "1990-01-01"})
	require.NoError(t, err)
	require.NotNil(t, view.Today)
	require.Equal(t, "2024-01-03", view.Today.DateStr)
	require.True(t, view.Today.Inverted)

	// history shorter than the offsets: overlays fall back to the latest row
	require.Equal(t, view.Today.DateStr, view.YearAgo.DateStr)

	require.Len(t, view.Stats, 2)
	require.True(t, view.Stats[0].Inverted)
	require.Equal(t, 3, view.Stats[0].DaysInverted)
	require.Len(t, view.Periods, 1)
}

func TestYieldCurveRequestedDateFallsBack(t *testing.T) {
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesDGS10: dailySeries(4.2, 4.3, 4.4),
		},
	}
	v := newViewService(f)

	// 2024-01-05 has no observation: snap to the latest prior row, 2024-01-03
	view, err := v.YieldCurve(context.Background(), models.YieldCurveRequest{
		Start: "1990-01-01",
		Date:  "2024-01-05",
	})
	require.NoError(t, err)
	require.NotNil(t, view.Requested)
	require.Equal(t, "2024-01-03", view.Requested.DateStr)
}

func TestInflationTargetTracker(t *testing.T) {
	// 25 monthly observations growing 0.5%/mo: YoY lands near 6.2%
	vals := make([]float64, 25)
	vals[0] = 100
	for i := 1; i < len(vals); i++ {
		vals[i] = vals[i-1] * 1.005
	}
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesCorePCE: monthlySeries(vals...),
		},
	}
	v := newViewService(f)

	view, err := v.Inflation(context.Background(), models.InflationRequest{Start: "1990-01-01"})
	require.NoError(t, err)

	require.True(t, view.Target.CurrentGap.IsDefined())
	require.Greater(t, float64(view.Target.CurrentGap), 0.0)
	// every YoY reading of this series is above target
	require.Equal(t, view.Target.Gap.Points.Len(), view.Target.MonthsAbove)
	require.Len(t, view.YoY, 4)
}

func TestSeriesView(t *testing.T) {
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesDGS10: dailySeries(4.2, 4.3),
		},
	}
	v := newViewService(f)

	view, err := v.Series(context.Background(), models.SeriesRequest{
		IDs:   "DGS10,UNKNOWN",
		Start: "2000-01-01",
	})
	require.NoError(t, err)
	require.Len(t, view.Series, 1)
	require.Equal(t, models.SeriesDGS10, view.Series[0].ID)
	require.Equal(t, "10-Year Treasury", view.Series[0].Label)
}
