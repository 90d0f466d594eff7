package usecase

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/analytics"
	xlogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// Offsets into the observation index used for deltas and curve overlays.
// Monthly series move one observation per month; daily series roughly 21
// trading days per month.
const (
	offsetMonthDaily = 20
	offsetQuarter    = 3
	curveOffsetWeek  = 5
	curveOffsetMonth = 21
	curveOffsetYear  = 251
)

const inflationTarget = 2.0

// ViewService assembles render-ready view bundles from fetched series. It
// holds no per-request state and is safe for concurrent use.
type ViewService struct {
	fetcher drepo.SeriesFetcher
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func NewViewService(fetcher drepo.SeriesFetcher, metrics drepo.Metrics, logger *xlogger.Logger) *ViewService {
	return &ViewService{fetcher: fetcher, metrics: metrics, logger: logger}
}

// Overview builds the landing page: headline cards, rate cards, the main
// charts, and recession shading.
func (v *ViewService) Overview(ctx context.Context, req models.OverviewRequest) (*models.OverviewView, error) {
	if !v.fetcher.HasCredential() {
		return &models.OverviewView{NeedsKey: true, GeneratedAt: time.Now().UTC()}, nil
	}
	start := util.ParseDateDefault(req.Start, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	ids := []string{
		models.SeriesDGS2, models.SeriesDGS10,
		models.SeriesT10Y2Y, models.SeriesT10Y3M,
		models.SeriesCPI, models.SeriesCorePCE,
		models.SeriesBreakeven, models.SeriesRealYield,
		models.SeriesSahmRule, models.SeriesRecession,
	}
	table := v.fetcher.FetchBatch(ctx, ids, start)

	spread := table.Get(models.SeriesT10Y2Y)
	cpi := table.Get(models.SeriesCPI)
	corePCE := table.Get(models.SeriesCorePCE)
	sahm := table.Get(models.SeriesSahmRule)

	spreadNow := analytics.Latest(spread)
	cpiYoY := analytics.YoYChange(cpi)
	corePCEYoY := analytics.YoYChange(corePCE)
	sahmNow := analytics.Latest(sahm)

	view := &models.OverviewView{
		GeneratedAt: time.Now().UTC(),
		KeyMetrics: []models.Metric{
			{
				SeriesID:   models.SeriesT10Y2Y,
				Label:      models.Label(models.SeriesT10Y2Y),
				Value:      models.Float(spreadNow),
				Delta:      models.Float(spreadNow - analytics.Prior(spread, offsetMonthDaily)),
				DeltaLabel: "vs 1M ago",
				Unit:       "pp",
				Tier:       spreadTier(spreadNow),
				Badge:      spreadBadge(spreadNow),
			},
			{
				SeriesID:   models.SeriesCPI,
				Label:      "CPI YoY",
				Value:      models.Float(cpiYoY),
				Delta:      models.Float(cpiYoY - analytics.YoYChange(cpi.DropLast(1))),
				DeltaLabel: "MoM change",
				Unit:       "%",
				Tier:       inflationTier(cpiYoY, 4, 2.5),
				Badge:      inflationBadge(cpiYoY, 4, 2.5),
			},
			{
				SeriesID:   models.SeriesCorePCE,
				Label:      "Core PCE YoY",
				Value:      models.Float(corePCEYoY),
				Delta:      models.Float(corePCEYoY - analytics.YoYChange(corePCE.DropLast(1))),
				DeltaLabel: "MoM change",
				Unit:       "%",
				Tier:       inflationTier(corePCEYoY, 3, 2),
				Badge:      inflationBadge(corePCEYoY, 3, 2),
			},
			{
				SeriesID:   models.SeriesSahmRule,
				Label:      models.Label(models.SeriesSahmRule),
				Value:      models.Float(sahmNow),
				Delta:      models.Float(sahmNow - analytics.Prior(sahm, offsetQuarter)),
				DeltaLabel: "vs 3M ago",
				Unit:       "pp",
				Tier:       sahmTier(sahmNow),
				Badge:      sahmBadge(sahmNow),
			},
		},
		RateMetrics: rateCards(table,
			models.SeriesDGS10, models.SeriesDGS2,
			models.SeriesRealYield, models.SeriesBreakeven,
		),
		Charts: []models.ChartSeries{
			chart(models.SeriesT10Y2Y, models.Label(models.SeriesT10Y2Y), spread),
			chart(models.SeriesT10Y3M, models.Label(models.SeriesT10Y3M), table.Get(models.SeriesT10Y3M)),
			chart(models.SeriesCPI+"_yoy", "CPI YoY", analytics.PctChange12(cpi)),
			chart(models.SeriesCorePCE+"_yoy", "Core PCE YoY", analytics.PctChange12(corePCE)),
			chart(models.SeriesRealYield, models.Label(models.SeriesRealYield), table.Get(models.SeriesRealYield)),
			chart(models.SeriesBreakeven, models.Label(models.SeriesBreakeven), table.Get(models.SeriesBreakeven)),
			chart(models.SeriesSahmRule, models.Label(models.SeriesSahmRule), sahm),
		},
		Bands: analytics.RecessionBands(table.Get(models.SeriesRecession)),
	}
	return view, nil
}

// YieldCurve builds the curve page: today's snapshot with 1W/1M/1Y-ago
// overlays, the optional requested-date snapshot, spread histories, and the
// 10Y-2Y inversion record.
func (v *ViewService) YieldCurve(ctx context.Context, req models.YieldCurveRequest) (*models.YieldCurveView, error) {
	if !v.fetcher.HasCredential() {
		return &models.YieldCurveView{NeedsKey: true}, nil
	}
	start := util.ParseDateDefault(req.Start, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	ids := append(models.CurveSeriesIDs(),
		models.SeriesT10Y2Y, models.SeriesT10Y3M, models.SeriesRecession)
	table := v.fetcher.FetchBatch(ctx, ids, start)

	spread2 := table.Get(models.SeriesT10Y2Y)
	spread3 := table.Get(models.SeriesT10Y3M)

	view := &models.YieldCurveView{
		Today:    analytics.CurveSnapshotOffset(table, 0),
		WeekAgo:  analytics.CurveSnapshotOffset(table, curveOffsetWeek),
		MonthAgo: analytics.CurveSnapshotOffset(table, curveOffsetMonth),
		YearAgo:  analytics.CurveSnapshotOffset(table, curveOffsetYear),
		Spreads: []models.ChartSeries{
			chart(models.SeriesT10Y2Y, models.Label(models.SeriesT10Y2Y), spread2),
			chart(models.SeriesT10Y3M, models.Label(models.SeriesT10Y3M), spread3),
		},
		Stats: []models.InversionStats{
			analytics.InversionStats(models.SeriesT10Y2Y, spread2),
			analytics.InversionStats(models.SeriesT10Y3M, spread3),
		},
		Periods: analytics.InversionPeriods(spread2),
		Bands:   analytics.RecessionBands(table.Get(models.SeriesRecession)),
	}

	if req.Date != "" {
		if at, ok := util.ParseDate(req.Date); ok {
			view.Requested = analytics.CurveSnapshot(table, at)
		}
	}
	return view, nil
}

// Inflation builds the inflation page: YoY cards and lines across the four
// price indexes, the headline-vs-core gap, expectation gauges, and distance
// from the 2% target.
func (v *ViewService) Inflation(ctx context.Context, req models.InflationRequest) (*models.InflationView, error) {
	if !v.fetcher.HasCredential() {
		return &models.InflationView{NeedsKey: true}, nil
	}
	start := util.ParseDateDefault(req.Start, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	ids := []string{
		models.SeriesCPI, models.SeriesCoreCPI,
		models.SeriesPCE, models.SeriesCorePCE,
		models.SeriesMichigan, models.SeriesBreakeven,
		models.SeriesRealYield, models.SeriesRecession,
	}
	table := v.fetcher.FetchBatch(ctx, ids, start)

	cpiYoY := analytics.PctChange12(table.Get(models.SeriesCPI))
	coreCPIYoY := analytics.PctChange12(table.Get(models.SeriesCoreCPI))
	pceYoY := analytics.PctChange12(table.Get(models.SeriesPCE))
	corePCEYoY := analytics.PctChange12(table.Get(models.SeriesCorePCE))

	gap := analytics.GapTo(corePCEYoY, inflationTarget)

	view := &models.InflationView{
		Metrics: []models.Metric{
			inflationCard(models.SeriesCPI, "CPI YoY", table.Get(models.SeriesCPI)),
			inflationCard(models.SeriesCoreCPI, "Core CPI YoY", table.Get(models.SeriesCoreCPI)),
			inflationCard(models.SeriesCorePCE, "Core PCE YoY", table.Get(models.SeriesCorePCE)),
			rateCard(models.SeriesBreakeven, table.Get(models.SeriesBreakeven)),
		},
		YoY: []models.ChartSeries{
			chart(models.SeriesCPI+"_yoy", "CPI YoY", cpiYoY),
			chart(models.SeriesCoreCPI+"_yoy", "Core CPI YoY", coreCPIYoY),
			chart(models.SeriesPCE+"_yoy", "PCE YoY", pceYoY),
			chart(models.SeriesCorePCE+"_yoy", "Core PCE YoY", corePCEYoY),
		},
		CoreGap:    chart("core_gap", "Headline vs Core CPI Gap", coreGap(cpiYoY, coreCPIYoY)),
		RealYields: []models.ChartSeries{
			chart(models.SeriesRealYield, models.Label(models.SeriesRealYield), table.Get(models.SeriesRealYield)),
			chart(models.SeriesBreakeven, models.Label(models.SeriesBreakeven), table.Get(models.SeriesBreakeven)),
			chart(models.SeriesMichigan, models.Label(models.SeriesMichigan), table.Get(models.SeriesMichigan)),
		},
		Target: models.TargetTracker{
			Gap:         chart("target_gap", "Core PCE Gap to 2%", gap),
			MonthsAbove: analytics.CountAbove(gap, 0),
			CurrentGap:  models.Float(analytics.Latest(gap)),
		},
		Bands: analytics.RecessionBands(table.Get(models.SeriesRecession)),
	}
	return view, nil
}

// Recession builds the recession page: the composite risk score with its
// three weighted components, the individual trigger signals, and the labor
// market charts.
func (v *ViewService) Recession(ctx context.Context, req models.RecessionRequest) (*models.RecessionView, error) {
	if !v.fetcher.HasCredential() {
		return &models.RecessionView{NeedsKey: true}, nil
	}
	start := util.ParseDateDefault(req.Start, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	ids := []string{
		models.SeriesSahmRule, models.SeriesT10Y2Y, models.SeriesT10Y3M,
		models.SeriesUnemployment, models.SeriesPayrolls, models.SeriesRecession,
	}
	table := v.fetcher.FetchBatch(ctx, ids, start)

	sahm := table.Get(models.SeriesSahmRule)
	spread2 := table.Get(models.SeriesT10Y2Y)
	spread3 := table.Get(models.SeriesT10Y3M)

	rc := analytics.RiskScore(sahm, spread2, spread3)

	score := 0.0
	if last, ok := rc.Score.Last(); ok {
		score = last.Value
	}
	v.metrics.RecordRiskScore(score)

	sahmNow := analytics.Latest(sahm)
	s2Now := analytics.Latest(spread2)
	s3Now := analytics.Latest(spread3)

	view := &models.RecessionView{
		Score: models.Float(score),
		Level: analytics.Classify(score),
		Signals: []models.SignalCard{
			{
				Label:     models.Label(models.SeriesSahmRule),
				Value:     models.Float(sahmNow),
				Threshold: 0.5,
				Triggered: sahmNow >= 0.5,
				Desc:      "Unemployment momentum at recession-onset levels",
			},
			{
				Label:     models.Label(models.SeriesT10Y2Y),
				Value:     models.Float(s2Now),
				Threshold: 0,
				Triggered: s2Now < 0,
				Desc:      "Curve inverted at the 2-year point",
			},
			{
				Label:     models.Label(models.SeriesT10Y3M),
				Value:     models.Float(s3Now),
				Threshold: 0,
				Triggered: s3Now < 0,
				Desc:      "Curve inverted at the 3-month point",
			},
		},
		ScoreSeries: chart("risk_score", "Composite Recession Risk", rc.Score),
		Components: []models.ChartSeries{
			chart("component_sahm", "Sahm Rule (40)", rc.Rule),
			chart("component_t10y2y", "10Y-2Y Inversion (30)", rc.SpreadA),
			chart("component_t10y3m", "10Y-3M Inversion (30)", rc.SpreadB),
		},
		Unemployment:  chart(models.SeriesUnemployment, models.Label(models.SeriesUnemployment), table.Get(models.SeriesUnemployment)),
		PayrollsDelta: chart(models.SeriesPayrolls+"_delta", "Payrolls MoM Change", analytics.Diff(table.Get(models.SeriesPayrolls))),
		Bands:         analytics.RecessionBands(table.Get(models.SeriesRecession)),
	}
	return view, nil
}

// Series returns the raw observation series for the requested identifiers.
// Unknown or failed identifiers are simply absent from the result.
func (v *ViewService) Series(ctx context.Context, req models.SeriesRequest) (*models.SeriesView, error) {
	if !v.fetcher.HasCredential() {
		return &models.SeriesView{NeedsKey: true}, nil
	}
	start := util.ParseDateDefault(req.Start, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	ids := util.SplitCSV(req.IDs)
	table := v.fetcher.FetchBatch(ctx, ids, start)

	view := &models.SeriesView{Series: make([]models.ChartSeries, 0, len(ids))}
	for _, id := range ids {
		s, ok := table[id]
		if !ok {
			continue
		}
		view.Series = append(view.Series, chart(id, models.Label(id), s))
	}
	return view, nil
}

func chart(id, label string, s models.TimeSeries) models.ChartSeries {
	return models.ChartSeries{ID: id, Label: label, Points: s}
}

func rateCards(table models.Table, ids ...string) []models.Metric {
	out := make([]models.Metric, 0, len(ids))
	for _, id := range ids {
		out = append(out, rateCard(id, table.Get(id)))
	}
	return out
}

func rateCard(id string, s models.TimeSeries) models.Metric {
	now := analytics.Latest(s)
	return models.Metric{
		SeriesID:   id,
		Label:      models.Label(id),
		Value:      models.Float(now),
		Delta:      models.Float(now - analytics.Prior(s, offsetMonthDaily)),
		DeltaLabel: "vs 1M ago",
		Unit:       "%",
		Tier:       models.TierSafe,
	}
}

func inflationCard(id, label string, s models.TimeSeries) models.Metric {
	yoy := analytics.YoYChange(s)
	diff := yoy - inflationTarget
	tier := models.TierSafe
	badge := "NEAR TARGET"
	switch {
	case diff > 2:
		tier, badge = models.TierRisk, "ABOVE TARGET"
	case diff > 0.5:
		tier, badge = models.TierCaution, "ELEVATED"
	}
	return models.Metric{
		SeriesID:   id,
		Label:      label,
		Value:      models.Float(yoy),
		Delta:      models.Float(yoy - analytics.YoYChange(s.DropLast(1))),
		DeltaLabel: "MoM change",
		Unit:       "%",
		Tier:       tier,
		Badge:      badge,
	}
}

// coreGap subtracts core from headline on their common dates.
func coreGap(headline, core models.TimeSeries) models.TimeSeries {
	var out []models.Observation
	for _, o := range headline {
		if c, ok := core.At(o.Date); ok {
			out = append(out, models.Observation{Date: o.Date, Value: o.Value - c})
		}
	}
	return out
}

func spreadTier(v float64) models.Tier {
	switch {
	case v < 0:
		return models.TierRisk
	case v < 0.5:
		return models.TierCaution
	default:
		return models.TierSafe
	}
}

func spreadBadge(v float64) string {
	switch {
	case v < 0:
		return "INVERTED"
	case v < 0.5:
		return "FLAT"
	default:
		return "NORMAL"
	}
}

func inflationTier(v, high, elevated float64) models.Tier {
	switch {
	case v > high:
		return models.TierRisk
	case v > elevated:
		return models.TierCaution
	default:
		return models.TierSafe
	}
}

func inflationBadge(v, high, elevated float64) string {
	switch {
	case v > high:
		return "HIGH"
	case v > elevated:
		return "ELEVATED"
	default:
		return "STABLE"
	}
}

func sahmTier(v float64) models.Tier {
	switch {
	case v >= 0.5:
		return models.TierRisk
	case v >= 0.3:
		return models.TierCaution
	default:
		return models.TierSafe
	}
}

func sahmBadge(v float64) string {
	switch {
	case v >= 0.5:
		return "TRIGGERED"
	case v >= 0.3:
		return "RISING"
	default:
		return "CLEAR"
	}
}
