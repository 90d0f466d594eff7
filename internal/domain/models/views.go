package models

import (
	"encoding/json"
	"fmt"
	"time"

	"MacroPulse/pkg/util"
)

// Tier labels a metric card badge for presentation.
type Tier string

const (
	TierRisk    Tier = "risk"
	TierCaution Tier = "caution"
	TierSafe    Tier = "safe"
)

// RiskLevel classifies the composite recession score.
type RiskLevel string

const (
	RiskHigh     RiskLevel = "high"
	RiskElevated RiskLevel = "elevated"
	RiskLow      RiskLevel = "low"
)

// Metric is a scalar headline card: label, current value, delta vs a
// reference offset, and a classification tier.
type Metric struct {
	SeriesID   string `json:"series_id"`
	Label      string `json:"label"`
	Value      Float  `json:"value"`
	Delta      Float  `json:"delta"`
	DeltaLabel string `json:"delta_label,omitempty"`
	Unit       string `json:"unit,omitempty"`
	Tier       Tier   `json:"tier"`
	Badge      string `json:"badge,omitempty"`
}

// ChartSeries is a named time series suitable for line/area/bar rendering.
type ChartSeries struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Points TimeSeries `json:"points"`
}

// Band is a contiguous recession interval used for chart shading.
// End strictly follows Start.
type Band struct {
	Start time.Time
	End   time.Time
}

type bandJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (b Band) MarshalJSON() ([]byte, error) {
	return json.Marshal(bandJSON{Start: util.FormatDate(b.Start), End: util.FormatDate(b.End)})
}

func (b *Band) UnmarshalJSON(data []byte) error {
	var j bandJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	s, ok := util.ParseDate(j.Start)
	if !ok {
		return fmt.Errorf("bad band start %q", j.Start)
	}
	e, ok := util.ParseDate(j.End)
	if !ok {
		return fmt.Errorf("bad band end %q", j.End)
	}
	b.Start, b.End = s, e
	return nil
}

// CurvePoint is one maturity on a yield-curve snapshot. Yield is undefined
// when the maturity had no observation at the snapshot row.
type CurvePoint struct {
	SeriesID string  `json:"series_id"`
	Maturity string  `json:"maturity"`
	Years    float64 `json:"years"`
	Yield    Float   `json:"yield"`
}

// CurveSnapshot is the curve at the closest available date at-or-before the
// requested one. Inverted compares shortest vs longest available maturity.
type CurveSnapshot struct {
	Date     time.Time    `json:"-"`
	DateStr  string       `json:"date"`
	Points   []CurvePoint `json:"points"`
	Inverted bool         `json:"inverted"`
}

// InversionStats summarizes one spread's inversion history.
type InversionStats struct {
	SeriesID     string `json:"series_id"`
	Label        string `json:"label"`
	Current      Float  `json:"current"`
	Inverted     bool   `json:"inverted"`
	DaysInverted int    `json:"days_inverted"`
	Streak       int    `json:"streak"`
}

// InversionPeriod is one historical contiguous inversion interval.
type InversionPeriod struct {
	Start     time.Time `json:"-"`
	End       time.Time `json:"-"`
	StartStr  string    `json:"start"`
	EndStr    string    `json:"end"`
	Days      int       `json:"days"`
	MinSpread float64   `json:"min_spread"`
}

// SignalCard is one row of the recession view's individual signals.
type SignalCard struct {
	Label     string  `json:"label"`
	Value     Float   `json:"value"`
	Threshold float64 `json:"threshold"`
	Triggered bool    `json:"triggered"`
	Desc      string  `json:"desc,omitempty"`
}

// TargetTracker reports distance from the Fed's 2% inflation target.
type TargetTracker struct {
	Gap         ChartSeries `json:"gap"`
	MonthsAbove int         `json:"months_above"`
	CurrentGap  Float       `json:"current_gap"`
}

// OverviewView is the render bundle for the overview page.
type OverviewView struct {
	NeedsKey    bool          `json:"needs_key,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	KeyMetrics  []Metric      `json:"key_metrics"`
	RateMetrics []Metric      `json:"rate_metrics"`
	Charts      []ChartSeries `json:"charts"`
	Bands       []Band        `json:"bands"`
}

// YieldCurveView is the render bundle for the yield-curve page.
type YieldCurveView struct {
	NeedsKey  bool              `json:"needs_key,omitempty"`
	Today     *CurveSnapshot    `json:"today,omitempty"`
	WeekAgo   *CurveSnapshot    `json:"week_ago,omitempty"`
	MonthAgo  *CurveSnapshot    `json:"month_ago,omitempty"`
	YearAgo   *CurveSnapshot    `json:"year_ago,omitempty"`
	Requested *CurveSnapshot    `json:"requested,omitempty"`
	Spreads   []ChartSeries     `json:"spreads"`
	Stats     []InversionStats  `json:"stats"`
	Periods   []InversionPeriod `json:"periods"`
	Bands     []Band            `json:"bands"`
}

// InflationView is the render bundle for the inflation page.
type InflationView struct {
	NeedsKey   bool          `json:"needs_key,omitempty"`
	Metrics    []Metric      `json:"metrics"`
	YoY        []ChartSeries `json:"yoy"`
	CoreGap    ChartSeries   `json:"core_gap"`
	RealYields []ChartSeries `json:"real_yields"`
	Target     TargetTracker `json:"target"`
	Bands      []Band        `json:"bands"`
}

// RecessionView is the render bundle for the recession page: composite score
// series plus its three weighted components.
type RecessionView struct {
	NeedsKey      bool          `json:"needs_key,omitempty"`
	Score         Float         `json:"score"`
	Level         RiskLevel     `json:"level"`
	Signals       []SignalCard  `json:"signals"`
	ScoreSeries   ChartSeries   `json:"score_series"`
	Components    []ChartSeries `json:"components"`
	Unemployment  ChartSeries   `json:"unemployment"`
	PayrollsDelta ChartSeries   `json:"payrolls_delta"`
	Bands         []Band        `json:"bands"`
}

// SeriesView is the raw named-series bundle.
type SeriesView struct {
	NeedsKey bool          `json:"needs_key,omitempty"`
	Series   []ChartSeries `json:"series"`
}
