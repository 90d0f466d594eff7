package analytics

import (
	"sort"
	"time"

	"MacroPulse/internal/domain/models"
)

// Composite recession risk score (0-100), weighted:
//   - Sahm-rule indicator: 40 points, saturating at a reading of 0.8
//   - 10Y-2Y inversion:    30 points, saturating at -1.5pp
//   - 10Y-3M inversion:    30 points, saturating at -2.0pp
//
// The clamps are calibrated so no single indicator can exceed its allotted
// weight at extreme readings.
const (
	ruleSaturation    = 0.8
	spreadASaturation = 1.5
	spreadBSaturation = 2.0

	ruleWeight   = 40.0
	spreadWeight = 30.0

	highRiskThreshold     = 60.0
	elevatedRiskThreshold = 35.0
)

// RiskComponents carries the composite score series and the three weighted
// contribution series on the unioned date index.
type RiskComponents struct {
	Score   models.TimeSeries
	Rule    models.TimeSeries
	SpreadA models.TimeSeries
	SpreadB models.TimeSeries
}

// RiskScore combines the rule series and two spread series into the
// composite. Each input is forward-filled onto the union of all three date
// indexes; dates before a series' first observation contribute 0.
func RiskScore(rule, spreadA, spreadB models.TimeSeries) RiskComponents {
	dates := unionDates(rule, spreadA, spreadB)
	if len(dates) == 0 {
		return RiskComponents{}
	}

	rc := RiskComponents{
		Score:   make([]models.Observation, 0, len(dates)),
		Rule:    make([]models.Observation, 0, len(dates)),
		SpreadA: make([]models.Observation, 0, len(dates)),
		SpreadB: make([]models.Observation, 0, len(dates)),
	}

	for _, d := range dates {
		ruleC := contribution(rule, d, func(v float64) float64 {
			return clamp(v, 0, ruleSaturation) / ruleSaturation * ruleWeight
		})
		aC := contribution(spreadA, d, func(v float64) float64 {
			return clamp(-v, 0, spreadASaturation) / spreadASaturation * spreadWeight
		})
		bC := contribution(spreadB, d, func(v float64) float64 {
			return clamp(-v, 0, spreadBSaturation) / spreadBSaturation * spreadWeight
		})

		total := round1(clamp(ruleC+aC+bC, 0, 100))

		rc.Score = append(rc.Score, models.Observation{Date: d, Value: total})
		rc.Rule = append(rc.Rule, models.Observation{Date: d, Value: round1(ruleC)})
		rc.SpreadA = append(rc.SpreadA, models.Observation{Date: d, Value: round1(aC)})
		rc.SpreadB = append(rc.SpreadB, models.Observation{Date: d, Value: round1(bC)})
	}

	return rc
}

// Classify maps a score to its risk band. Thresholds are fixed constants.
func Classify(score float64) models.RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return models.RiskHigh
	case score >= elevatedRiskThreshold:
		return models.RiskElevated
	default:
		return models.RiskLow
	}
}

func contribution(s models.TimeSeries, d time.Time, f func(float64) float64) float64 {
	v, ok := s.ValueAtOrBefore(d)
	if !ok {
		return 0
	}
	return f(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func unionDates(series ...models.TimeSeries) []time.Time {
	set := make(map[time.Time]struct{})
	for _, s := range series {
		for _, o := range s {
			set[o.Date] = struct{}{}
		}
	}
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
