package analytics

import (
	"math"

	"MacroPulse/internal/domain/models"
)

// Derived metrics over a single time series. Gaps are already absent from the
// model, so every function operates on the defined subsequence. Series too
// short for a metric yield the NaN sentinel, never an error.

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Latest returns the most recent value, rounded to 2 decimals.
func Latest(s models.TimeSeries) float64 {
	if s.IsEmpty() {
		return models.Undefined()
	}
	return round2(s[s.Len()-1].Value)
}

// Prior returns the value k observations before the latest.
func Prior(s models.TimeSeries, k int) float64 {
	if k < 0 || s.Len() <= k {
		return models.Undefined()
	}
	return round2(s[s.Len()-1-k].Value)
}

// YoYChange returns the year-over-year percent change of the last value.
// The lag is 13 observations including the current point, which assumes
// monthly sampling; callers must not apply it to higher-frequency series.
func YoYChange(s models.TimeSeries) float64 {
	if s.Len() < 13 {
		return models.Undefined()
	}
	base := s[s.Len()-13].Value
	return round2((s[s.Len()-1].Value/base - 1) * 100)
}

// MoMChange returns the percent change of the last value vs the prior one.
func MoMChange(s models.TimeSeries) float64 {
	if s.Len() < 2 {
		return models.Undefined()
	}
	return round2((s[s.Len()-1].Value/s[s.Len()-2].Value - 1) * 100)
}

// Diff returns the series of consecutive level changes (payrolls MoM bars).
func Diff(s models.TimeSeries) models.TimeSeries {
	if s.Len() < 2 {
		return nil
	}
	out := make([]models.Observation, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		out = append(out, models.Observation{Date: s[i].Date, Value: s[i].Value - s[i-1].Value})
	}
	return out
}

// PctChange12 returns the full series of 12-observation percent changes,
// the YoY line used by the inflation charts.
func PctChange12(s models.TimeSeries) models.TimeSeries {
	if s.Len() <= 12 {
		return nil
	}
	out := make([]models.Observation, 0, s.Len()-12)
	for i := 12; i < s.Len(); i++ {
		v := (s[i].Value/s[i-12].Value - 1) * 100
		out = append(out, models.Observation{Date: s[i].Date, Value: round2(v)})
	}
	return out
}

// GapTo subtracts a constant target from every value.
func GapTo(s models.TimeSeries, target float64) models.TimeSeries {
	if s.IsEmpty() {
		return nil
	}
	out := make([]models.Observation, s.Len())
	for i, o := range s {
		out[i] = models.Observation{Date: o.Date, Value: round2(o.Value - target)}
	}
	return out
}

// CountAbove counts observations strictly above the threshold.
func CountAbove(s models.TimeSeries, threshold float64) int {
	n := 0
	for _, o := range s {
		if o.Value > threshold {
			n++
		}
	}
	return n
}
