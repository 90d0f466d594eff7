package analytics

import (
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/pkg/util"
)

// CurveSnapshot selects the yield-curve row whose date is the closest
// available at-or-before the requested date. Weekends and holidays fall back
// to the most recent prior trading day. Returns nil when no row exists at or
// before the date.
func CurveSnapshot(table models.Table, at time.Time) *models.CurveSnapshot {
	dates := table.UnionDates(models.CurveSeriesIDs()...)
	if len(dates) == 0 {
		return nil
	}

	idx := searchAtOrBefore(dates, at)
	if idx < 0 {
		return nil
	}
	return snapshotRow(table, dates[idx])
}

// CurveSnapshotOffset selects the row `offset` observations before the most
// recent one (0 = latest). Used for the 1W/1M/1Y-ago overlays. Falls back to
// the latest row when history is too short.
func CurveSnapshotOffset(table models.Table, offset int) *models.CurveSnapshot {
	dates := table.UnionDates(models.CurveSeriesIDs()...)
	if len(dates) == 0 {
		return nil
	}
	idx := len(dates) - 1 - offset
	if idx < 0 {
		idx = len(dates) - 1
	}
	return snapshotRow(table, dates[idx])
}

func snapshotRow(table models.Table, date time.Time) *models.CurveSnapshot {
	snap := &models.CurveSnapshot{
		Date:    date,
		DateStr: util.FormatDate(date),
		Points:  make([]models.CurvePoint, 0, len(models.CurveMaturities)),
	}

	shortest := models.Undefined()
	longest := models.Undefined()

	for _, m := range models.CurveMaturities {
		v, ok := table.Get(m.ID).At(date)
		p := models.CurvePoint{SeriesID: m.ID, Maturity: m.Label, Years: m.Years}
		if ok {
			p.Yield = models.Float(v)
			if !models.Float(shortest).IsDefined() {
				shortest = v
			}
			longest = v
		} else {
			p.Yield = models.Float(models.Undefined())
		}
		snap.Points = append(snap.Points, p)
	}

	// Inverted when the shortest available maturity out-yields the longest.
	snap.Inverted = models.Float(shortest).IsDefined() &&
		models.Float(longest).IsDefined() && shortest > longest
	return snap
}

// InversionStats summarizes a spread series' inversion state: the current
// reading, total observations below zero, and the current consecutive streak.
func InversionStats(id string, s models.TimeSeries) models.InversionStats {
	st := models.InversionStats{
		SeriesID: id,
		Label:    models.Label(id),
		Current:  models.Float(Latest(s)),
	}
	if s.IsEmpty() {
		return st
	}

	st.Inverted = s[s.Len()-1].Value < 0
	for _, o := range s {
		if o.Value < 0 {
			st.DaysInverted++
		}
	}
	for i := s.Len() - 1; i >= 0 && s[i].Value < 0; i-- {
		st.Streak++
	}
	return st
}

// InversionPeriods returns the historical contiguous intervals where the
// spread was below zero, newest first, with duration and the deepest reading.
func InversionPeriods(s models.TimeSeries) []models.InversionPeriod {
	var periods []models.InversionPeriod
	var start time.Time
	minSpread := 0.0
	open := false

	closePeriod := func(end time.Time) {
		periods = append(periods, models.InversionPeriod{
			Start:     start,
			End:       end,
			StartStr:  util.FormatDate(start),
			EndStr:    util.FormatDate(end),
			Days:      int(end.Sub(start).Hours() / 24),
			MinSpread: round2(minSpread),
		})
	}

	for _, o := range s {
		switch {
		case o.Value < 0 && !open:
			open = true
			start = o.Date
			minSpread = o.Value
		case o.Value < 0 && open:
			if o.Value < minSpread {
				minSpread = o.Value
			}
		case o.Value >= 0 && open:
			open = false
			closePeriod(o.Date)
		}
	}
	if open {
		closePeriod(s[s.Len()-1].Date)
	}

	// newest first
	for i, j := 0, len(periods)-1; i < j; i, j = i+1, j-1 {
		periods[i], periods[j] = periods[j], periods[i]
	}
	return periods
}

func searchAtOrBefore(dates []time.Time, at time.Time) int {
	lo, hi := 0, len(dates)
	for lo < hi {
		mid := (lo + hi) / 2
		if dates[mid].After(at) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo - 1
}
