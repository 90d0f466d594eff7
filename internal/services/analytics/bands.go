package analytics

import (
	"MacroPulse/internal/domain/models"
)

// RecessionBands converts a binary 0/1 indicator series into contiguous
// (start, end) intervals for chart shading. A 0->1 transition opens a band
// at that date; a 1->0 transition closes it at that date (close observation
// excluded). An interval still open at the final observation is closed at
// the final observation's date. End always strictly follows Start, so a
// band opening at the final observation is zero-width and dropped.
func RecessionBands(s models.TimeSeries) []models.Band {
	if s.IsEmpty() {
		return nil
	}

	var bands []models.Band
	var start = s[0].Date
	inBand := false

	for _, o := range s {
		switch {
		case o.Value == 1 && !inBand:
			inBand = true
			start = o.Date
		case o.Value == 0 && inBand:
			inBand = false
			bands = append(bands, models.Band{Start: start, End: o.Date})
		}
	}
	if inBand && s[s.Len()-1].Date.After(start) {
		bands = append(bands, models.Band{Start: start, End: s[s.Len()-1].Date})
	}
	return bands
}
