package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"MacroPulse/pkg/util"
)

var (
	// ErrRetrieval marks a per-series upstream failure. Batch callers recover
	// from it locally and drop the series from the result.
	ErrRetrieval = errors.New("series retrieval failed")

	// ErrMissingCredential means no FRED API key is configured. Surfaced once
	// at the view boundary, never inside analytic functions.
	ErrMissingCredential = errors.New("missing API credential")
)

// Undefined is the sentinel reported by derived metrics on series too short
// to support them.
func Undefined() float64 { return math.NaN() }

// Float marshals NaN as JSON null so undefined metrics render as placeholders.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// IsDefined reports whether the value carries a real number.
func (f Float) IsDefined() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Observation is a single dated value. Missing upstream values are dropped at
// parse time, so every stored observation carries a real number.
type Observation struct {
	Date  time.Time
	Value float64
}

type obsJSON struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func (o Observation) MarshalJSON() ([]byte, error) {
	return json.Marshal(obsJSON{Date: util.FormatDate(o.Date), Value: o.Value})
}

func (o *Observation) UnmarshalJSON(b []byte) error {
	var j obsJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	t, ok := util.ParseDate(j.Date)
	if !ok {
		return fmt.Errorf("bad observation date %q", j.Date)
	}
	o.Date = t
	o.Value = j.Value
	return nil
}

// TimeSeries is an ordered date->value sequence, strictly increasing by date,
// no duplicates. Immutable once returned by the fetcher.
type TimeSeries []Observation

// NewTimeSeries sorts and dedupes observations (last write wins per date).
func NewTimeSeries(obs []Observation) TimeSeries {
	if len(obs) == 0 {
		return nil
	}
	s := make([]Observation, len(obs))
	copy(s, obs)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	out := s[:1]
	for _, o := range s[1:] {
		if o.Date.Equal(out[len(out)-1].Date) {
			out[len(out)-1] = o
			continue
		}
		out = append(out, o)
	}
	return out
}

func (s TimeSeries) Len() int      { return len(s) }
func (s TimeSeries) IsEmpty() bool { return len(s) == 0 }

// Last returns the most recent observation.
func (s TimeSeries) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// IndexAtOrBefore returns the index of the latest observation dated at or
// before t, or -1 when t precedes the whole series. Binary search over the
// sorted date index.
func (s TimeSeries) IndexAtOrBefore(t time.Time) int {
	i := sort.Search(len(s), func(i int) bool { return s[i].Date.After(t) })
	return i - 1
}

// At returns the value observed exactly on t.
func (s TimeSeries) At(t time.Time) (float64, bool) {
	i := s.IndexAtOrBefore(t)
	if i < 0 || !s[i].Date.Equal(t) {
		return 0, false
	}
	return s[i].Value, true
}

// ValueAtOrBefore is the step-function lookup used for forward-filling onto
// a unioned date index: last known value at or before t.
func (s TimeSeries) ValueAtOrBefore(t time.Time) (float64, bool) {
	i := s.IndexAtOrBefore(t)
	if i < 0 {
		return 0, false
	}
	return s[i].Value, true
}

// DropLast returns the series without its k most recent observations.
func (s TimeSeries) DropLast(k int) TimeSeries {
	if k <= 0 {
		return s
	}
	if k >= len(s) {
		return nil
	}
	return s[:len(s)-k]
}

// Table is a batch-fetch result keyed by series identifier. Failed series are
// simply absent.
type Table map[string]TimeSeries

// Get returns the series for id, which may be empty when retrieval failed.
func (t Table) Get(id string) TimeSeries { return t[id] }

// UnionDates returns the sorted union of all series' date indexes.
func (t Table) UnionDates(ids ...string) []time.Time {
	set := make(map[time.Time]struct{})
	for _, id := range ids {
		for _, o := range t[id] {
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
