package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestFloatMarshalsNaNAsNull(t *testing.T) {
	b, err := json.Marshal(Float(math.NaN()))
	require.NoError(t, err)
	require.Equal(t, "null", string(b))

	b, err = json.Marshal(Float(1.25))
	require.NoError(t, err)
	require.Equal(t, "1.25", string(b))

	var f Float
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	require.False(t, f.IsDefined())
}

func TestNewTimeSeriesSortsAndDedupes(t *testing.T) {
	s := NewTimeSeries([]Observation{
		{Date: day(3), Value: 3},
		{Date: day(1), Value: 1},
		{Date: day(3), Value: 30}, // same date, later write wins
		{Date: day(2), Value: 2},
	})

	require.Equal(t, 3, s.Len())
	require.Equal(t, day(1), s[0].Date)
	require.Equal(t, day(2), s[1].Date)
	require.Equal(t, day(3), s[2].Date)
	require.Equal(t, 30.0, s[2].Value)
}

func TestValueAtOrBefore(t *testing.T) {
	s := NewTimeSeries([]Observation{
		{Date: day(1), Value: 1},
		{Date: day(3), Value: 3},
		{Date: day(5), Value: 5},
	})

	v, ok := s.ValueAtOrBefore(day(4))
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	v, ok = s.ValueAtOrBefore(day(5))
	require.True(t, ok)
	require.Equal(t, 5.0, v)

	_, ok = s.ValueAtOrBefore(day(1).AddDate(0, 0, -1))
	require.False(t, ok)
}

func TestAtRequiresExactDate(t *testing.T) {
	s := NewTimeSeries([]Observation{
		{Date: day(1), Value: 1},
		{Date: day(3), Value: 3},
	})

	v, ok := s.At(day(3))
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	_, ok = s.At(day(2))
	require.False(t, ok)
}

func TestDropLast(t *testing.T) {
	s := NewTimeSeries([]Observation{
		{Date: day(1), Value: 1},
		{Date: day(2), Value: 2},
		{Date: day(3), Value: 3},
	})

	require.Equal(t, 2, s.DropLast(1).Len())
	require.Nil(t, s.DropLast(3))
	require.Equal(t, 3, s.DropLast(0).Len())
}

func TestObservationJSONRoundTrip(t *testing.T) {
	o := Observation{Date: day(15), Value: 3.5}
	b, err := json.Marshal(o)
	require.NoError(t, err)
	require.JSONEq(t, `{"date":"2024-01-15","value":3.5}`, string(b))

	var back Observation
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, back.Date.Equal(o.Date))
	require.Equal(t, o.Value, back.Value)
}

func TestBandJSON(t *testing.T) {
	b := Band{Start: day(1), End: day(9)}
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	require.JSONEq(t, `{"start":"2024-01-01","end":"2024-01-09"}`, string(raw))
}

func TestTableUnionDates(t *testing.T) {
	tab := Table{
		"A": NewTimeSeries([]Observation{{Date: day(1), Value: 1}, {Date: day(3), Value: 3}}),
		"B": NewTimeSeries([]Observation{{Date: day(2), Value: 2}, {Date: day(3), Value: 4}}),
	}

	dates := tab.UnionDates("A", "B", "missing")
	require.Equal(t, []time.Time{day(1), day(2), day(3)}, dates)
}
