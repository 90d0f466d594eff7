package analytics

import (
	"math"
	"testing"
	"time"

	"MacroPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthly(start time.Time, values ...float64) models.TimeSeries {
	obs := make([]models.Observation, len(values))
	for i, v := range values {
		obs[i] = models.Observation{Date: start.AddDate(0, i, 0), Value: v}
	}
	return models.NewTimeSeries(obs)
}

var t0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLatestAndPrior(t *testing.T) {
	s := monthly(t0, 1.111, 2.222, 3.333)

	assert.Equal(t, 3.33, Latest(s))
	assert.Equal(t, 2.22, Prior(s, 1))
	assert.Equal(t, 1.11, Prior(s, 2))

	assert.True(t, math.IsNaN(Prior(s, 3)), "offset beyond history is undefined")
	assert.True(t, math.IsNaN(Latest(nil)), "empty series is undefined")
}

func TestYoYChangeRequires13Observations(t *testing.T) {
	short := monthly(t0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	assert.True(t, math.IsNaN(YoYChange(short)))

	s := monthly(t0, 100, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 110)
	assert.Equal(t, 10.0, YoYChange(s))
}

func TestYoYChangeScaleInvariant(t *testing.T) {
	vals := []float64{100, 101, 103, 102, 104, 105, 107, 106, 108, 110, 111, 112, 113}
	s := monthly(t0, vals...)

	rebased := make([]float64, len(vals))
	for i, v := range vals {
		rebased[i] = v * 2
	}
	s2 := monthly(t0, rebased...)

	require.False(t, math.IsNaN(YoYChange(s)))
	assert.Equal(t, YoYChange(s), YoYChange(s2), "uniform rebasing must not change YoY")
}

func TestMoMChange(t *testing.T) {
	assert.True(t, math.IsNaN(MoMChange(monthly(t0, 5))))
	assert.Equal(t, 25.0, MoMChange(monthly(t0, 4, 5)))
}

func TestDiff(t *testing.T) {
	d := Diff(monthly(t0, 100, 103, 101))
	require.Equal(t, 2, d.Len())
	assert.Equal(t, 3.0, d[0].Value)
	assert.Equal(t, -2.0, d[1].Value)
	assert.Nil(t, Diff(monthly(t0, 1)))
}

func TestPctChange12(t *testing.T) {
	vals := make([]float64, 14)
	for i := range vals {
		vals[i] = 100 + float64(i)
	}
	s := monthly(t0, vals...)

	out := PctChange12(s)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 12.0, out[0].Value) // 112/100
	assert.InDelta(t, 11.88, out[1].Value, 0.001)
	assert.Equal(t, s[12].Date, out[0].Date)
}

func TestGapToAndCountAbove(t *testing.T) {
	s := monthly(t0, 1.5, 2.5, 3.5)
	gap := GapTo(s, 2.0)
	require.Equal(t, 3, gap.Len())
	assert.Equal(t, -0.5, gap[0].Value)
	assert.Equal(t, 1.5, gap[2].Value)

	assert.Equal(t, 2, CountAbove(s, 2.0))
}
