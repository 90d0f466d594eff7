package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/usecase"
	xlogger "MacroPulse/pkg/logger"
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

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)                {}
func (nopMetrics) RecordFetchDuration(string, time.Duration) {}
func (nopMetrics) RecordCacheOp(string)                      {}
func (nopMetrics) RecordRiskScore(float64)                   {}

func newTestHandler(t *testing.T, f *stubFetcher) *ViewsEchoHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	require.NoError(t, err)
	views := usecase.NewViewService(f, nopMetrics{}, l)
	return NewViewsEchoHandler(l, views)
}

func doGET(t *testing.T, h *ViewsEchoHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCatalogEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{})
	rec := doGET(t, h, "/api/catalog")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "10-Year Treasury", body.Data[models.SeriesDGS10])
}

func TestOverviewWithoutCredential(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{hasKey: false})
	rec := doGET(t, h, "/api/overview")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.OverviewView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Data.NeedsKey)
	require.Empty(t, body.Data.KeyMetrics)
}

func TestOverviewBadStartDate(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{hasKey: true})
	rec := doGET(t, h, "/api/overview?start=notadate")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusBadRequest, body.Status)
}

func TestSeriesRequiresIDs(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{hasKey: true})
	rec := doGET(t, h, "/api/series")

	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusBadRequest, body.Status)
}

func TestSeriesReturnsRequested(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &stubFetcher{
		hasKey: true,
		table: models.Table{
			models.SeriesDGS10: models.NewTimeSeries([]models.Observation{
				{Date: start, Value: 1.5},
				{Date: start.AddDate(0, 0, 1), Value: 1.6},
			}),
		},
	}
	h := newTestHandler(t, f)
	rec := doGET(t, h, "/api/series?ids=DGS10,NOPE")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.SeriesView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Series, 1)
	require.Equal(t, models.SeriesDGS10, body.Data.Series[0].ID)
	require.Equal(t, 2, body.Data.Series[0].Points.Len())
}
