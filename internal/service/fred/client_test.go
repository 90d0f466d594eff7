package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MacroPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationsDropsMissingValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "UNRATE", q.Get("series_id"))
		assert.Equal(t, "json", q.Get("file_type"))
		assert.Equal(t, "2024-01-01", q.Get("observation_start"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"observations":[
			{"date":"2024-01-01","value":"3.7"},
			{"date":"2024-02-01","value":"."},
			{"date":"2024-03-01","value":"3.9"}
		]}`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, 5*time.Second)
	s, err := c.Observations(context.Background(), "UNRATE",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 3.7, s[0].Value)
	assert.Equal(t, 3.9, s[1].Value)
	assert.True(t, s[0].Date.Before(s[1].Date))
}

func TestObservationsSortsAndDedupes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations":[
			{"date":"2024-03-01","value":"2"},
			{"date":"2024-01-01","value":"1"},
			{"date":"2024-03-01","value":"3"}
		]}`))
	}))
	defer srv.Close()

	c := New("k", srv.URL, 5*time.Second)
	s, err := c.Observations(context.Background(), "X", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	require.NoError(t, err)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 1.0, s[0].Value)
	assert.Equal(t, 3.0, s[1].Value)
	for i := 1; i < s.Len(); i++ {
		assert.True(t, s[i-1].Date.Before(s[i].Date), "date index must be strictly increasing")
	}
}

func TestObservationsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New("bad", srv.URL, 5*time.Second)
	_, err := c.Observations(context.Background(), "UNRATE", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	require.ErrorIs(t, err, models.ErrRetrieval)
}
