package repository

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
)

// SeriesSource retrieves observations for one series identifier over an
// inclusive date range from the upstream data provider.
type SeriesSource interface {
	Observations(ctx context.Context, id string, start, end time.Time) (models.TimeSeries, error)
}

// SeriesFetcher is the cached, batch-capable fetch boundary the view layer
// depends on. FetchBatch omits failed identifiers instead of aborting.
type SeriesFetcher interface {
	Fetch(ctx context.Context, id string, start time.Time) (models.TimeSeries, error)
	FetchBatch(ctx context.Context, ids []string, start time.Time) models.Table
	HasCredential() bool
}

// Metrics abstracts the process metrics recorder.
type Metrics interface {
	RecordFetch(series, outcome string)
	RecordFetchDuration(series string, d time.Duration)
	RecordCacheOp(op string)
	RecordRiskScore(score float64)
}
