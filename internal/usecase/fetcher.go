package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	icache "MacroPulse/internal/service/cache"
	"MacroPulse/internal/service/ratelimit"
	xlogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

const limiterKey = "fred"

// SeriesFetcher retrieves observation series through a transient TTL cache.
// Entries are keyed by (identifier, credential scope, start date) and expire
// by time only.
type SeriesFetcher struct {
	source   drepo.SeriesSource
	cache    icache.BytesCache
	limiter  *ratelimit.Limiter
	metrics  drepo.Metrics
	logger   *xlogger.Logger
	keyScope string
	hasKey   bool
	ttl      time.Duration
	rateCap  float64
	ratePer  float64
}

type FetcherOption func(*SeriesFetcher)

// WithRate tunes the outbound token bucket.
func WithRate(capacity, perSec float64) FetcherOption {
	return func(f *SeriesFetcher) {
		f.rateCap = capacity
		f.ratePer = perSec
	}
}

// WithTTL sets the cache window.
func WithTTL(ttl time.Duration) FetcherOption {
	return func(f *SeriesFetcher) { f.ttl = ttl }
}

func NewSeriesFetcher(
	source drepo.SeriesSource,
	cache icache.BytesCache,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
	apiKey string,
	opts ...FetcherOption,
) *SeriesFetcher {
	f := &SeriesFetcher{
		source:   source,
		cache:    cache,
		limiter:  ratelimit.New(),
		metrics:  metrics,
		logger:   logger,
		keyScope: credentialScope(apiKey),
		hasKey:   apiKey != "",
		ttl:      time.Hour,
		rateCap:  20,
		ratePer:  2,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// HasCredential reports whether an API key is configured. Without one every
// data-driven view degrades to an explicit placeholder state.
func (f *SeriesFetcher) HasCredential() bool { return f.hasKey }

// Fetch returns one series from cache or upstream.
func (f *SeriesFetcher) Fetch(ctx context.Context, id string, start time.Time) (models.TimeSeries, error) {
	if !f.hasKey {
		return nil, models.ErrMissingCredential
	}

	key := fmt.Sprintf("obs:%s:%s:%s", id, f.keyScope, util.FormatDate(start))

	if b, ok, err := f.cache.GetBytes(key); err == nil && ok {
		var s models.TimeSeries
		if err := json.Unmarshal(b, &s); err == nil {
			f.metrics.RecordFetch(id, "hit")
			f.metrics.RecordCacheOp("get_hit")
			return s, nil
		}
		// corrupt entry falls through to a refetch
	}
	f.metrics.RecordCacheOp("get_miss")

	if err := f.waitForToken(ctx); err != nil {
		f.metrics.RecordFetch(id, "error")
		return nil, fmt.Errorf("%w: %s: %v", models.ErrRetrieval, id, err)
	}

	begin := time.Now()
	s, err := f.source.Observations(ctx, id, start, time.Time{})
	f.metrics.RecordFetchDuration(id, time.Since(begin))
	if err != nil {
		f.metrics.RecordFetch(id, "error")
		return nil, err
	}
	f.metrics.RecordFetch(id, "miss")

	if b, err := json.Marshal(s); err == nil {
		if err := f.cache.SetBytes(key, b, f.ttl); err == nil {
			f.metrics.RecordCacheOp("set")
		}
	}

	return s, nil
}

// FetchBatch retrieves a set of identifiers sequentially. Any identifier
// that fails retrieval is logged and omitted from the result; one bad
// identifier never aborts the batch.
func (f *SeriesFetcher) FetchBatch(ctx context.Context, ids []string, start time.Time) models.Table {
	table := make(models.Table, len(ids))
	for _, id := range ids {
		s, err := f.Fetch(ctx, id, start)
		if err != nil {
			if f.logger != nil {
				f.logger.Warn("series fetch failed",
					xlogger.String("series", id),
					xlogger.Error(err),
				)
			}
			continue
		}
		table[id] = s
	}
	return table
}

func (f *SeriesFetcher) waitForToken(ctx context.Context) error {
	for !f.limiter.Allow(limiterKey, f.rateCap, f.ratePer) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}

// credentialScope derives a short non-reversible cache-key component from the
// API key so differently-scoped credentials never share entries.
func credentialScope(apiKey string) string {
	if apiKey == "" {
		return "anon"
	}
	sum := sha256.Sum256([]byte(apiKey))
	return fmt.Sprintf("%x", sum[:4])
}

var _ drepo.SeriesFetcher = (*SeriesFetcher)(nil)
