package di

import (
	"fmt"

	"MacroPulse/internal/domain/repository"
	"MacroPulse/internal/handler/api"
	icache "MacroPulse/internal/service/cache"
	"MacroPulse/internal/service/fred"
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	"MacroPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache selects the cache backend from config.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Backend == "redis" {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideSeriesSource creates the FRED observations client.
func ProvideSeriesSource(cfg *config.Config) repository.SeriesSource {
	return fred.New(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.Timeout)
}

// ProvideSeriesFetcher wraps the source with caching, rate limiting and
// metrics.
func ProvideSeriesFetcher(
	source repository.SeriesSource,
	cache icache.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) repository.SeriesFetcher {
	return usecase.NewSeriesFetcher(source, cache, m, l, cfg.FRED.APIKey,
		usecase.WithTTL(cfg.Cache.TTL),
		usecase.WithRate(cfg.FRED.RateCapacity, cfg.FRED.RatePerSec),
	)
}

// ProvideViewService creates the view aggregation use case.
func ProvideViewService(fetcher repository.SeriesFetcher, m repository.Metrics, l *applogger.Logger) *usecase.ViewService {
	return usecase.NewViewService(fetcher, m, l)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(l *applogger.Logger, views *usecase.ViewService) xhttp.Handler {
	return api.NewViewsEchoHandler(l, views)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, cache icache.BytesCache) *server.App {
	return server.New(cfg, l, h, cache)
}
