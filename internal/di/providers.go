package di

import (
	"fmt"
	"net"

	"WaveStage/internal/domain/repository"
	"WaveStage/internal/handler/api"
	internalrepo "WaveStage/internal/repository"
	svccache "WaveStage/internal/service/cache"
	"WaveStage/internal/service/marketdata"
	svcmetrics "WaveStage/internal/service/metrics"
	"WaveStage/internal/service/ratelimit"
	"WaveStage/internal/services/indicators"
	"WaveStage/internal/services/stages"
	"WaveStage/internal/usecase"
	pkgcache "WaveStage/pkg/cache"
	"WaveStage/pkg/config"
	xhttp "WaveStage/pkg/http"
	applogger "WaveStage/pkg/logger"
	"WaveStage/pkg/metrics"
	"WaveStage/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "json"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBarCache creates the market-data cache: layered memory+redis when
// redis is configured, memory-only otherwise.
func ProvideBarCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port := 0
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}

	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideBarSource creates the chart-API client wrapped in the read-through
// cache decorator.
func ProvideBarSource(cfg *config.Config, c pkgcache.Service, log *applogger.Logger) repository.BarSource {
	client := marketdata.New(
		cfg.MarketData.BaseURL,
		cfg.MarketData.VIXSymbol,
		cfg.MarketData.Timeout,
		log,
		marketdata.WithAttempts(cfg.MarketData.Attempts),
	)
	return internalrepo.NewCachedBarSource(client, c, cfg.MarketData.CacheTTL, log)
}

// ProvideEngine creates the indicator engine with canonical parameters.
func ProvideEngine() *indicators.Engine {
	return indicators.NewEngine(indicators.DefaultParams())
}

// ProvideLabeler creates the walk-forward labeler.
func ProvideLabeler(cfg *config.Config) *stages.Labeler {
	return stages.NewLabeler(cfg.Analysis.WarmupBars)
}

// ProvideResponseCache creates the rendered-response cache used by the HTTP
// handler.
func ProvideResponseCache(cfg *config.Config) svccache.BytesCache {
	if cfg.Redis.Enabled {
		return svccache.NewRedisCache(svccache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return svccache.NewTTLCache()
}

// ProvideLimiter creates the per-client rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideAnalyzeUseCase creates the analysis pipeline use case.
func ProvideAnalyzeUseCase(
	source repository.BarSource,
	engine *indicators.Engine,
	labeler *stages.Labeler,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.AnalyzeUseCase {
	return usecase.NewAnalyzeUseCase(source, engine, labeler, m, log)
}

// ProvideReportUseCase creates the report use case.
func ProvideReportUseCase(analyze *usecase.AnalyzeUseCase) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(analyze)
}

// ProvideChartUseCase creates the chart use case.
func ProvideChartUseCase(analyze *usecase.AnalyzeUseCase) *usecase.ChartUseCase {
	return usecase.NewChartUseCase(analyze)
}

// ProvideHandler creates the analysis HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	log *applogger.Logger,
	analyze *usecase.AnalyzeUseCase,
	report *usecase.ReportUseCase,
	chart *usecase.ChartUseCase,
	respCache svccache.BytesCache,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	svcmetrics.Register()
	return api.NewAnalysisEchoHandler(log, analyze, report, chart, respCache, limiter,
		api.WithCacheTTL(cfg.Analysis.ResponseTTL),
		api.WithRateLimit(cfg.Analysis.RateCapacity, cfg.Analysis.RateRefillSec),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, log, handler)
}
