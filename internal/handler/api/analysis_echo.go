package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"WaveStage/internal/domain/models"
	drepo "WaveStage/internal/domain/repository"
	svccache "WaveStage/internal/service/cache"
	svcmetrics "WaveStage/internal/service/metrics"
	"WaveStage/internal/service/ratelimit"
	"WaveStage/internal/usecase"
	xhttp "WaveStage/pkg/http"
	xlogger "WaveStage/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler exposes the analysis pipeline over HTTP. Responses
// are cached per symbol+range+view; a token bucket caps per-client request
// rates since every miss fans out to the upstream data source.
type AnalysisEchoHandler struct {
	logger  *xlogger.Logger
	analyze *usecase.AnalyzeUseCase
	report  *usecase.ReportUseCase
	chart   *usecase.ChartUseCase
	cache   svccache.BytesCache
	limiter *ratelimit.Limiter

	cacheTTL     time.Duration
	rateCapacity float64
	rateRefill   float64
}

type HandlerOption func(*AnalysisEchoHandler)

func NewAnalysisEchoHandler(
	logger *xlogger.Logger,
	analyze *usecase.AnalyzeUseCase,
	report *usecase.ReportUseCase,
	chart *usecase.ChartUseCase,
	cache svccache.BytesCache,
	limiter *ratelimit.Limiter,
	opts ...HandlerOption,
) *AnalysisEchoHandler {
	h := &AnalysisEchoHandler{
		logger:       logger,
		analyze:      analyze,
		report:       report,
		chart:        chart,
		cache:        cache,
		limiter:      limiter,
		cacheTTL:     60 * time.Second,
		rateCapacity: 10,
		rateRefill:   2,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithCacheTTL overrides how long rendered responses stay cached.
func WithCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *AnalysisEchoHandler) {
		if ttl > 0 {
			h.cacheTTL = ttl
		}
	}
}

// WithRateLimit overrides the per-client token bucket parameters.
func WithRateLimit(capacity, refillPerSec float64) HandlerOption {
	return func(h *AnalysisEchoHandler) {
		if capacity > 0 && refillPerSec > 0 {
			h.rateCapacity = capacity
			h.rateRefill = refillPerSec
		}
	}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analysis", h.Analysis)
	g.GET("/analysis/history", h.History)
	g.GET("/analysis/report", h.Report)
	g.GET("/analysis/chart", h.Chart)
}

// Analysis returns the latest-bar classification with stage occupancy.
func (h *AnalysisEchoHandler) Analysis(c echo.Context) error {
	return h.serve(c, "summary", func(ls *models.LabeledSeries) (interface{}, error) {
		return ls.SummaryDTO(), nil
	})
}

// History returns the full walk-forward labeled series.
func (h *AnalysisEchoHandler) History(c echo.Context) error {
	return h.serve(c, "history", func(ls *models.LabeledSeries) (interface{}, error) {
		return ls.HistoryDTO(), nil
	})
}

// Report returns the rendered detailed report.
func (h *AnalysisEchoHandler) Report(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, "report") {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}

	key := h.cacheKey("report", req)
	if b, ok, _ := h.cache.GetBytes(key); ok {
		return h.writeCached(c, "report", b)
	}
	svcmetrics.ResponseCacheMisses.WithLabelValues("report").Inc()

	r, err := h.report.GetReport(c.Request().Context(), usecase.AnalyzeParams{
		Symbol: req.Symbol,
		Range:  drepo.Range(req.Range),
	})
	if err != nil {
		return h.errorResponse(c, "report", err)
	}
	return h.respond(c, key, r)
}

// Chart returns the four-panel chart payload.
func (h *AnalysisEchoHandler) Chart(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, "chart") {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}

	key := h.cacheKey("chart", req)
	if b, ok, _ := h.cache.GetBytes(key); ok {
		return h.writeCached(c, "chart", b)
	}
	svcmetrics.ResponseCacheMisses.WithLabelValues("chart").Inc()

	cd, err := h.chart.GetChart(c.Request().Context(), usecase.AnalyzeParams{
		Symbol: req.Symbol,
		Range:  drepo.Range(req.Range),
	})
	if err != nil {
		return h.errorResponse(c, "chart", err)
	}
	return h.respond(c, key, cd)
}

// serve handles the two endpoints that render straight off a LabeledSeries.
func (h *AnalysisEchoHandler) serve(c echo.Context, view string, render func(*models.LabeledSeries) (interface{}, error)) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, view) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}

	key := h.cacheKey(view, req)
	if b, ok, _ := h.cache.GetBytes(key); ok {
		return h.writeCached(c, view, b)
	}
	svcmetrics.ResponseCacheMisses.WithLabelValues(view).Inc()

	ls, err := h.analyze.Analyze(c.Request().Context(), usecase.AnalyzeParams{
		Symbol: req.Symbol,
		Range:  drepo.Range(req.Range),
	})
	if err != nil {
		return h.errorResponse(c, view, err)
	}
	data, err := render(ls)
	if err != nil {
		return h.errorResponse(c, view, err)
	}
	return h.respond(c, key, data)
}

// respond caches the rendered envelope and writes it.
func (h *AnalysisEchoHandler) respond(c echo.Context, key string, data interface{}) error {
	envelope := xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	}
	if b, err := json.Marshal(envelope); err == nil {
		_ = h.cache.SetBytes(key, b, h.cacheTTL)
	}
	return xhttp.SuccessResponse(c, data)
}

func (h *AnalysisEchoHandler) writeCached(c echo.Context, view string, b []byte) error {
	svcmetrics.ResponseCacheHits.WithLabelValues(view).Inc()
	c.Response().Header().Set("X-Cache", "HIT")
	return c.JSONBlob(http.StatusOK, b)
}

func (h *AnalysisEchoHandler) errorResponse(c echo.Context, view string, err error) error {
	if errors.Is(err, drepo.ErrNoData) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no data for symbol").WithError(err))
	}
	h.logger.Error(view+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}

func (h *AnalysisEchoHandler) allow(c echo.Context, view string) bool {
	if h.limiter.Allow(c.RealIP(), h.rateCapacity, h.rateRefill) {
		return true
	}
	svcmetrics.RateLimited.WithLabelValues(view).Inc()
	return false
}

func (h *AnalysisEchoHandler) cacheKey(view string, req *models.AnalysisRequest) string {
	return fmt.Sprintf("resp:%s:%s:%s", view, req.Symbol, req.Range)
}
