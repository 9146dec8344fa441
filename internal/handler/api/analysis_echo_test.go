package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"WaveStage/internal/domain/models"
	internalrepo "WaveStage/internal/repository"
	svccache "WaveStage/internal/service/cache"
	"WaveStage/internal/service/ratelimit"
	"WaveStage/internal/services/indicators"
	"WaveStage/internal/services/stages"
	"WaveStage/internal/usecase"
	applogger "WaveStage/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopMetrics struct{}

func (noopMetrics) RecordAnalysis(string, string)   {}
func (noopMetrics) RecordError(string)              {}
func (noopMetrics) RecordLastPrice(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)   {}

func testHandler(t *testing.T) *AnalysisEchoHandler {
	t.Helper()

	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	static := internalrepo.NewStaticBarSource()
	static.Load(seriesFor("SPY", 120))

	analyze := usecase.NewAnalyzeUseCase(
		static,
		indicators.NewEngine(indicators.DefaultParams()),
		stages.NewLabeler(0),
		noopMetrics{},
		log,
	)

	return NewAnalysisEchoHandler(
		log,
		analyze,
		usecase.NewReportUseCase(analyze),
		usecase.NewChartUseCase(analyze),
		svccache.NewTTLCache(),
		ratelimit.New(),
		WithRateLimit(100, 100),
	)
}

func seriesFor(symbol string, n int) *models.MarketData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	v := 100.0
	for i := range bars {
		v += math.Sin(float64(i)*0.8)*2 + 0.05
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      v, High: v + 1, Low: v - 1, Close: v,
			Volume: 100,
		}
	}
	return &models.MarketData{Symbol: symbol, Bars: bars}
}

func doRequest(t *testing.T, h *AnalysisEchoHandler, target string, fn func(echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, fn(c))
	return rec
}

func TestAnalysisEndpoint(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(t, h, "/api/analysis?symbol=SPY", h.Analysis)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status int                       `json:"status"`
		Data   models.AnalysisSummaryDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.Status)
	assert.Equal(t, "SPY", body.Data.Symbol)
	assert.Equal(t, "6mo", body.Data.Range) // default range applied
	assert.Equal(t, 120, body.Data.BarCount)
	assert.True(t, body.Data.Latest.Stage.Valid())
}

func TestAnalysisValidation(t *testing.T) {
	h := testHandler(t)

	rec := doRequest(t, h, "/api/analysis", h.Analysis)
	assert.Equal(t, http.StatusOK, rec.Code) // envelope carries the status
	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)

	rec = doRequest(t, h, "/api/analysis?symbol=SPY&range=42d", h.Analysis)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
}

func TestAnalysisNotFound(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(t, h, "/api/analysis?symbol=NOPE", h.Analysis)

	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
}

func TestHistoryEndpoint(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(t, h, "/api/analysis/history?symbol=SPY&range=1y", h.History)

	var body struct {
		Data models.LabeledSeriesDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Bars, 120)

	// Warm-up bars carry no stage and null indicators.
	assert.Empty(t, body.Data.Bars[0].Stage)
	assert.Nil(t, body.Data.Bars[0].Indicators.StochRSIK)
	assert.NotEmpty(t, body.Data.Bars[119].Stage)
}

func TestReportEndpoint(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(t, h, "/api/analysis/report?symbol=SPY", h.Report)

	var body struct {
		Data models.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SPY", body.Data.Symbol)
	assert.NotEmpty(t, body.Data.Text)
}

func TestChartEndpoint(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(t, h, "/api/analysis/chart?symbol=SPY", h.Chart)

	var body struct {
		Data models.ChartData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data.Timestamps, 120)
	assert.NotEmpty(t, body.Data.Price.Bands)
}

func TestAnalysisResponseCached(t *testing.T) {
	h := testHandler(t)

	first := doRequest(t, h, "/api/analysis?symbol=SPY", h.Analysis)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := doRequest(t, h, "/api/analysis?symbol=SPY", h.Analysis)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestRateLimitRejects(t *testing.T) {
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	static := internalrepo.NewStaticBarSource()
	static.Load(seriesFor("SPY", 120))
	analyze := usecase.NewAnalyzeUseCase(static, indicators.NewEngine(indicators.DefaultParams()), stages.NewLabeler(0), noopMetrics{}, log)

	h := NewAnalysisEchoHandler(
		log, analyze,
		usecase.NewReportUseCase(analyze),
		usecase.NewChartUseCase(analyze),
		svccache.NewTTLCache(),
		ratelimit.New(),
		WithRateLimit(1, 0.0001),
	)

	_ = doRequest(t, h, "/api/analysis?symbol=SPY", h.Analysis)
	rec := doRequest(t, h, "/api/analysis?symbol=SPY", h.Analysis)

	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Status)
}
