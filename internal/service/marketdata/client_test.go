package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	drepo "WaveStage/internal/domain/repository"
	applogger "WaveStage/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func chartJSON(symbol string, ts []int64, closes []float64) string {
	tsParts := make([]string, len(ts))
	cParts := make([]string, len(closes))
	for i := range ts {
		tsParts[i] = fmt.Sprintf("%d", ts[i])
		cParts[i] = fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"symbol": %q},
				"timestamp": [%s],
				"indicators": {"quote": [{
					"open": [%s], "high": [%s], "low": [%s],
					"close": [%s], "volume": [%s]
				}]}
			}],
			"error": null
		}
	}`, symbol,
		strings.Join(tsParts, ","),
		strings.Join(cParts, ","), strings.Join(cParts, ","), strings.Join(cParts, ","),
		strings.Join(cParts, ","), strings.Join(cParts, ","))
}

func TestGetMarketDataParsesBarsAndAux(t *testing.T) {
	day := int64(24 * 3600)
	ts := []int64{1704067200, 1704067200 + day, 1704067200 + 2*day}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/SPY"):
			fmt.Fprint(w, chartJSON("SPY", ts, []float64{470, 472, 471}))
		case strings.HasSuffix(r.URL.Path, "/^VIX"):
			fmt.Fprint(w, chartJSON("^VIX", ts, []float64{13.5, 14.2, 13.9}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := New(srv.URL, "^VIX", 5*time.Second, testLogger(t))
	md, err := src.GetMarketData(context.Background(), "SPY", drepo.Range1mo)
	require.NoError(t, err)

	require.Len(t, md.Bars, 3)
	assert.Equal(t, "SPY", md.Symbol)
	assert.InDelta(t, 470.0, md.Bars[0].Close, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), md.Bars[0].Timestamp)

	require.Len(t, md.Aux, 3)
	assert.InDelta(t, 14.2, md.Aux[1].Value, 1e-9)
}

func TestGetMarketDataSkipsNullSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"chart": {
				"result": [{
					"meta": {"symbol": "SPY"},
					"timestamp": [1704067200, 1704153600, 1704240000],
					"indicators": {"quote": [{
						"open": [470, null, 471],
						"high": [471, null, 472],
						"low":  [469, null, 470],
						"close": [470.5, null, 471.5],
						"volume": [1000, null, 1200]
					}]}
				}],
				"error": null
			}
		}`)
	}))
	defer srv.Close()

	src := New(srv.URL, "SPY", 5*time.Second, testLogger(t))
	md, err := src.GetMarketData(context.Background(), "SPY", drepo.Range1mo)
	require.NoError(t, err)
	require.Len(t, md.Bars, 2)
	assert.InDelta(t, 471.5, md.Bars[1].Close, 1e-9)
}

func TestGetMarketDataVIXOwnSymbol(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, chartJSON("^VIX", []int64{1704067200}, []float64{15.0}))
	}))
	defer srv.Close()

	src := New(srv.URL, "^VIX", 5*time.Second, testLogger(t))
	md, err := src.GetMarketData(context.Background(), "^VIX", drepo.Range1mo)
	require.NoError(t, err)

	// The index is its own sentiment input; no second fetch happens.
	assert.Equal(t, 1, calls)
	require.Len(t, md.Aux, 1)
	assert.InDelta(t, 15.0, md.Aux[0].Value, 1e-9)
}

func TestGetMarketDataToleratesVIXFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/^VIX") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, chartJSON("SPY", []int64{1704067200}, []float64{470}))
	}))
	defer srv.Close()

	src := New(srv.URL, "^VIX", 5*time.Second, testLogger(t), WithAttempts(1))
	md, err := src.GetMarketData(context.Background(), "SPY", drepo.Range1mo)
	require.NoError(t, err)
	assert.Nil(t, md.Aux)
	require.Len(t, md.Bars, 1)
}

func TestGetMarketDataNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	}))
	defer srv.Close()

	src := New(srv.URL, "^VIX", 5*time.Second, testLogger(t), WithAttempts(1))
	_, err := src.GetMarketData(context.Background(), "EMPTY", drepo.Range1mo)
	require.ErrorIs(t, err, drepo.ErrNoData)
}

func TestGetMarketDataChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": {"code": "Not Found", "description": "No data found"}}}`)
	}))
	defer srv.Close()

	src := New(srv.URL, "^VIX", 5*time.Second, testLogger(t), WithAttempts(1))
	_, err := src.GetMarketData(context.Background(), "BAD", drepo.Range1mo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestGetMarketDataRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, chartJSON("^VIX", []int64{1704067200}, []float64{15.0}))
	}))
	defer srv.Close()

	src := New(srv.URL, "^VIX", 5*time.Second, testLogger(t), WithAttempts(3))
	md, err := src.GetMarketData(context.Background(), "^VIX", drepo.Range1mo)
	require.NoError(t, err)
	require.Len(t, md.Bars, 1)
	assert.Equal(t, 3, attempts)
}
