package marketdata

import (
	"context"
	"fmt"
	"time"

	"WaveStage/internal/domain/models"
	drepo "WaveStage/internal/domain/repository"
	xhttp "WaveStage/pkg/http"
	"WaveStage/pkg/logger"
	"WaveStage/pkg/util"
)

// Client implements a BarSource backed by a chart-API endpoint serving
// daily OHLCV in the v8 chart JSON shape. It also pulls the volatility
// index as auxiliary sentiment input.
type Client struct {
	baseURL   string
	vixSymbol string
	attempts  int
	client    *xhttp.Client
	log       *logger.Logger
}

type Option func(*Client)

// New creates a chart-API BarSource.
func New(baseURL, vixSymbol string, timeout time.Duration, log *logger.Logger, opts ...Option) drepo.BarSource {
	c := &Client{
		baseURL:   baseURL,
		vixSymbol: vixSymbol,
		attempts:  3,
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAttempts sets how many times a fetch is tried before giving up.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// chartResponse mirrors the v8 chart JSON envelope, down to the parts we
// read. Quote arrays use null for missing sessions; pointers keep those
// distinguishable from zero.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol string `json:"symbol"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// GetMarketData fetches daily bars for the symbol plus the volatility
// index aligned to the same range. A failed index fetch degrades to bars
// without aux data rather than failing the whole request.
func (c *Client) GetMarketData(ctx context.Context, symbol string, r drepo.Range) (*models.MarketData, error) {
	bars, err := c.fetchBars(ctx, symbol, r)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", drepo.ErrNoData, symbol)
	}

	md := &models.MarketData{
		Symbol: symbol,
		Range:  string(r),
		Bars:   bars,
	}

	if symbol == c.vixSymbol {
		// The index's own closes double as its sentiment input.
		md.Aux = auxFromBars(bars)
		return md, nil
	}

	vixBars, err := c.fetchBars(ctx, c.vixSymbol, r)
	if err != nil {
		c.log.Warn("volatility index fetch failed, continuing without it",
			logger.String("symbol", symbol),
			logger.String("vix_symbol", c.vixSymbol),
			logger.Error(err))
		return md, nil
	}
	md.Aux = auxFromBars(vixBars)
	return md, nil
}

func (c *Client) fetchBars(ctx context.Context, symbol string, r drepo.Range) ([]models.Bar, error) {
	var resp chartResponse
	if err := c.getJSONWithRetry(ctx, symbol, r, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	if e := resp.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart api %s: %s (%s)", symbol, e.Description, e.Code)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", drepo.ErrNoData, symbol)
	}

	return barsFromResult(&resp.Chart.Result[0]), nil
}

func (c *Client) getJSONWithRetry(ctx context.Context, symbol string, r drepo.Range, dest interface{}) error {
	opts := &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol),
		QueryParams: map[string][]string{
			"range":    {string(r)},
			"interval": {"1d"},
		},
	}

	var err error
	for i := 1; i <= c.attempts; i++ {
		err = c.client.SendAndParse(ctx, opts, dest)
		if err == nil {
			return nil
		}
		if i == c.attempts {
			break
		}
		select {
		case <-time.After(time.Duration(i) * 100 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// barsFromResult flattens the columnar quote arrays into bars, dropping
// sessions with no close (halts, holidays mid-array).
func barsFromResult(res *chartResult) []models.Bar {
	if len(res.Indicators.Quote) == 0 {
		return nil
	}
	q := res.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		b := models.Bar{Timestamp: util.TruncateToDay(time.Unix(ts, 0)), Close: *q.Close[i]}
		if i < len(q.Open) && q.Open[i] != nil {
			b.Open = *q.Open[i]
		} else {
			b.Open = b.Close
		}
		if i < len(q.High) && q.High[i] != nil {
			b.High = *q.High[i]
		} else {
			b.High = b.Close
		}
		if i < len(q.Low) && q.Low[i] != nil {
			b.Low = *q.Low[i]
		} else {
			b.Low = b.Close
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			b.Volume = *q.Volume[i]
		}
		bars = append(bars, b)
	}
	return bars
}

func auxFromBars(bars []models.Bar) []models.AuxPoint {
	aux := make([]models.AuxPoint, len(bars))
	for i, b := range bars {
		aux[i] = models.AuxPoint{Timestamp: b.Timestamp, Value: b.Close}
	}
	return aux
}
