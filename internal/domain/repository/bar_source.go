package repository

import (
	"context"
	"errors"

	"WaveStage/internal/domain/models"
)

// ErrNoData signals that the provider returned nothing usable for the
// symbol/range. The analysis core is never invoked without valid data.
var ErrNoData = errors.New("market data: no data for symbol")

// BarSource supplies the bar history and auxiliary volatility series for a
// symbol over a lookback range. Implementations must return ErrNoData
// (possibly wrapped) rather than an empty MarketData.
type BarSource interface {
	GetMarketData(ctx context.Context, symbol string, r Range) (*models.MarketData, error)
}
