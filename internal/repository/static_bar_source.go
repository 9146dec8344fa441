package repository

import (
	"context"
	"fmt"

	"WaveStage/internal/domain/models"
	drepo "WaveStage/internal/domain/repository"
)

// StaticBarSource serves pre-loaded series from memory. Used for offline
// runs and as a deterministic source in tests.
type StaticBarSource struct {
	data map[string]*models.MarketData
}

func NewStaticBarSource() *StaticBarSource {
	return &StaticBarSource{data: make(map[string]*models.MarketData)}
}

// Load registers a series for a symbol, replacing any previous one.
func (s *StaticBarSource) Load(md *models.MarketData) {
	s.data[md.Symbol] = md
}

func (s *StaticBarSource) GetMarketData(_ context.Context, symbol string, r drepo.Range) (*models.MarketData, error) {
	md, ok := s.data[symbol]
	if !ok || len(md.Bars) == 0 {
		return nil, fmt.Errorf("%w: %s", drepo.ErrNoData, symbol)
	}
	out := *md
	out.Range = string(r)
	return &out, nil
}
