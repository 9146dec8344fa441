package repository

import (
	"context"
	"errors"
	"time"

	"WaveStage/internal/domain/models"
	drepo "WaveStage/internal/domain/repository"
	"WaveStage/pkg/cache"
	"WaveStage/pkg/logger"
)

// CachedBarSource decorates a BarSource with a read-through cache so
// repeated analyses of the same symbol within the TTL skip the upstream
// fetch. Daily bars only move once a day; a short TTL is enough to absorb
// request bursts without serving stale history.
type CachedBarSource struct {
	next  drepo.BarSource
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedBarSource(next drepo.BarSource, c cache.Service, ttl time.Duration, log *logger.Logger) drepo.BarSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedBarSource{next: next, cache: c, ttl: ttl, log: log}
}

func (s *CachedBarSource) GetMarketData(ctx context.Context, symbol string, r drepo.Range) (*models.MarketData, error) {
	key := cache.GenerateKeyWithParams("bars", symbol, r)

	var cached models.MarketData
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("bar cache read failed", logger.String("key", key), logger.Error(err))
	}

	md, err := s.next.GetMarketData(ctx, symbol, r)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, md, s.ttl); err != nil {
		s.log.Warn("bar cache write failed", logger.String("key", key), logger.Error(err))
	}
	return md, nil
}
