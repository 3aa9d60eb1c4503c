package usecase

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	"FinSight/pkg/cache"
	"FinSight/pkg/logger"
)

// FundamentalsUseCase serves cached valuation snapshots for a ticker or
// company name.
type FundamentalsUseCase struct {
	resolver domsvc.TickerResolver
	provider domsvc.FundamentalsProvider
	cache    cache.Service
	metrics  domsvc.Metrics
	log      *logger.Logger
	ttl      time.Duration
}

func NewFundamentalsUseCase(
	resolver domsvc.TickerResolver,
	provider domsvc.FundamentalsProvider,
	cacheSvc cache.Service,
	metrics domsvc.Metrics,
	log *logger.Logger,
	ttl time.Duration,
) *FundamentalsUseCase {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &FundamentalsUseCase{
		resolver: resolver,
		provider: provider,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		ttl:      ttl,
	}
}

// Fundamentals resolves query to a ticker and returns its snapshot,
// read-through cached per ticker.
func (uc *FundamentalsUseCase) Fundamentals(ctx context.Context, query string) (*models.Fundamentals, error) {
	ticker, err := uc.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", query, err)
	}

	key := fmt.Sprintf("fundamentals:%s", ticker)
	var cached models.Fundamentals
	if err := uc.cache.Get(ctx, key, &cached); err == nil {
		uc.metrics.RecordCacheLookup("fundamentals", true)
		return &cached, nil
	}
	uc.metrics.RecordCacheLookup("fundamentals", false)

	start := time.Now()
	f, err := uc.provider.Fundamentals(ctx, ticker)
	if err != nil {
		uc.metrics.RecordFetchError("fundamentals")
		uc.metrics.RecordPipelineRun("fundamentals", "error")
		return nil, err
	}
	uc.metrics.RecordLatency("fundamentals", time.Since(start).Seconds())

	if err := uc.cache.Set(ctx, key, f, uc.ttl); err != nil {
		uc.log.Warn("fundamentals cache write failed", logger.String("ticker", ticker), logger.Error(err))
	}
	uc.metrics.RecordPipelineRun("fundamentals", "ok")
	return &f, nil
}
