package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	"FinSight/pkg/cache"
	"FinSight/pkg/logger"
	"FinSight/pkg/util"
)

// MoversUseCase ranks a fixed watchlist by day-over-day change. Fetches run
// concurrently; tickers that fail or have fewer than two closes are skipped.
type MoversUseCase struct {
	market    domsvc.MarketDataProvider
	cache     cache.Service
	metrics   domsvc.Metrics
	log       *logger.Logger
	watchlist []string
	topN      int
	ttl       time.Duration
}

func NewMoversUseCase(
	market domsvc.MarketDataProvider,
	cacheSvc cache.Service,
	metrics domsvc.Metrics,
	log *logger.Logger,
	watchlist []string,
	topN int,
	ttl time.Duration,
) *MoversUseCase {
	if topN <= 0 {
		topN = 5
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MoversUseCase{
		market:    market,
		cache:     cacheSvc,
		metrics:   metrics,
		log:       log,
		watchlist: watchlist,
		topN:      topN,
		ttl:       ttl,
	}
}

// Movers returns the top gainers and losers across the watchlist.
func (uc *MoversUseCase) Movers(ctx context.Context) (*models.Movers, error) {
	const key = "movers"

	var cached models.Movers
	if err := uc.cache.Get(ctx, key, &cached); err == nil {
		uc.metrics.RecordCacheLookup("movers", true)
		return &cached, nil
	}
	uc.metrics.RecordCacheLookup("movers", false)

	// a week of history guarantees two trading days around weekends/holidays
	start, end, _ := util.PeriodToRange("7d", time.Now())

	var mu sync.Mutex
	var movers []models.Mover
	var wg sync.WaitGroup

	for _, ticker := range uc.watchlist {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			series, err := uc.market.Fetch(ctx, ticker, start, end)
			if err != nil {
				uc.log.Warn("movers fetch failed", logger.String("ticker", ticker), logger.Error(err))
				uc.metrics.RecordFetchError("movers")
				return
			}
			closes := series.Closes()
			if len(closes) < 2 {
				return
			}
			prev, last := closes[len(closes)-2], closes[len(closes)-1]
			if prev == 0 {
				return
			}
			mu.Lock()
			movers = append(movers, models.Mover{
				Ticker:    series.Ticker,
				Price:     last,
				ChangePct: (last - prev) / prev * 100,
			})
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()

	if len(movers) == 0 {
		return nil, models.ErrDataUnavailable
	}

	sort.Slice(movers, func(i, j int) bool { return movers[i].ChangePct > movers[j].ChangePct })

	out := &models.Movers{}
	for i := 0; i < len(movers) && i < uc.topN; i++ {
		if movers[i].ChangePct > 0 {
			out.Gainers = append(out.Gainers, movers[i])
		}
	}
	for i := 0; i < uc.topN && i < len(movers); i++ {
		m := movers[len(movers)-1-i]
		if m.ChangePct < 0 {
			out.Losers = append(out.Losers, m)
		}
	}

	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn("movers cache write failed", logger.Error(err))
	}
	uc.metrics.RecordPipelineRun("movers", "ok")
	return out, nil
}
