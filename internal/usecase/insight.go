package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/services/analytics"
	"FinSight/pkg/cache"
	"FinSight/pkg/logger"
	"FinSight/pkg/util"
)

// InsightOptions carries the tunables of the pipeline.
type InsightOptions struct {
	Period         string
	DefaultHorizon int
	MaxHorizon     int
	NewsLimit      int
	SeriesTTL      time.Duration
	HeadlinesTTL   time.Duration
	OverallTimeout time.Duration
}

func (o *InsightOptions) applyDefaults() {
	if o.Period == "" {
		o.Period = "2y"
	}
	if o.DefaultHorizon <= 0 {
		o.DefaultHorizon = 30
	}
	if o.MaxHorizon <= 0 {
		o.MaxHorizon = 365
	}
	if o.NewsLimit <= 0 {
		o.NewsLimit = 20
	}
	if o.SeriesTTL <= 0 {
		o.SeriesTTL = 15 * time.Minute
	}
	if o.HeadlinesTTL <= 0 {
		o.HeadlinesTTL = 15 * time.Minute
	}
	if o.OverallTimeout <= 0 {
		o.OverallTimeout = 30 * time.Second
	}
}

// InsightUseCase runs the fetch/forecast/sentiment pipeline for one ticker
// and assembles the combined response. Price history and headlines go
// through a read-through cache; forecast and indicators are recomputed per
// request since the fit is cheap next to the fetch.
type InsightUseCase struct {
	resolver   domsvc.TickerResolver
	market     domsvc.MarketDataProvider
	news       domsvc.NewsProvider
	engine     *analytics.ForecastEngine
	summarizer *SentimentSummarizerUseCase
	cache      cache.Service
	metrics    domsvc.Metrics
	log        *logger.Logger
	opts       InsightOptions
}

func NewInsightUseCase(
	resolver domsvc.TickerResolver,
	market domsvc.MarketDataProvider,
	news domsvc.NewsProvider,
	engine *analytics.ForecastEngine,
	summarizer *SentimentSummarizerUseCase,
	cacheSvc cache.Service,
	metrics domsvc.Metrics,
	log *logger.Logger,
	opts InsightOptions,
) *InsightUseCase {
	opts.applyDefaults()
	return &InsightUseCase{
		resolver:   resolver,
		market:     market,
		news:       news,
		engine:     engine,
		summarizer: summarizer,
		cache:      cacheSvc,
		metrics:    metrics,
		log:        log,
		opts:       opts,
	}
}

// Horizon normalizes a requested horizon: zero takes the default, anything
// outside [1, max] is an error.
func (uc *InsightUseCase) Horizon(requested int) (int, error) {
	if requested == 0 {
		return uc.opts.DefaultHorizon, nil
	}
	if requested < 1 || requested > uc.opts.MaxHorizon {
		return 0, fmt.Errorf("horizon must be in [1, %d], got %d", uc.opts.MaxHorizon, requested)
	}
	return requested, nil
}

// Period resolves a requested period, falling back to the configured one.
func (uc *InsightUseCase) Period(requested string) string {
	if requested == "" {
		return uc.opts.Period
	}
	return requested
}

// ResolveTicker maps a free-form query to a ticker symbol.
func (uc *InsightUseCase) ResolveTicker(ctx context.Context, query string) (string, error) {
	return uc.resolver.Resolve(ctx, query)
}

// PriceSeries returns the daily history for ticker over period, read
// through the cache. An empty period takes the configured default.
func (uc *InsightUseCase) PriceSeries(ctx context.Context, ticker, period string) (models.TimeSeries, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	period = uc.Period(period)
	key := fmt.Sprintf("series:%s:%s", ticker, period)

	var series models.TimeSeries
	if err := uc.cache.Get(ctx, key, &series); err == nil {
		uc.metrics.RecordCacheLookup("series", true)
		return series, nil
	}
	uc.metrics.RecordCacheLookup("series", false)

	start, end, err := util.PeriodToRange(period, time.Now())
	if err != nil {
		return models.TimeSeries{}, err
	}

	began := time.Now()
	series, err = uc.market.Fetch(ctx, ticker, start, end)
	uc.metrics.RecordLatency("fetch", time.Since(began).Seconds())
	if err != nil {
		uc.metrics.RecordFetchError("market_data")
		return models.TimeSeries{}, err
	}

	if last, ok := series.Last(); ok {
		uc.metrics.RecordLastClose(ticker, last.Close)
	}
	if err := uc.cache.Set(ctx, key, series, uc.opts.SeriesTTL); err != nil {
		uc.log.Warn("series cache write failed", logger.String("ticker", ticker), logger.Error(err))
	}
	return series, nil
}

// Forecast fits and extrapolates the price series for ticker.
func (uc *InsightUseCase) Forecast(ctx context.Context, ticker string, horizonDays int, period string) (*models.ForecastResult, models.TimeSeries, error) {
	horizon, err := uc.Horizon(horizonDays)
	if err != nil {
		return nil, models.TimeSeries{}, err
	}
	series, err := uc.PriceSeries(ctx, ticker, period)
	if err != nil {
		return nil, models.TimeSeries{}, err
	}
	result, err := uc.engine.FitAndProject(series, horizon)
	if err != nil {
		return nil, models.TimeSeries{}, err
	}
	return &result, series, nil
}

// Headlines returns recent cleaned headlines for topic, read through the cache.
func (uc *InsightUseCase) Headlines(ctx context.Context, topic string, limit int) ([]models.Headline, error) {
	if limit <= 0 || limit > uc.opts.NewsLimit {
		limit = uc.opts.NewsLimit
	}
	key := fmt.Sprintf("headlines:%s:%d", strings.ToLower(topic), limit)

	var headlines []models.Headline
	if err := uc.cache.Get(ctx, key, &headlines); err == nil {
		uc.metrics.RecordCacheLookup("headlines", true)
		return headlines, nil
	}
	uc.metrics.RecordCacheLookup("headlines", false)

	headlines, err := uc.news.Headlines(ctx, topic, limit)
	if err != nil {
		uc.metrics.RecordFetchError("news")
		return nil, err
	}
	if err := uc.cache.Set(ctx, key, headlines, uc.opts.HeadlinesTTL); err != nil {
		uc.log.Warn("headlines cache write failed", logger.String("topic", topic), logger.Error(err))
	}
	return headlines, nil
}

// Sentiment fetches headlines for topic and tallies their sentiment.
func (uc *InsightUseCase) Sentiment(ctx context.Context, topic string, limit int) (models.SentimentTally, []models.Headline, error) {
	headlines, err := uc.Headlines(ctx, topic, limit)
	if err != nil {
		return nil, nil, err
	}
	tally, err := uc.summarizer.Summarize(ctx, headlines)
	if err != nil {
		return nil, nil, err
	}
	return tally, headlines, nil
}

// InsightParams are the per-request knobs of one pipeline run. Zero values
// take the configured defaults.
type InsightParams struct {
	Ticker    string
	Horizon   int
	NewsLimit int
	Period    string
}

// Insight runs the full pipeline for a ticker. The price and news branches
// run concurrently; a failed branch lands in Errors instead of failing the
// whole response, except the price branch which the rest depends on.
func (uc *InsightUseCase) Insight(ctx context.Context, p InsightParams) (*models.Insight, error) {
	horizon, err := uc.Horizon(p.Horizon)
	if err != nil {
		return nil, err
	}

	resolved, err := uc.ResolveTicker(ctx, p.Ticker)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.opts.OverallTimeout)
	defer cancel()

	res := &models.Insight{
		Ticker:      resolved,
		GeneratedAt: time.Now().UTC(),
		Errors:      map[string]string{},
	}

	type branch struct {
		name string
		run  func() error
	}
	var mu sync.Mutex
	var series models.TimeSeries
	var seriesErr error

	branches := []branch{
		{"forecast", func() error {
			s, err := uc.PriceSeries(ctx, resolved, p.Period)
			mu.Lock()
			series, seriesErr = s, err
			mu.Unlock()
			if err != nil {
				return err
			}
			result, err := uc.engine.FitAndProject(s, horizon)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Forecast = &result
			if last, ok := s.Last(); ok {
				res.LastClose = last.Close
			}
			res.Indicators = indicatorsFor(s)
			mu.Unlock()
			return nil
		}},
		{"sentiment", func() error {
			tally, headlines, err := uc.Sentiment(ctx, resolved, p.NewsLimit)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Sentiment = tally
			res.Headlines = headlines
			mu.Unlock()
			return nil
		}},
	}

	var wg sync.WaitGroup
	for _, b := range branches {
		wg.Add(1)
		go func(b branch) {
			defer wg.Done()
			if err := b.run(); err != nil {
				mu.Lock()
				res.Errors[b.name] = err.Error()
				mu.Unlock()
				uc.log.Warn("insight branch failed",
					logger.String("branch", b.name),
					logger.String("ticker", resolved),
					logger.Error(err))
			}
		}(b)
	}
	wg.Wait()

	if seriesErr != nil && errors.Is(seriesErr, models.ErrDataUnavailable) {
		// nothing to show without prices
		return nil, seriesErr
	}

	res.Recommendation = analytics.Recommend(res.Forecast, res.LastClose, res.Sentiment)

	status := "ok"
	if len(res.Errors) > 0 {
		status = "partial"
	} else {
		res.Errors = nil
	}
	uc.metrics.RecordPipelineRun("insight", status)

	return res, nil
}

func indicatorsFor(series models.TimeSeries) *models.Indicators {
	closes := series.Closes()
	if len(closes) == 0 {
		return nil
	}
	ind := analytics.ComputeIndicators(closes)
	return &ind
}
