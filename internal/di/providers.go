package di

import (
	"fmt"

	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/handler/api"
	"FinSight/internal/service/news"
	"FinSight/internal/service/sentiment"
	"FinSight/internal/service/yahoo"
	"FinSight/internal/services/analytics"
	"FinSight/internal/usecase"
	"FinSight/pkg/cache"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	"FinSight/pkg/logger"
	"FinSight/pkg/metrics"
	"FinSight/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideCache selects Redis when configured, in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MaxSize)), nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domsvc.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Yahoo chart API client.
func ProvideMarketData(cfg *config.Config) *yahoo.Client {
	return yahoo.New(
		yahoo.WithHosts(cfg.MarketData.Hosts),
		yahoo.WithSearchHost(cfg.MarketData.SearchHost),
		yahoo.WithMaxRetries(cfg.MarketData.MaxRetries),
		yahoo.WithTimeout(cfg.MarketData.Timeout),
		yahoo.WithRateLimit(cfg.MarketData.RateBurst, cfg.MarketData.RatePerSec),
	)
}

// ProvideNews creates the Google News RSS client.
func ProvideNews(cfg *config.Config) *news.Client {
	return news.New(cfg.News.FeedURL, cfg.News.Timeout)
}

// ProvideClassifier selects the sentiment backend from config.
func ProvideClassifier(cfg *config.Config) domsvc.SentimentClassifier {
	if cfg.Sentiment.Provider == "openai" {
		return sentiment.NewOpenAI(cfg.Sentiment.OpenAIKey, cfg.Sentiment.OpenAIModel, cfg.Sentiment.Timeout)
	}
	return sentiment.NewLexicon()
}

// ProvideSummarizer creates the sentiment tally use case.
func ProvideSummarizer(classifier domsvc.SentimentClassifier) *usecase.SentimentSummarizerUseCase {
	return usecase.NewSentimentSummarizer(classifier)
}

// ProvideInsightUseCase wires the full pipeline use case.
func ProvideInsightUseCase(
	cfg *config.Config,
	market *yahoo.Client,
	newsCli *news.Client,
	summarizer *usecase.SentimentSummarizerUseCase,
	cacheSvc cache.Service,
	m domsvc.Metrics,
	log *logger.Logger,
) *usecase.InsightUseCase {
	return usecase.NewInsightUseCase(
		market,
		market,
		newsCli,
		analytics.NewForecastEngine(),
		summarizer,
		cacheSvc,
		m,
		log,
		usecase.InsightOptions{
			Period:         cfg.MarketData.Period,
			DefaultHorizon: cfg.Forecast.DefaultHorizonDays,
			MaxHorizon:     cfg.Forecast.MaxHorizonDays,
			NewsLimit:      cfg.News.Limit,
			SeriesTTL:      cfg.MarketData.CacheTTL,
			HeadlinesTTL:   cfg.News.CacheTTL,
		},
	)
}

// ProvideMoversUseCase wires the watchlist movers use case.
func ProvideMoversUseCase(
	cfg *config.Config,
	market *yahoo.Client,
	cacheSvc cache.Service,
	m domsvc.Metrics,
	log *logger.Logger,
) *usecase.MoversUseCase {
	return usecase.NewMoversUseCase(market, cacheSvc, m, log,
		cfg.Movers.Watchlist, cfg.Movers.TopN, cfg.MarketData.CacheTTL)
}

// ProvideFundamentalsUseCase wires the valuation snapshot use case.
func ProvideFundamentalsUseCase(
	cfg *config.Config,
	market *yahoo.Client,
	cacheSvc cache.Service,
	m domsvc.Metrics,
	log *logger.Logger,
) *usecase.FundamentalsUseCase {
	return usecase.NewFundamentalsUseCase(market, market, cacheSvc, m, log, cfg.MarketData.CacheTTL)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	log *logger.Logger,
	insights *usecase.InsightUseCase,
	movers *usecase.MoversUseCase,
	fundamentals *usecase.FundamentalsUseCase,
	cacheSvc cache.Service,
) xhttp.Handler {
	return api.NewInsightsHandler(log, insights, movers, fundamentals, cacheSvc, api.ChartOptions{
		Width:    cfg.Chart.Width,
		Height:   cfg.Chart.Height,
		CacheTTL: cfg.Chart.CacheTTL,
	})
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *server.App {
	return server.New(cfg, log, handler, cacheSvc)
}
