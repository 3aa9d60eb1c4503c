package service

import (
	"context"
	"time"

	"FinSight/internal/domain/models"
)

// MarketDataProvider fetches daily OHLCV history for one ticker and range.
// It returns models.ErrDataUnavailable when the source has no records for
// the symbol/range.
type MarketDataProvider interface {
	Fetch(ctx context.Context, ticker string, start, end time.Time) (models.TimeSeries, error)
}

// FundamentalsProvider fetches valuation and profile metrics for one ticker.
// It returns models.ErrDataUnavailable when the source knows nothing about
// the symbol.
type FundamentalsProvider interface {
	Fundamentals(ctx context.Context, ticker string) (models.Fundamentals, error)
}

// TickerResolver maps a free-form company name or symbol to a ticker.
type TickerResolver interface {
	Resolve(ctx context.Context, query string) (string, error)
}

// NewsProvider returns recent cleaned headlines for a topic.
type NewsProvider interface {
	Headlines(ctx context.Context, topic string, limit int) ([]models.Headline, error)
}

// SentimentClassifier labels one text with a sentiment category. It is an
// injected capability so tests and alternative backends can substitute it.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (models.SentimentCategory, error)
}

// Metrics records operational metrics for the pipeline.
type Metrics interface {
	RecordPipelineRun(operation, status string)
	RecordFetchError(source string)
	RecordLastClose(ticker string, price float64)
	RecordLatency(operation string, seconds float64)
	RecordCacheLookup(kind string, hit bool)
}
