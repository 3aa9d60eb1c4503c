package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"FinSight/internal/domain/models"
	"FinSight/internal/services/analytics"
	"FinSight/pkg/cache"
	"FinSight/pkg/logger"
)

// --- fakes ---

type fakeMarket struct {
	series    map[string]models.TimeSeries
	err       error
	calls     int
	lastStart time.Time
	lastEnd   time.Time
}

func (f *fakeMarket) Fetch(_ context.Context, ticker string, start, end time.Time) (models.TimeSeries, error) {
	f.calls++
	f.lastStart, f.lastEnd = start, end
	if f.err != nil {
		return models.TimeSeries{}, f.err
	}
	s, ok := f.series[ticker]
	if !ok {
		return models.TimeSeries{}, models.ErrDataUnavailable
	}
	return s, nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, query string) (string, error) {
	return strings.ToUpper(strings.TrimSpace(query)), nil
}

type fakeNews struct {
	headlines []models.Headline
	err       error
}

func (f *fakeNews) Headlines(_ context.Context, _ string, limit int) ([]models.Headline, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.headlines) > limit {
		return f.headlines[:limit], nil
	}
	return f.headlines, nil
}

type fakeClassifier struct {
	labels map[string]models.SentimentCategory
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (models.SentimentCategory, error) {
	if cat, ok := f.labels[text]; ok {
		return cat, nil
	}
	return models.SentimentNeutral, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordPipelineRun(string, string) {}
func (nopMetrics) RecordFetchError(string)          {}
func (nopMetrics) RecordLastClose(string, float64)  {}
func (nopMetrics) RecordLatency(string, float64)    {}
func (nopMetrics) RecordCacheLookup(string, bool)   {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func risingSeries(ticker string, n int) models.TimeSeries {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	records := make([]models.PriceRecord, n)
	for i := 0; i < n; i++ {
		records[i] = models.PriceRecord{
			Date:  base.AddDate(0, 0, i),
			Close: 100 + float64(i)*2,
		}
	}
	return models.TimeSeries{Ticker: ticker, Records: records}
}

func newTestUC(t *testing.T, market *fakeMarket, news *fakeNews, cls *fakeClassifier) *InsightUseCase {
	t.Helper()
	if cls == nil {
		cls = &fakeClassifier{}
	}
	return NewInsightUseCase(
		fakeResolver{},
		market,
		news,
		analytics.NewForecastEngine(),
		NewSentimentSummarizer(cls),
		cache.NewMemoryCache(),
		nopMetrics{},
		testLogger(t),
		InsightOptions{Period: "30d"},
	)
}

// --- summarizer ---

func TestSummarizeEmpty(t *testing.T) {
	uc := NewSentimentSummarizer(&fakeClassifier{})
	tally, err := uc.Summarize(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(tally) != 3 || tally.Total() != 0 {
		t.Fatalf("tally = %v, want three zeroed categories", tally)
	}
}

func TestSummarizeCounts(t *testing.T) {
	cls := &fakeClassifier{labels: map[string]models.SentimentCategory{
		"up":   models.SentimentPositive,
		"down": models.SentimentNegative,
		"flat": models.SentimentNeutral,
		"up2":  models.SentimentPositive,
	}}
	uc := NewSentimentSummarizer(cls)
	tally, err := uc.Summarize(context.Background(), []models.Headline{
		{Text: "up"}, {Text: "down"}, {Text: "flat"}, {Text: "up2"},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if tally[models.SentimentPositive] != 2 || tally[models.SentimentNegative] != 1 || tally[models.SentimentNeutral] != 1 {
		t.Fatalf("tally = %v", tally)
	}
	if tally.Total() != 4 {
		t.Fatalf("total = %d, want 4", tally.Total())
	}
}

type badClassifier struct{}

func (badClassifier) Classify(context.Context, string) (models.SentimentCategory, error) {
	return models.SentimentCategory("Mixed"), nil
}

func TestSummarizeUnknownCategory(t *testing.T) {
	uc := NewSentimentSummarizer(badClassifier{})
	_, err := uc.Summarize(context.Background(), []models.Headline{{Text: "x"}})
	if !errors.Is(err, models.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

// --- insight pipeline ---

func TestInsightHappyPath(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{"AAPL": risingSeries("AAPL", 40)}}
	news := &fakeNews{headlines: []models.Headline{{Text: "up"}, {Text: "down"}}}
	cls := &fakeClassifier{labels: map[string]models.SentimentCategory{
		"up":   models.SentimentPositive,
		"down": models.SentimentNegative,
	}}
	uc := newTestUC(t, market, news, cls)

	got, err := uc.Insight(context.Background(), InsightParams{Ticker: "aapl", Horizon: 10})
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if got.Ticker != "AAPL" {
		t.Errorf("ticker = %q", got.Ticker)
	}
	if got.Forecast == nil {
		t.Fatal("missing forecast")
	}
	if len(got.Forecast.FutureProjection) != 10 {
		t.Errorf("projection length = %d, want 10", len(got.Forecast.FutureProjection))
	}
	if got.LastClose != 178 {
		t.Errorf("last close = %v, want 178", got.LastClose)
	}
	if got.Sentiment.Total() != 2 {
		t.Errorf("sentiment total = %d, want 2", got.Sentiment.Total())
	}
	if got.Indicators == nil || got.Indicators.SMA20 == 0 {
		t.Errorf("indicators missing: %+v", got.Indicators)
	}
	if got.Recommendation == nil {
		t.Error("missing recommendation")
	} else if got.Recommendation.Action == models.ActionStrongSell {
		t.Errorf("rising series recommended %s", got.Recommendation.Action)
	}
	if got.Errors != nil {
		t.Errorf("unexpected branch errors: %v", got.Errors)
	}
}

func TestInsightPartialOnNewsFailure(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{"AAPL": risingSeries("AAPL", 40)}}
	news := &fakeNews{err: errors.New("feed down")}
	uc := newTestUC(t, market, news, nil)

	got, err := uc.Insight(context.Background(), InsightParams{Ticker: "AAPL", Horizon: 5})
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if got.Forecast == nil {
		t.Fatal("forecast should survive a news failure")
	}
	if got.Errors["sentiment"] == "" {
		t.Fatalf("expected sentiment branch error, got %v", got.Errors)
	}
}

func TestInsightUnknownTicker(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{}}
	uc := newTestUC(t, market, &fakeNews{}, nil)

	_, err := uc.Insight(context.Background(), InsightParams{Ticker: "NOPE", Horizon: 5})
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestInsightDefaultHorizon(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{"AAPL": risingSeries("AAPL", 40)}}
	uc := newTestUC(t, market, &fakeNews{}, nil)

	got, err := uc.Insight(context.Background(), InsightParams{Ticker: "AAPL"})
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if len(got.Forecast.FutureProjection) != 30 {
		t.Errorf("projection length = %d, want default 30", len(got.Forecast.FutureProjection))
	}
}

func TestInsightBadHorizon(t *testing.T) {
	uc := newTestUC(t, &fakeMarket{}, &fakeNews{}, nil)
	if _, err := uc.Insight(context.Background(), InsightParams{Ticker: "AAPL", Horizon: -1}); err == nil {
		t.Fatal("expected error for negative horizon")
	}
	if _, err := uc.Insight(context.Background(), InsightParams{Ticker: "AAPL", Horizon: 9999}); err == nil {
		t.Fatal("expected error for horizon above max")
	}
}

func TestPriceSeriesCached(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{"AAPL": risingSeries("AAPL", 5)}}
	uc := newTestUC(t, market, &fakeNews{}, nil)

	for i := 0; i < 3; i++ {
		if _, err := uc.PriceSeries(context.Background(), "AAPL", ""); err != nil {
			t.Fatalf("PriceSeries: %v", err)
		}
	}
	if market.calls != 1 {
		t.Fatalf("provider called %d times, want 1 (cache)", market.calls)
	}
}

func TestPriceSeriesPeriodWindow(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{"AAPL": risingSeries("AAPL", 5)}}
	uc := newTestUC(t, market, &fakeNews{}, nil)

	if _, err := uc.PriceSeries(context.Background(), "AAPL", "7d"); err != nil {
		t.Fatalf("PriceSeries: %v", err)
	}
	window := market.lastEnd.Sub(market.lastStart)
	if window < 6*24*time.Hour || window > 8*24*time.Hour {
		t.Fatalf("fetch window = %v, want ~7 days", window)
	}
}

func TestPriceSeriesPeriodCacheKeys(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{"AAPL": risingSeries("AAPL", 5)}}
	uc := newTestUC(t, market, &fakeNews{}, nil)

	for _, period := range []string{"7d", "30d", "7d"} {
		if _, err := uc.PriceSeries(context.Background(), "AAPL", period); err != nil {
			t.Fatalf("PriceSeries(%q): %v", period, err)
		}
	}
	if market.calls != 2 {
		t.Fatalf("provider called %d times, want 2 (one per period)", market.calls)
	}
}

func TestPeriodFallback(t *testing.T) {
	uc := newTestUC(t, &fakeMarket{}, &fakeNews{}, nil)
	if got := uc.Period(""); got != "30d" {
		t.Fatalf("Period(\"\") = %q, want configured default", got)
	}
	if got := uc.Period("6mo"); got != "6mo" {
		t.Fatalf("Period(\"6mo\") = %q, want requested value", got)
	}
}

// --- movers ---

func TestMoversRanking(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	mk := func(ticker string, prev, last float64) models.TimeSeries {
		return models.TimeSeries{Ticker: ticker, Records: []models.PriceRecord{
			{Date: day(0), Close: prev},
			{Date: day(1), Close: last},
		}}
	}
	market := &fakeMarket{series: map[string]models.TimeSeries{
		"UP":   mk("UP", 100, 110),
		"UP2":  mk("UP2", 100, 105),
		"DOWN": mk("DOWN", 100, 90),
		"FLAT": mk("FLAT", 100, 100),
	}}
	uc := NewMoversUseCase(market, cache.NewMemoryCache(), nopMetrics{}, testLogger(t),
		[]string{"UP", "UP2", "DOWN", "FLAT", "MISSING"}, 2, time.Minute)

	got, err := uc.Movers(context.Background())
	if err != nil {
		t.Fatalf("Movers: %v", err)
	}
	if len(got.Gainers) != 2 || got.Gainers[0].Ticker != "UP" || got.Gainers[1].Ticker != "UP2" {
		t.Fatalf("gainers = %+v", got.Gainers)
	}
	if len(got.Losers) != 1 || got.Losers[0].Ticker != "DOWN" {
		t.Fatalf("losers = %+v", got.Losers)
	}
	if got.Losers[0].ChangePct >= 0 {
		t.Errorf("loser change = %v, want negative", got.Losers[0].ChangePct)
	}
}

func TestMoversAllUnavailable(t *testing.T) {
	market := &fakeMarket{series: map[string]models.TimeSeries{}}
	uc := NewMoversUseCase(market, cache.NewMemoryCache(), nopMetrics{}, testLogger(t),
		[]string{"A", "B"}, 5, time.Minute)

	if _, err := uc.Movers(context.Background()); !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}
