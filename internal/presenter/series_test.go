package presenter

import (
	"math"
	"testing"
	"time"

	"FinSight/internal/domain/models"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestBuildChartSeries(t *testing.T) {
	series := models.TimeSeries{Ticker: "AAPL", Records: []models.PriceRecord{
		{Date: day(0), Close: 100},
		{Date: day(1), Close: 102},
		{Date: day(2), Close: 104},
	}}
	forecast := &models.ForecastResult{
		HistoricalFit: []models.FitPoint{
			{Date: day(0), Predicted: 100},
			{Date: day(1), Predicted: 102},
			{Date: day(2), Predicted: 104},
		},
		FutureProjection: []models.ProjectedPoint{
			{OffsetDays: 3, Predicted: 106},
			{OffsetDays: 4, Predicted: 108},
		},
	}

	got := BuildChartSeries(series, forecast)
	if len(got.Historical) != 3 || len(got.Projected) != 2 {
		t.Fatalf("lengths = %d/%d, want 3/2", len(got.Historical), len(got.Projected))
	}
	if got.Historical[0].X != "2026-08-03" || got.Historical[0].Y != 100 {
		t.Errorf("historical[0] = %+v", got.Historical[0])
	}
	if got.Projected[0].X != "2026-08-06" || got.Projected[0].Y != 106 {
		t.Errorf("projected[0] = %+v", got.Projected[0])
	}
	if got.Projected[1].X != "2026-08-07" {
		t.Errorf("projected[1].X = %q", got.Projected[1].X)
	}
}

func TestBuildChartSeriesNilForecast(t *testing.T) {
	got := BuildChartSeries(models.TimeSeries{}, nil)
	if got.Historical != nil || got.Projected != nil {
		t.Fatalf("got %+v, want zero value", got)
	}
}

func TestSummaryPercentages(t *testing.T) {
	tally := models.SentimentTally{
		models.SentimentPositive: 2,
		models.SentimentNeutral:  1,
		models.SentimentNegative: 0,
	}
	got := SummaryPercentages(tally)

	var sum float64
	for _, v := range got {
		sum += v
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100: %v", sum, got)
	}
	if got["Positive"] != 66.67 {
		t.Errorf("positive = %v, want 66.67", got["Positive"])
	}
	if got["Negative"] != 0 {
		t.Errorf("negative = %v, want 0", got["Negative"])
	}
}

func TestSummaryPercentagesEmpty(t *testing.T) {
	got := SummaryPercentages(models.NewSentimentTally())
	if len(got) != 3 {
		t.Fatalf("got %d categories, want 3", len(got))
	}
	for cat, v := range got {
		if v != 0 {
			t.Errorf("%s = %v, want 0", cat, v)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	series := models.TimeSeries{Ticker: "AAPL", Records: []models.PriceRecord{
		{Date: day(0), Close: 100},
		{Date: day(1), Close: 102},
		{Date: day(2), Close: 104},
	}}
	chart := models.ChartSeries{
		Projected: []models.ChartPoint{
			{X: "2026-08-06", Y: 106},
			{X: "2026-08-07", Y: 108},
		},
	}

	png, err := RenderPNG(series, chart, RenderOptions{Width: 400, Height: 200})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty image")
	}
	// PNG signature
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Errorf("output is not a PNG, first bytes: %v", png[:4])
	}
}

func TestRenderPNGTooShort(t *testing.T) {
	series := models.TimeSeries{Ticker: "AAPL", Records: []models.PriceRecord{
		{Date: day(0), Close: 100},
	}}
	if _, err := RenderPNG(series, models.ChartSeries{}, RenderOptions{}); err == nil {
		t.Fatal("expected error for single-point series")
	}
}
