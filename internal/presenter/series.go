package presenter

import (
	"math"

	"FinSight/internal/domain/models"
	"FinSight/pkg/util"
)

const dateLayout = "2006-01-02"

// BuildChartSeries flattens a forecast into the two renderable series. The
// historical series carries the fitted values on the actual dates; the
// projected series converts each future day offset back to a calendar date
// off the series' first record so both share one date axis.
func BuildChartSeries(series models.TimeSeries, forecast *models.ForecastResult) models.ChartSeries {
	var out models.ChartSeries
	if forecast == nil {
		return out
	}

	out.Historical = make([]models.ChartPoint, len(forecast.HistoricalFit))
	for i, p := range forecast.HistoricalFit {
		out.Historical[i] = models.ChartPoint{
			X: p.Date.UTC().Format(dateLayout),
			Y: p.Predicted,
		}
	}

	first, ok := series.First()
	if !ok {
		return out
	}
	base := util.Day(first.Date)

	out.Projected = make([]models.ChartPoint, len(forecast.FutureProjection))
	for i, p := range forecast.FutureProjection {
		out.Projected[i] = models.ChartPoint{
			X: base.AddDate(0, 0, p.OffsetDays).Format(dateLayout),
			Y: p.Predicted,
		}
	}
	return out
}

// ClosePoints maps the raw closes to chart points on their actual dates.
func ClosePoints(series models.TimeSeries) []models.ChartPoint {
	out := make([]models.ChartPoint, len(series.Records))
	for i, r := range series.Records {
		out[i] = models.ChartPoint{X: r.Date.UTC().Format(dateLayout), Y: r.Close}
	}
	return out
}

// SummaryPercentages converts a tally to per-category percentages. The three
// values sum to 100 for a non-empty tally; an empty tally maps every
// category to zero rather than dividing by zero.
func SummaryPercentages(tally models.SentimentTally) map[string]float64 {
	out := map[string]float64{
		string(models.SentimentPositive): 0,
		string(models.SentimentNeutral):  0,
		string(models.SentimentNegative): 0,
	}
	total := tally.Total()
	if total == 0 {
		return out
	}

	// the last category absorbs rounding so the shares always sum to 100
	categories := []models.SentimentCategory{
		models.SentimentPositive,
		models.SentimentNeutral,
		models.SentimentNegative,
	}
	var acc float64
	for i, cat := range categories {
		if i == len(categories)-1 {
			out[string(cat)] = round2(100 - acc)
			break
		}
		pct := round2(float64(tally[cat]) / float64(total) * 100)
		out[string(cat)] = pct
		acc += pct
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
