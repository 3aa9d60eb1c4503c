package analytics

import (
	"fmt"

	"FinSight/internal/domain/models"
	"FinSight/pkg/util"
)

// ForecastEngine fits an ordinary least-squares line through (day offset,
// close) pairs and extrapolates it over a future horizon.
type ForecastEngine struct{}

func NewForecastEngine() *ForecastEngine { return &ForecastEngine{} }

// FitAndProject encodes each record's date as a whole-day offset from the
// series' first date, fits close = intercept + slope*offset minimizing
// squared residuals, reconstructs the fit for every historical offset, and
// extrapolates offsets [last+1 .. last+horizonDays].
//
// Fewer than two distinct offsets yield models.ErrInsufficientData. A series
// of identical closes degenerates to a constant line, which is valid.
// Projected prices are not clamped at zero.
func (e *ForecastEngine) FitAndProject(series models.TimeSeries, horizonDays int) (models.ForecastResult, error) {
	if horizonDays < 1 {
		return models.ForecastResult{}, fmt.Errorf("horizon must be >= 1, got %d", horizonDays)
	}
	if len(series.Records) < 2 {
		return models.ForecastResult{}, models.ErrInsufficientData
	}

	base := series.Records[0].Date
	offsets := make([]int, len(series.Records))
	distinct := make(map[int]struct{}, len(series.Records))
	for i, r := range series.Records {
		offsets[i] = util.DayOffset(base, r.Date)
		distinct[offsets[i]] = struct{}{}
	}
	if len(distinct) < 2 {
		return models.ForecastResult{}, models.ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, r := range series.Records {
		x := float64(offsets[i])
		y := r.Close
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	n := float64(len(series.Records))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// unreachable with >= 2 distinct offsets, kept as a numeric guard
		return models.ForecastResult{}, models.ErrInsufficientData
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	result := models.ForecastResult{
		Ticker: series.Ticker,
		Params: models.ModelParams{Intercept: intercept, Slope: slope},
	}

	result.HistoricalFit = make([]models.FitPoint, len(series.Records))
	for i, r := range series.Records {
		result.HistoricalFit[i] = models.FitPoint{
			Date:      r.Date,
			Predicted: intercept + slope*float64(offsets[i]),
		}
	}

	lastOffset := offsets[len(offsets)-1]
	result.FutureProjection = make([]models.ProjectedPoint, horizonDays)
	for i := 0; i < horizonDays; i++ {
		offset := lastOffset + 1 + i
		result.FutureProjection[i] = models.ProjectedPoint{
			OffsetDays: offset,
			Predicted:  intercept + slope*float64(offset),
		}
	}

	return result, nil
}
