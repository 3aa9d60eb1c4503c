package analytics

import (
	"math"

	"FinSight/internal/domain/models"
)

// Recommend blends the projected price change with the headline tone into a
// single call. The forecast score is the projected percent change at the end
// of the horizon, capped to [-10, 10]; the sentiment score is the signed
// share of non-neutral headlines scaled to the same range. The composite is
// a 60/40 weighting of the two.
func Recommend(forecast *models.ForecastResult, lastClose float64, tally models.SentimentTally) *models.Recommendation {
	if forecast == nil || len(forecast.FutureProjection) == 0 || lastClose == 0 {
		return nil
	}

	final := forecast.FutureProjection[len(forecast.FutureProjection)-1].Predicted
	changePct := (final - lastClose) / lastClose * 100
	forecastScore := clamp(changePct, -10, 10)

	var sentimentScore float64
	if total := tally.Total(); total > 0 {
		net := float64(tally[models.SentimentPositive] - tally[models.SentimentNegative])
		sentimentScore = net / float64(total) * 10
	}

	composite := 0.6*forecastScore + 0.4*sentimentScore

	rec := &models.Recommendation{
		Composite:      composite,
		Confidence:     math.Min(math.Abs(composite)/10, 1),
		ForecastScore:  forecastScore,
		SentimentScore: sentimentScore,
	}
	switch {
	case composite >= 5:
		rec.Action = models.ActionStrongBuy
	case composite >= 1.5:
		rec.Action = models.ActionBuy
	case composite <= -5:
		rec.Action = models.ActionStrongSell
	case composite <= -1.5:
		rec.Action = models.ActionSell
	default:
		rec.Action = models.ActionHold
	}
	return rec
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
