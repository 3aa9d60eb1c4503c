package models

import "time"

// ModelParams holds the fitted least-squares line close = Intercept + Slope*offset,
// where offset is whole days from the first record of the series.
type ModelParams struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// FitPoint is a historical date with the model's reconstructed close.
type FitPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
}

// ProjectedPoint is a future day offset with the extrapolated close.
// OffsetDays counts from the first record of the fitted series.
type ProjectedPoint struct {
	OffsetDays int     `json:"offset_days"`
	Predicted  float64 `json:"predicted"`
}

// ForecastResult is derived entirely from one TimeSeries; it is superseded
// by the next forecast request and never persisted.
// FutureProjection always has exactly the requested horizon length.
// Predicted prices are not clamped at zero; the linear model has no domain floor.
type ForecastResult struct {
	Ticker           string           `json:"ticker"`
	Params           ModelParams      `json:"params"`
	HistoricalFit    []FitPoint       `json:"historical_fit"`
	FutureProjection []ProjectedPoint `json:"future_projection"`
}
