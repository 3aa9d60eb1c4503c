package models

// InsightRequest asks for one full pipeline run.
type InsightRequest struct {
	Ticker  string `query:"ticker" validate:"required,min=1,max=12"`
	Horizon int    `query:"horizon" default:"30" validate:"gte=1,lte=365"`
	Limit   int    `query:"limit" default:"20" validate:"gte=0,lte=50"`
	Period  string `query:"period"`
}

// ForecastRequest asks for price history plus the fitted projection.
type ForecastRequest struct {
	Ticker  string `query:"ticker" validate:"required,min=1,max=12"`
	Horizon int    `query:"horizon" default:"30" validate:"gte=1,lte=365"`
	Period  string `query:"period"`
}

// SentimentRequest asks for the headline sentiment breakdown.
type SentimentRequest struct {
	Ticker string `query:"ticker" validate:"required,min=1,max=12"`
	Limit  int    `query:"limit" default:"20" validate:"gte=1,lte=50"`
}

// FundamentalsRequest asks for the valuation snapshot of one ticker.
type FundamentalsRequest struct {
	Ticker string `query:"ticker" validate:"required,min=1,max=12"`
}

// ChartRequest asks for a rendered PNG of history plus projection.
type ChartRequest struct {
	Ticker  string `query:"ticker" validate:"required,min=1,max=12"`
	Horizon int    `query:"horizon" default:"30" validate:"gte=1,lte=365"`
	Period  string `query:"period"`
}
