package models

import "time"

// ChartPoint is one (x, y) point of a chart series. X is an ISO date for
// both historical and projected points so the two series share an axis.
type ChartPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// ChartSeries carries the two renderable series of a forecast, kept
// separate so the consumer can style them differently.
type ChartSeries struct {
	Historical []ChartPoint `json:"historical"`
	Projected  []ChartPoint `json:"projected"`
}

// Indicators holds the latest values of the standard technical indicators
// computed over the fetched closes.
type Indicators struct {
	SMA20          float64 `json:"sma_20"`
	BollingerUpper float64 `json:"bollinger_upper"`
	BollingerLower float64 `json:"bollinger_lower"`
	RSI14          float64 `json:"rsi_14"`
	MACD           float64 `json:"macd"`
	MACDSignal     float64 `json:"macd_signal"`
	MACDHist       float64 `json:"macd_hist"`
}

// RecommendationAction is the label for a composite buy/hold/sell call.
type RecommendationAction string

const (
	ActionStrongBuy  RecommendationAction = "Strong Buy"
	ActionBuy        RecommendationAction = "Buy"
	ActionHold       RecommendationAction = "Hold"
	ActionSell       RecommendationAction = "Sell"
	ActionStrongSell RecommendationAction = "Strong Sell"
)

// Recommendation blends forecast momentum and headline tone into one call.
type Recommendation struct {
	Action         RecommendationAction `json:"action"`
	Composite      float64              `json:"composite"`
	Confidence     float64              `json:"confidence"`
	ForecastScore  float64              `json:"forecast_score"`
	SentimentScore float64              `json:"sentiment_score"`
}

// Mover is one watchlist entry with its day-over-day change.
type Mover struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Movers groups the top gainers and losers of a watchlist.
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// Insight is the full response of one pipeline run for a ticker.
type Insight struct {
	Ticker         string             `json:"ticker"`
	GeneratedAt    time.Time          `json:"generated_at"`
	LastClose      float64            `json:"last_close"`
	Forecast       *ForecastResult    `json:"forecast,omitempty"`
	Chart          *ChartSeries       `json:"chart,omitempty"`
	Indicators     *Indicators        `json:"indicators,omitempty"`
	Headlines      []Headline         `json:"headlines,omitempty"`
	Sentiment      SentimentTally     `json:"sentiment,omitempty"`
	SentimentPct   map[string]float64 `json:"sentiment_pct,omitempty"`
	Recommendation *Recommendation    `json:"recommendation,omitempty"`
	Errors         map[string]string  `json:"errors,omitempty"`
}
