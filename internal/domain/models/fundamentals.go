package models

// CompanyProfile describes the business behind a ticker.
type CompanyProfile struct {
	Sector    string `json:"sector,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	Employees int    `json:"employees,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// Fundamentals is a snapshot of valuation and profitability metrics for one
// ticker. Metrics the source does not report stay at their zero value and are
// omitted from JSON.
type Fundamentals struct {
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Price         float64         `json:"price,omitempty"`
	MarketCap     float64         `json:"market_cap,omitempty"`
	RevenueTTM    float64         `json:"revenue_ttm,omitempty"`
	ProfitMargin  float64         `json:"profit_margin,omitempty"`
	TrailingPE    float64         `json:"trailing_pe,omitempty"`
	ForwardPE     float64         `json:"forward_pe,omitempty"`
	PEGRatio      float64         `json:"peg_ratio,omitempty"`
	EPS           float64         `json:"eps,omitempty"`
	Beta          float64         `json:"beta,omitempty"`
	DividendYield float64         `json:"dividend_yield,omitempty"`
	ReturnOnEq    float64         `json:"return_on_equity,omitempty"`
	DebtToEquity  float64         `json:"debt_to_equity,omitempty"`
	Profile       *CompanyProfile `json:"profile,omitempty"`
}
