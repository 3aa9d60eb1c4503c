package models

import "time"

// PriceRecord represents one daily OHLCV (Open, High, Low, Close, Volume) bar.
type PriceRecord struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// TimeSeries is an ordered sequence of daily price records for one ticker
// over one date range. Dates are unique and strictly ascending. The series
// is treated as immutable once fetched.
type TimeSeries struct {
	Ticker  string        `json:"ticker"`
	Records []PriceRecord `json:"records"`
}

// Len returns the number of records.
func (s TimeSeries) Len() int { return len(s.Records) }

// Closes returns the closing prices in order.
func (s TimeSeries) Closes() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Close
	}
	return out
}

// First returns the earliest record; ok is false for an empty series.
func (s TimeSeries) First() (PriceRecord, bool) {
	if len(s.Records) == 0 {
		return PriceRecord{}, false
	}
	return s.Records[0], true
}

// Last returns the latest record; ok is false for an empty series.
func (s TimeSeries) Last() (PriceRecord, bool) {
	if len(s.Records) == 0 {
		return PriceRecord{}, false
	}
	return s.Records[len(s.Records)-1], true
}
