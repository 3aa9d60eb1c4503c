package models

import "time"

// Headline is one news item; PublishedAt may be zero when the feed omits it.
type Headline struct {
	Text        string    `json:"text"`
	Link        string    `json:"link,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// SentimentCategory is one of the three fixed sentiment labels.
type SentimentCategory string

const (
	SentimentPositive SentimentCategory = "Positive"
	SentimentNeutral  SentimentCategory = "Neutral"
	SentimentNegative SentimentCategory = "Negative"
)

// Valid reports whether the category is one of the fixed three.
func (c SentimentCategory) Valid() bool {
	switch c {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// SentimentTally maps each category to its headline count. Counts sum to
// the number of processed headlines.
type SentimentTally map[SentimentCategory]int

// NewSentimentTally returns a tally with all three categories at zero.
func NewSentimentTally() SentimentTally {
	return SentimentTally{
		SentimentPositive: 0,
		SentimentNeutral:  0,
		SentimentNegative: 0,
	}
}

// Total returns the number of tallied headlines.
func (t SentimentTally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}
