package sentiment

import (
	"context"
	"strings"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
)

// polarity scores for words that show up in finance headlines.
// Values are in [-1, 1]; a headline's score is the mean over matched words.
var lexicon = map[string]float64{
	// positive
	"gain": 0.5, "gains": 0.5, "surge": 0.8, "surges": 0.8, "soar": 0.8,
	"soars": 0.8, "rally": 0.6, "rallies": 0.6, "jump": 0.5, "jumps": 0.5,
	"rise": 0.4, "rises": 0.4, "climb": 0.4, "climbs": 0.4, "record": 0.5,
	"beat": 0.6, "beats": 0.6, "strong": 0.5, "growth": 0.5, "profit": 0.5,
	"profits": 0.5, "upgrade": 0.6, "upgrades": 0.6, "upgraded": 0.6,
	"bullish": 0.7, "outperform": 0.6, "boost": 0.5, "boosts": 0.5,
	"win": 0.5, "wins": 0.5, "positive": 0.4, "good": 0.4, "great": 0.6,
	"success": 0.5, "successful": 0.5, "optimistic": 0.5, "high": 0.2,
	"higher": 0.3, "best": 0.6, "top": 0.3, "recovery": 0.4, "recovers": 0.4,
	"expand": 0.3, "expands": 0.3, "approval": 0.4, "approves": 0.4,

	// negative
	"loss": -0.5, "losses": -0.5, "slump": -0.7, "slumps": -0.7,
	"plunge": -0.8, "plunges": -0.8, "crash": -0.9, "crashes": -0.9,
	"fall": -0.4, "falls": -0.4, "drop": -0.4, "drops": -0.4,
	"decline": -0.4, "declines": -0.4, "tumble": -0.6, "tumbles": -0.6,
	"sink": -0.6, "sinks": -0.6, "weak": -0.5, "miss": -0.5, "misses": -0.5,
	"downgrade": -0.6, "downgrades": -0.6, "downgraded": -0.6,
	"bearish": -0.7, "underperform": -0.6, "cut": -0.4, "cuts": -0.4,
	"warn": -0.5, "warns": -0.5, "warning": -0.5, "lawsuit": -0.6,
	"probe": -0.4, "fraud": -0.8, "fears": -0.5, "fear": -0.5,
	"risk": -0.3, "risks": -0.3, "negative": -0.4, "bad": -0.5,
	"worst": -0.7, "low": -0.2, "lower": -0.3, "layoffs": -0.6,
	"recession": -0.6, "bankruptcy": -0.9, "default": -0.6,
	"selloff": -0.6, "fail": -0.6, "fails": -0.6, "fine": -0.3,
	"fined": -0.4, "concern": -0.4, "concerns": -0.4,
}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "without": {}, "doesn't": {}, "won't": {},
}

// LexiconClassifier scores text against a fixed polarity lexicon. Scores
// within (-0.1, 0.1) are treated as neutral, matching the usual polarity
// cutoff for headline tallies.
type LexiconClassifier struct {
	threshold float64
}

func NewLexicon() *LexiconClassifier {
	return &LexiconClassifier{threshold: 0.1}
}

func (l *LexiconClassifier) Classify(_ context.Context, text string) (models.SentimentCategory, error) {
	score := Polarity(text)
	switch {
	case score >= l.threshold:
		return models.SentimentPositive, nil
	case score <= -l.threshold:
		return models.SentimentNegative, nil
	default:
		return models.SentimentNeutral, nil
	}
}

// Polarity returns the mean polarity of matched words in text, with a
// preceding negator flipping a word's sign. Text with no matches scores 0.
func Polarity(text string) float64 {
	words := tokenize(text)
	var sum float64
	var n int
	negate := false
	for _, w := range words {
		if _, ok := negators[w]; ok {
			negate = true
			continue
		}
		if p, ok := lexicon[w]; ok {
			if negate {
				p = -p
			}
			sum += p
			n++
		}
		negate = false
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '\''
	})
}

var _ domsvc.SentimentClassifier = (*LexiconClassifier)(nil)
