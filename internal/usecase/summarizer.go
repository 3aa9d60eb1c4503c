package usecase

import (
	"context"
	"fmt"
	"sync"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
)

// SentimentSummarizerUseCase tallies headline sentiment with an injected
// classifier. Headlines are classified concurrently with a bounded pool so
// a slow backend does not serialize the whole batch.
type SentimentSummarizerUseCase struct {
	classifier domsvc.SentimentClassifier
	workers    int
}

func NewSentimentSummarizer(classifier domsvc.SentimentClassifier) *SentimentSummarizerUseCase {
	return &SentimentSummarizerUseCase{classifier: classifier, workers: 4}
}

// Summarize classifies every headline and returns counts per category. An
// empty input returns a zero tally for all three categories. A classifier
// label outside the fixed set fails the whole tally with ErrUnknownCategory.
func (uc *SentimentSummarizerUseCase) Summarize(ctx context.Context, headlines []models.Headline) (models.SentimentTally, error) {
	tally := models.NewSentimentTally()
	if len(headlines) == 0 {
		return tally, nil
	}

	type result struct {
		cat models.SentimentCategory
		err error
	}

	jobs := make(chan models.Headline)
	results := make(chan result, len(headlines))
	var wg sync.WaitGroup

	workers := uc.workers
	if workers > len(headlines) {
		workers = len(headlines)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h := range jobs {
				cat, err := uc.classifier.Classify(ctx, h.Text)
				results <- result{cat, err}
			}
		}()
	}

	go func() {
		for _, h := range headlines {
			jobs <- h
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if !r.cat.Valid() {
			if firstErr == nil {
				firstErr = fmt.Errorf("summarize: label %q: %w", r.cat, models.ErrUnknownCategory)
			}
			continue
		}
		tally[r.cat]++
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return tally, nil
}
