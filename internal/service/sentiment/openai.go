package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
)

const classifyPrompt = "You label the sentiment of a single financial news headline. " +
	"Reply with exactly one word: Positive, Negative, or Neutral."

// OpenAIClassifier labels headlines with a chat completion call. It falls
// back to the lexicon classifier when the API errors, so a flaky upstream
// degrades quality rather than failing the tally.
type OpenAIClassifier struct {
	client   oa.Client
	model    string
	timeout  time.Duration
	fallback *LexiconClassifier
}

func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAIClassifier {
	if model == "" {
		model = oa.ChatModelGPT4oMini
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenAIClassifier{
		client:   oa.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		timeout:  timeout,
		fallback: NewLexicon(),
	}
}

func (o *OpenAIClassifier) Classify(ctx context.Context, text string) (models.SentimentCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: o.model,
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(classifyPrompt),
			oa.UserMessage(text),
		},
	})
	if err != nil {
		return o.fallback.Classify(ctx, text)
	}
	if len(resp.Choices) == 0 {
		return o.fallback.Classify(ctx, text)
	}

	label := strings.TrimSpace(resp.Choices[0].Message.Content)
	cat := normalizeLabel(label)
	if !cat.Valid() {
		return "", fmt.Errorf("sentiment: %w: %q", models.ErrUnknownCategory, label)
	}
	return cat, nil
}

func normalizeLabel(label string) models.SentimentCategory {
	switch strings.ToLower(strings.Trim(label, " .\"'")) {
	case "positive":
		return models.SentimentPositive
	case "negative":
		return models.SentimentNegative
	case "neutral":
		return models.SentimentNeutral
	default:
		return models.SentimentCategory(label)
	}
}

var _ domsvc.SentimentClassifier = (*OpenAIClassifier)(nil)
