// Package sentiment provides a language-model backed market sentiment reading.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

const systemPrompt = "You are a crypto market analyst for a DAO treasury. Always answer with a single JSON object and nothing else."

const userPrompt = `Estimate the current overall crypto market mood.

Return JSON:
{
    "sentiment": float between -50 (extreme fear) and 50 (extreme greed),
    "fearGreed": float between 0 and 100
}`

// Provider asks an OpenAI chat model for the sentiment reading and delegates every other
// signal to a fallback provider. Any request or parse failure also falls back.
type Provider struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	fallback treasury.SignalProvider
}

// NewProvider creates a Provider. An empty baseURL uses the public OpenAI endpoint.
func NewProvider(apiKey, model, baseURL string, fallback treasury.SignalProvider) *Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Provider{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		timeout:  20 * time.Second,
		fallback: fallback,
	}
}

func (p *Provider) Momentum(now time.Time) (float64, float64) {
	return p.fallback.Momentum(now)
}

func (p *Provider) Uniform() float64 {
	return p.fallback.Uniform()
}

func (p *Provider) Sentiment(ctx context.Context) (float64, float64) {
	sentiment, fearGreed, err := p.ask(ctx)
	if err != nil {
		slog.Warn("sentiment model unavailable, using fallback", "error", err)
		return p.fallback.Sentiment(ctx)
	}
	return sentiment, fearGreed
}

func (p *Provider) ask(ctx context.Context) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, 0, fmt.Errorf("no response from openai")
	}

	var reading struct {
		Sentiment *float64 `json:"sentiment"`
		FearGreed *float64 `json:"fearGreed"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```json"), "```")
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &reading); err != nil {
		return 0, 0, fmt.Errorf("failed to parse sentiment: %w", err)
	}
	if reading.Sentiment == nil || reading.FearGreed == nil {
		return 0, 0, fmt.Errorf("sentiment response is missing fields")
	}

	return clamp(*reading.Sentiment, -50, 50), clamp(*reading.FearGreed, 0, 100), nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
