// Package chatgpt adapts the OpenAI chat completions API to the horoscope generator.
package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	"github.com/yanqian/ai-horoscope/internal/infra/llm"
	"github.com/yanqian/ai-horoscope/internal/infra/llm/tokens"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

const provider = "openai"

// Config holds the generation parameters.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Client calls the chat completions endpoint.
type Client struct {
	client    openai.Client
	cfg       Config
	estimator *tokens.Estimator
}

// NewClient builds an OpenAI backed generator.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai model is required")
	}
	// Unavailable providers fall back locally; no retries.
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		client:    openai.NewClient(opts...),
		cfg:       cfg,
		estimator: tokens.NewEstimator(cfg.Model),
	}, nil
}

// Generate sends the prompt and returns the first choice.
func (c *Client) Generate(ctx context.Context, prompt horoscope.Prompt) (horoscope.Generation, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
		Temperature: openai.Float(float64(c.cfg.Temperature)),
	})
	if err != nil {
		return horoscope.Generation{}, classify(err)
	}
	if len(resp.Choices) == 0 {
		return horoscope.Generation{}, llm.Classify(provider, errors.New("empty choices"), false)
	}

	usage := metrics.TokenUsage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return horoscope.Generation{}, llm.Classify(provider, fmt.Errorf("empty content, finish_reason=%s", resp.Choices[0].FinishReason), false)
	}
	if usage.IsZero() {
		usage.PromptTokens = c.estimator.Count(prompt.System) + c.estimator.Count(prompt.User)
		usage.CompletionTokens = c.estimator.Count(text)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return horoscope.Generation{Text: text, Usage: usage}, nil
}

// classify marks quota, rate limit and credential failures as unavailable.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		unavailable := llm.UnavailableStatus(apiErr.StatusCode) || apiErr.Code == "insufficient_quota"
		return llm.Classify(provider, fmt.Errorf("status=%d code=%s: %w", apiErr.StatusCode, apiErr.Code, err), unavailable)
	}
	return llm.Classify(provider, err, false)
}

var _ horoscope.Generator = (*Client)(nil)
