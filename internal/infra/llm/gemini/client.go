// Package gemini adapts the Gemini API to the horoscope generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	"github.com/yanqian/ai-horoscope/internal/infra/llm"
	"github.com/yanqian/ai-horoscope/internal/infra/llm/tokens"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

const (
	provider     = "gemini"
	defaultModel = "gemini-2.0-flash"
)

// Config holds the generation parameters.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Client calls generateContent on the Gemini API.
type Client struct {
	client    *genai.Client
	cfg       Config
	estimator *tokens.Estimator
}

// NewClient builds a Gemini backed generator. OpenAI model names are
// replaced with the default Gemini model.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if !strings.HasPrefix(cfg.Model, "gemini") {
		cfg.Model = defaultModel
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, cfg: cfg, estimator: tokens.NewEstimator(cfg.Model)}, nil
}

// Generate sends the prompt with the persona as system instruction.
func (c *Client) Generate(ctx context.Context, prompt horoscope.Prompt) (horoscope.Generation, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model,
		genai.Text(prompt.User),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
			Temperature:       genai.Ptr(c.cfg.Temperature),
			MaxOutputTokens:   int32(c.cfg.MaxTokens),
		},
	)
	if err != nil {
		return horoscope.Generation{}, classify(err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return horoscope.Generation{}, llm.Classify(provider, errors.New("empty candidates"), false)
	}

	var usage metrics.TokenUsage
	if meta := resp.UsageMetadata; meta != nil {
		usage = metrics.TokenUsage{
			PromptTokens:     int(meta.PromptTokenCount),
			CompletionTokens: int(meta.CandidatesTokenCount),
			TotalTokens:      int(meta.TotalTokenCount),
		}
	}
	if usage.IsZero() {
		usage.PromptTokens = c.estimator.Count(prompt.System) + c.estimator.Count(prompt.User)
		usage.CompletionTokens = c.estimator.Count(text)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return horoscope.Generation{Text: text, Usage: usage}, nil
}

// classify marks RESOURCE_EXHAUSTED, rate limits and credential failures as unavailable.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyAPIError(*apiErrPtr, err)
	}
	return llm.Classify(provider, err, false)
}

func classifyAPIError(apiErr genai.APIError, err error) error {
	unavailable := llm.UnavailableStatus(apiErr.Code) || apiErr.Status == "RESOURCE_EXHAUSTED"
	return llm.Classify(provider, fmt.Errorf("status=%d %s: %w", apiErr.Code, apiErr.Status, err), unavailable)
}

var _ horoscope.Generator = (*Client)(nil)
