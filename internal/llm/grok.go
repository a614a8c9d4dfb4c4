package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// GrokProvider calls xAI Grok through its OpenAI-compatible API. Calls
// are bounded by a per-call timeout and a client-side rate limiter.
type GrokProvider struct {
	client  *openai.Client
	limiter *rate.Limiter
	config  Config
}

// NewGrokProvider creates a new Grok provider.
func NewGrokProvider(config Config) (*GrokProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Grok API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &GrokProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		config:  config,
	}, nil
}

// Name returns the provider name
func (p *GrokProvider) Name() string { return "grok" }

// Complete generates a completion using the Chat Completions API.
func (p *GrokProvider) Complete(ctx context.Context, prompt string) (*Completion, error) {
	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.limiter.Wait(ctxWithTimeout); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	model := p.config.Model
	if model == "" {
		model = "grok-beta"
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You review invoice approval decisions for internal contradictions. " +
					"If a revision is needed, start your answer with \"" + RevisionMarker + "\".",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("Grok API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Grok")
	}

	return &Completion{
		Text:    strings.TrimSpace(resp.Choices[0].Message.Content),
		Backend: p.Name(),
	}, nil
}
