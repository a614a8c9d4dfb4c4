package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewProvider builds the reasoning backend for the given configuration.
// The network backend is always wrapped so any call failure resolves to
// the deterministic backend; reflection can never hard-fail a pipeline
// run on a reasoning outage.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Backend) {
	case "grok":
		grok, err := NewGrokProvider(config)
		if err != nil {
			return nil, err
		}
		return NewFallbackProvider(grok, NewMockProvider()), nil

	case "mock", "":
		return NewMockProvider(), nil

	default:
		return nil, fmt.Errorf("unknown reasoning backend: %s (supported: grok, mock)", config.Backend)
	}
}

// FallbackProvider tries a primary backend and falls back to a secondary
// on any error. Complete never returns an error as long as the secondary
// does not.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

// NewFallbackProvider wraps primary with secondary as the fallback.
func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{primary: primary, secondary: secondary}
}

// Name returns the provider name
func (p *FallbackProvider) Name() string {
	return p.primary.Name() + "+" + p.secondary.Name()
}

// Complete tries the primary backend, then the secondary. The returned
// completion's Backend field records which one actually answered.
func (p *FallbackProvider) Complete(ctx context.Context, prompt string) (*Completion, error) {
	completion, err := p.primary.Complete(ctx, prompt)
	if err == nil {
		return completion, nil
	}
	return p.secondary.Complete(ctx, prompt)
}
