package llm

import "context"

// Completion is one reasoning response, tagged with the backend that
// actually produced it for the audit trail.
type Completion struct {
	Text    string
	Backend string
}

// Provider defines the interface for reasoning backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a text completion for the prompt
	Complete(ctx context.Context, prompt string) (*Completion, error)
}

// Config holds reasoning-backend configuration. The backend is chosen
// once at construction; it is never re-resolved per call.
type Config struct {
	// Backend name: "grok" or "mock"
	Backend string

	// Model name (network backend only)
	Model string

	// APIKey for the network backend
	APIKey string

	// BaseURL for the OpenAI-compatible endpoint
	BaseURL string

	// Timeout per call in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond throttles network calls
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults: the deterministic backend.
func DefaultConfig() Config {
	return Config{
		Backend:           "mock",
		Model:             "grok-beta",
		BaseURL:           "https://api.x.ai/v1",
		Timeout:           30,
		MaxTokens:         500,
		RequestsPerSecond: 2,
	}
}
