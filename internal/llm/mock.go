package llm

import (
	"context"
	"strings"
)

// RevisionMarker is the token a reasoning response must carry for the
// decision engine to treat it as a revision.
const RevisionMarker = "REVISED:"

// MockProvider is the deterministic reasoning backend. It is not a test
// stub: it is the default backend, selected whenever no credential is
// configured, and its responses are stable given the same prompt.
type MockProvider struct{}

// NewMockProvider creates the deterministic backend.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name
func (p *MockProvider) Name() string { return "mock" }

// Complete answers a critique prompt by keyword inspection. A prompt that
// reports an approval standing despite ERROR findings gets a rejecting
// revision; a missing scrutiny flag gets a non-rejecting revision;
// anything else is left unrevised.
func (p *MockProvider) Complete(_ context.Context, prompt string) (*Completion, error) {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "approved despite") && strings.Contains(lower, "error"):
		return p.respond(RevisionMarker + " The approval contradicts outstanding ERROR-level validation findings. " +
			"Reject the invoice until every ERROR finding is resolved."), nil

	case strings.Contains(lower, "rejected without providing reasons"):
		return p.respond(RevisionMarker + " Reject the invoice, with reasons restored: " +
			"the rejection stands but must cite its validation findings."), nil

	case strings.Contains(lower, "missing scrutiny flag"):
		return p.respond(RevisionMarker + " The decision stands, but this high-value invoice requires extra scrutiny " +
			"before payment is released."), nil

	default:
		return p.respond("No contradictions warrant a revision; the initial decision stands."), nil
	}
}

func (p *MockProvider) respond(text string) *Completion {
	return &Completion{Text: text, Backend: p.Name()}
}
