package approve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shonlittle/acme-invoice/internal/llm"
	"github.com/shonlittle/acme-invoice/internal/model"
)

// Engine runs the decision phases for one invoice: initial decision,
// contradiction check, conditional reflection, final decision. The
// reasoning backend is fixed at construction.
type Engine struct {
	reasoner llm.Provider
	now      func() time.Time // injectable for tests
}

// NewEngine creates a decision engine over the given reasoning backend.
func NewEngine(reasoner llm.Provider) *Engine {
	return &Engine{
		reasoner: reasoner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Decide produces the final approval decision. A nil invoice yields nil:
// no invoice, no opinion. This is distinct from "invoice present but
// rejected".
func (e *Engine) Decide(ctx context.Context, inv *model.Invoice, findings []model.ValidationFinding) *model.ApprovalDecision {
	if inv == nil {
		return nil
	}

	initial := MakeInitialDecision(inv, findings)

	finalApproved := initial.Approved
	finalReasons := initial.Reasons

	var reflection *model.ReflectionResult
	hasContradiction, critique := CheckContradictions(initial, findings, inv)
	if hasContradiction {
		reflection = e.Reflect(ctx, initial, critique, findings)

		// The check is advisory; reflection is the only path that can
		// override the rule-based result.
		if reflection.Revised && len(reflection.RevisedReasons) > 0 {
			finalReasons = reflection.RevisedReasons
			if strings.Contains(strings.ToLower(reflection.RevisedReasons[0]), "reject") {
				finalApproved = false
			}
		}
	}

	return &model.ApprovalDecision{
		Approved:        finalApproved,
		Policy:          model.PolicyV1RuleBased,
		Reasons:         finalReasons,
		SeveritySummary: model.CountBySeverity(findings),
		InitialDecision: initial,
		Reflection:      reflection,
		DecidedAt:       e.now(),
	}
}

// Reflect consults the reasoning backend about the detected
// contradictions. Backend failures leave the decision unrevised; they
// never propagate.
func (e *Engine) Reflect(ctx context.Context, initial model.InitialDecision, critique string, findings []model.ValidationFinding) *model.ReflectionResult {
	prompt := buildCritiquePrompt(initial, critique, model.ErrorCount(findings))

	completion, err := e.reasoner.Complete(ctx, prompt)
	if err != nil {
		return &model.ReflectionResult{
			CritiqueNotes: critique,
			Revised:       false,
			Backend:       e.reasoner.Name(),
		}
	}

	result := &model.ReflectionResult{
		CritiqueNotes: critique,
		Backend:       completion.Backend,
	}

	if strings.Contains(strings.ToUpper(completion.Text), llm.RevisionMarker) {
		result.Revised = true
		result.RevisedReasons = []string{strings.TrimSpace(completion.Text)}
	}

	return result
}

func buildCritiquePrompt(initial model.InitialDecision, critique string, errorCount int) string {
	verdict := "Rejected"
	if initial.Approved {
		verdict = "Approved"
	}

	return fmt.Sprintf(`Review this approval decision for contradictions:

Initial Decision: %s
Reasons: %s
Validation Errors: %d

Contradictions Found: %s

Provide revised reasoning if needed.`,
		verdict, strings.Join(initial.Reasons, ", "), errorCount, critique)
}
