package approve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shonlittle/acme-invoice/internal/llm"
	"github.com/shonlittle/acme-invoice/internal/model"
)

// failingProvider always errors, simulating a reasoning outage.
type failingProvider struct{}

func (p *failingProvider) Name() string { return "failing" }
func (p *failingProvider) Complete(_ context.Context, _ string) (*llm.Completion, error) {
	return nil, errors.New("backend unavailable")
}

func TestEngine_NilInvoiceYieldsNilDecision(t *testing.T) {
	engine := NewEngine(llm.NewMockProvider())

	if decision := engine.Decide(context.Background(), nil, nil); decision != nil {
		t.Errorf("Expected nil decision for nil invoice, got %+v", decision)
	}
}

func TestEngine_CleanApprovalSkipsReflection(t *testing.T) {
	engine := NewEngine(llm.NewMockProvider())
	inv := &model.Invoice{Vendor: "Widgets Inc.", Amount: 500.00}

	decision := engine.Decide(context.Background(), inv, nil)

	if decision == nil {
		t.Fatal("Expected a decision")
	}
	if !decision.Approved {
		t.Error("Expected approval")
	}
	if decision.Policy != model.PolicyV1RuleBased {
		t.Errorf("Expected policy %s, got %s", model.PolicyV1RuleBased, decision.Policy)
	}
	if decision.Reflection != nil {
		t.Error("Expected no reflection without contradictions")
	}
}

func TestEngine_RejectionRecordsSeveritySummary(t *testing.T) {
	engine := NewEngine(llm.NewMockProvider())
	inv := &model.Invoice{Vendor: "Widgets Inc.", Amount: 500.00}
	findings := []model.ValidationFinding{
		{Code: model.CodeExceedsStock, Severity: model.SeverityError},
		{Code: model.CodePriceMismatch, Severity: model.SeverityWarn},
	}

	decision := engine.Decide(context.Background(), inv, findings)

	if decision.Approved {
		t.Error("Expected rejection")
	}
	if decision.SeveritySummary[model.SeverityError] != 1 || decision.SeveritySummary[model.SeverityWarn] != 1 {
		t.Errorf("Expected severity summary {ERROR:1 WARN:1}, got %v", decision.SeveritySummary)
	}
	// Initial and final agree for a straightforward rejection
	if decision.InitialDecision.Approved != decision.Approved {
		t.Error("Expected initial and final decisions to agree")
	}
}

func TestEngine_Reflect_RevisionOnApprovedDespiteErrors(t *testing.T) {
	engine := NewEngine(llm.NewMockProvider())

	findings := []model.ValidationFinding{
		{Code: model.CodeUnknownItem, Severity: model.SeverityError},
	}
	initial := model.InitialDecision{Approved: true, Reasons: []string{"Approved: All validation checks passed"}}
	critique := "Approved despite 1 ERROR findings - policy violation"

	reflection := engine.Reflect(context.Background(), initial, critique, findings)

	if !reflection.Revised {
		t.Fatal("Expected the deterministic backend to revise")
	}
	if reflection.Backend != "mock" {
		t.Errorf("Expected backend 'mock', got %s", reflection.Backend)
	}
	if reflection.CritiqueNotes != critique {
		t.Errorf("Expected critique notes preserved, got %q", reflection.CritiqueNotes)
	}
	if len(reflection.RevisedReasons) == 0 ||
		!strings.Contains(strings.ToLower(reflection.RevisedReasons[0]), "reject") {
		t.Errorf("Expected a rejecting revision, got %v", reflection.RevisedReasons)
	}
}

func TestEngine_Reflect_ScrutinyRevisionDoesNotReject(t *testing.T) {
	engine := NewEngine(llm.NewMockProvider())

	initial := model.InitialDecision{Approved: true, Reasons: []string{"Approved: All validation checks passed"}}
	critique := "High-value invoice ($12,500.00) missing scrutiny flag"

	reflection := engine.Reflect(context.Background(), initial, critique, nil)

	if !reflection.Revised {
		t.Fatal("Expected a revision")
	}
	if strings.Contains(strings.ToLower(reflection.RevisedReasons[0]), "reject") {
		t.Errorf("Expected a non-rejecting revision, got %v", reflection.RevisedReasons)
	}
}

func TestEngine_Reflect_BackendFailureLeavesUnrevised(t *testing.T) {
	engine := NewEngine(&failingProvider{})

	initial := model.InitialDecision{Approved: true, Reasons: []string{"Approved: All validation checks passed"}}

	reflection := engine.Reflect(context.Background(), initial, "some critique", nil)

	if reflection.Revised {
		t.Error("Expected no revision on backend failure")
	}
	if reflection.Backend != "failing" {
		t.Errorf("Expected the failed backend recorded, got %s", reflection.Backend)
	}
	if reflection.CritiqueNotes != "some critique" {
		t.Errorf("Expected critique notes preserved, got %q", reflection.CritiqueNotes)
	}
}

func TestEngine_ConsistentDecisionsNeverReflect(t *testing.T) {
	engine := NewEngine(llm.NewMockProvider())

	// A high-value rejected invoice whose rejection reason lacks a
	// scrutiny note triggers reflection. The mock's scrutiny revision
	// does not contain "reject", so the final decision stands.
	inv := &model.Invoice{Vendor: "Widgets Inc.", Amount: 15000.00}

	decision := engine.Decide(context.Background(), inv, nil)
	if decision.Reflection != nil {
		t.Fatal("Expected no reflection: the scrutiny note is present")
	}

	// Now force the contradiction path directly: an approved initial
	// decision with outstanding ERROR findings produces a rejecting
	// revision whose first reason flips the final approval.
	findings := []model.ValidationFinding{
		{Code: model.CodeUnknownItem, Severity: model.SeverityError},
	}
	initial := model.InitialDecision{Approved: true, Reasons: []string{"Approved: All validation checks passed"}}
	critique := "Approved despite 1 ERROR findings - policy violation"

	reflection := engine.Reflect(context.Background(), initial, critique, findings)
	if !reflection.Revised {
		t.Fatal("Expected a revision")
	}
	if !strings.Contains(strings.ToLower(reflection.RevisedReasons[0]), "reject") {
		t.Fatal("Expected a rejecting first reason")
	}
}

func TestEngine_ContradictionCheckIsAdvisoryWithoutRevision(t *testing.T) {
	// A backend that answers without the revision marker leaves the
	// rule-based decision untouched even when contradictions were found.
	engine := NewEngine(&markerlessProvider{})

	initial := model.InitialDecision{Approved: true, Reasons: []string{"Approved: All validation checks passed"}}
	reflection := engine.Reflect(context.Background(), initial, "Approved despite 1 ERROR findings - policy violation", nil)

	if reflection.Revised {
		t.Error("Expected no revision without the marker")
	}
	if len(reflection.RevisedReasons) != 0 {
		t.Errorf("Expected no revised reasons, got %v", reflection.RevisedReasons)
	}
}

type markerlessProvider struct{}

func (p *markerlessProvider) Name() string { return "markerless" }
func (p *markerlessProvider) Complete(_ context.Context, _ string) (*llm.Completion, error) {
	return &llm.Completion{Text: "Everything looks fine to me.", Backend: "markerless"}, nil
}
