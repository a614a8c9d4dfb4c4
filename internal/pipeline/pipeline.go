package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shonlittle/acme-invoice/internal/approve"
	"github.com/shonlittle/acme-invoice/internal/extract"
	"github.com/shonlittle/acme-invoice/internal/llm"
	"github.com/shonlittle/acme-invoice/internal/model"
	"github.com/shonlittle/acme-invoice/internal/payment"
	"github.com/shonlittle/acme-invoice/internal/refdata"
	"github.com/shonlittle/acme-invoice/internal/validate"
)

// Pipeline orchestrates the per-invoice run: Extract -> Validate ->
// Decide -> Pay. Control flow is strictly linear; each stage receives
// the accumulated result and writes only its own section.
type Pipeline struct {
	registry  *extract.Registry
	validator *validate.Validator
	engine    *approve.Engine
	executor  payment.Executor
	verbose   bool
}

// New creates a pipeline. The reasoning backend and reference gateway
// are resolved by the caller, once, before any invoice is processed.
func New(cfg *model.Config, gateway refdata.Gateway, reasoner llm.Provider) *Pipeline {
	return &Pipeline{
		registry:  extract.NewRegistry(nil),
		validator: validate.NewValidator(gateway),
		engine:    approve.NewEngine(reasoner),
		executor:  payment.NewMockExecutor(),
		verbose:   cfg.Output.Verbose,
	}
}

// Process runs the full pipeline for one invoice file. It never fails:
// every failure mode degrades to a populated errors list on a
// best-effort result record.
func (p *Pipeline) Process(ctx context.Context, path string) (result *model.Result) {
	result = model.NewResult(path)

	// One recovery point for anything a stage lets escape. The run still
	// returns whatever the earlier stages produced.
	defer func() {
		if r := recover(); r != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Pipeline error: %v", r))
		}
	}()

	p.runExtract(path, result)
	p.runValidate(result)
	p.runDecide(ctx, result)
	p.runPay(ctx, result)

	return result
}

// runExtract populates result.Invoice and result.ParseReport. Extraction
// failures substitute the PARSE_ERROR sentinel invoice and are recorded
// centrally in the error list; they never abort the run.
func (p *Pipeline) runExtract(path string, result *model.Result) {
	fail := func(msg string) {
		result.Errors = append(result.Errors, msg)
		if result.Invoice == nil {
			report := model.NewParseReport()
			report.Warn(msg)
			result.Invoice = model.MinimalInvoice(model.VendorParseError)
			result.ParseReport = report
		}
	}

	extractor, err := p.registry.ForPath(path)
	if err != nil {
		fail(fmt.Sprintf("Unsupported file type: %v", err))
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fail(fmt.Sprintf("Read invoice file: %v", err))
		return
	}

	inv, report, err := extractor.Extract(data)
	result.Invoice = inv
	result.ParseReport = report
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Extraction failed (%s): %v", extractor.Name(), err))
	}

	if p.verbose && inv != nil {
		fmt.Fprintf(os.Stderr, "✓ Extracted %s: vendor=%s amount=%.2f items=%d\n",
			path, inv.Vendor, inv.Amount, len(inv.LineItems))
	}
}

// runValidate populates result.Findings. A nil invoice is a skip, and a
// gateway failure degrades to zero findings plus an error entry.
func (p *Pipeline) runValidate(result *model.Result) {
	findings, err := p.validator.Validate(result.Invoice)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Validation failed: %v", err))
		result.Findings = []model.ValidationFinding{}
		return
	}
	result.Findings = findings

	if p.verbose {
		fmt.Fprintf(os.Stderr, "✓ Validation produced %d findings\n", len(findings))
	}
}

// runDecide populates result.Approval. No invoice, no opinion.
func (p *Pipeline) runDecide(ctx context.Context, result *model.Result) {
	result.Approval = p.engine.Decide(ctx, result.Invoice, result.Findings)

	if p.verbose && result.Approval != nil {
		fmt.Fprintf(os.Stderr, "✓ Decision: approved=%v reasons=%d\n",
			result.Approval.Approved, len(result.Approval.Reasons))
	}
}

// runPay gates the payment executor on an approved decision and records
// SKIPPED otherwise. The executor is never invoked for a rejected or
// absent decision.
func (p *Pipeline) runPay(ctx context.Context, result *model.Result) {
	now := nowUTC()

	if result.Approval == nil {
		result.Payment = &model.PaymentResult{
			Status:      model.PaymentSkipped,
			Vendor:      "N/A",
			ReferenceID: "N/A",
			Timestamp:   now,
			Reason:      "No approval decision available",
		}
		return
	}

	if !result.Approval.Approved {
		result.Payment = &model.PaymentResult{
			Status:      model.PaymentSkipped,
			Vendor:      result.Invoice.Vendor,
			Amount:      result.Invoice.Amount,
			ReferenceID: "N/A",
			Timestamp:   now,
			Reason:      "Invoice rejected: " + strings.Join(result.Approval.Reasons, "; "),
		}
		return
	}

	paid, err := p.executor.Pay(ctx, result.Invoice.Vendor, result.Invoice.Amount, result.Invoice.DedupKey())
	if err != nil {
		result.Payment = &model.PaymentResult{
			Status:      model.PaymentFailed,
			Vendor:      result.Invoice.Vendor,
			Amount:      result.Invoice.Amount,
			ReferenceID: "N/A",
			Timestamp:   now,
			Reason:      fmt.Sprintf("Payment error: %v", err),
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Payment failed: %v", err))
		return
	}
	result.Payment = paid

	if p.verbose {
		fmt.Fprintf(os.Stderr, "✓ Payment %s (%s)\n", paid.Status, paid.ReferenceID)
	}
}
