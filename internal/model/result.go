package model

// Result is the complete audit artifact for one pipeline run. Any storage
// or transport layer must preserve it verbatim.
type Result struct {
	InvoicePath string              `json:"invoice_path"`
	Invoice     *Invoice            `json:"invoice"`      // nil when extraction produced nothing
	ParseReport *ParseReport        `json:"parse_report"` // nil when extraction produced nothing
	Findings    []ValidationFinding `json:"validation_findings"`
	Approval    *ApprovalDecision   `json:"approval_decision"` // nil means "no invoice, no opinion"
	Payment     *PaymentResult      `json:"payment_result"`
	Errors      []string            `json:"errors"`
}

// NewResult creates an empty result for the given invoice path.
func NewResult(path string) *Result {
	return &Result{
		InvoicePath: path,
		Findings:    []ValidationFinding{},
		Errors:      []string{},
	}
}
