package model

// FindingCode is the stable identifier of a validation rule.
type FindingCode string

const (
	CodeUnknownVendor          FindingCode = "UNKNOWN_VENDOR"
	CodeSuspiciousVendor       FindingCode = "SUSPICIOUS_VENDOR"
	CodeUnknownItem            FindingCode = "UNKNOWN_ITEM"
	CodeNegativeQty            FindingCode = "NEGATIVE_QTY"
	CodeExceedsStock           FindingCode = "EXCEEDS_STOCK"
	CodeOutOfStock             FindingCode = "OUT_OF_STOCK"
	CodePriceMismatch          FindingCode = "PRICE_MISMATCH"
	CodeLineItemAmountMismatch FindingCode = "LINE_ITEM_AMOUNT_MISMATCH"
)

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// ValidationFinding is one structured validation issue. It carries enough
// context to explain itself without consulting other findings.
type ValidationFinding struct {
	Code         FindingCode `json:"code"`
	Severity     Severity    `json:"severity"`
	Message      string      `json:"message"`
	SubjectName  string      `json:"item_name,omitempty"` // Item or vendor the finding is about
	RequestedQty *int        `json:"requested_qty,omitempty"`
	AvailableQty *int        `json:"available_qty,omitempty"`
}

// CountBySeverity tallies findings per severity tier.
func CountBySeverity(findings []ValidationFinding) map[Severity]int {
	summary := make(map[Severity]int)
	for _, f := range findings {
		summary[f.Severity]++
	}
	return summary
}

// ErrorCount returns the number of ERROR-severity findings.
func ErrorCount(findings []ValidationFinding) int {
	count := 0
	for _, f := range findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}
