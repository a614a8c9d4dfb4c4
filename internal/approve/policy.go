package approve

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// Policy v1_rule_based constants. These belong to this policy version,
// not to the system: a future policy may choose different thresholds.
const (
	highValueThreshold = 10000.0
)

// MakeInitialDecision applies policy v1_rule_based to an invoice and its
// validation findings. The rules are independent and cumulative: an
// invoice can collect several rejection reasons, and a rejected invoice
// can still carry the high-value scrutiny note.
func MakeInitialDecision(inv *model.Invoice, findings []model.ValidationFinding) model.InitialDecision {
	reasons := []string{}
	approved := true

	errorCount := model.ErrorCount(findings)

	// ERROR findings reject
	if errorCount > 0 {
		approved = false
		reasons = append(reasons, fmt.Sprintf("Rejected: %d ERROR-level validation findings", errorCount))
	}

	// Sentinel vendor rejects
	if inv.VendorMissing() {
		approved = false
		reasons = append(reasons, "Rejected: Missing or invalid vendor information")
	}

	// Sentinel total rejects. A legitimately-zero total takes this path
	// too; the sentinel scheme cannot tell them apart.
	if inv.AmountMissing() {
		approved = false
		reasons = append(reasons, "Rejected: Missing or invalid total amount")
	}

	// High value flags for scrutiny without rejecting
	if inv.Amount > highValueThreshold {
		reasons = append(reasons, fmt.Sprintf("High-value invoice ($%s) requires extra scrutiny", formatAmount(inv.Amount)))
	}

	// An approved decision always ends with at least one reason
	if approved && len(reasons) == 0 {
		reasons = append(reasons, "Approved: All validation checks passed")
	}

	return model.InitialDecision{
		Approved:  approved,
		Reasons:   reasons,
		Timestamp: time.Now().UTC(),
	}
}

// CheckContradictions flags self-contradictory decisions. Exactly three
// categories exist; any combination may fire, and the description joins
// every fired category with "; ".
func CheckContradictions(initial model.InitialDecision, findings []model.ValidationFinding, inv *model.Invoice) (bool, string) {
	var contradictions []string

	// Approved despite ERROR findings
	errorCount := model.ErrorCount(findings)
	if initial.Approved && errorCount > 0 {
		contradictions = append(contradictions,
			fmt.Sprintf("Approved despite %d ERROR findings - policy violation", errorCount))
	}

	// Rejected with no stated reason
	if !initial.Approved && len(initial.Reasons) == 0 {
		contradictions = append(contradictions, "Rejected without providing reasons")
	}

	// High value without a scrutiny note
	if inv.Amount > highValueThreshold {
		hasScrutiny := false
		for _, reason := range initial.Reasons {
			if strings.Contains(strings.ToLower(reason), "scrutiny") {
				hasScrutiny = true
				break
			}
		}
		if !hasScrutiny {
			contradictions = append(contradictions,
				fmt.Sprintf("High-value invoice ($%s) missing scrutiny flag", formatAmount(inv.Amount)))
		}
	}

	return len(contradictions) > 0, strings.Join(contradictions, "; ")
}

// formatAmount renders an amount with thousands separators, two decimals.
func formatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
