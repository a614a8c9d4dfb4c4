package validate

import (
	"fmt"
	"math"

	"github.com/shonlittle/acme-invoice/internal/model"
	"github.com/shonlittle/acme-invoice/internal/refdata"
)

// centTolerance is the allowed absolute difference for price and amount
// comparisons.
const centTolerance = 0.01

// Validator cross-checks an extracted invoice against reference data.
// It is a pure function of its inputs: the invoice is never mutated and
// no state survives between runs.
type Validator struct {
	gateway refdata.Gateway
}

// NewValidator creates a validator over the given reference-data gateway.
func NewValidator(gateway refdata.Gateway) *Validator {
	return &Validator{gateway: gateway}
}

// Validate produces the ordered finding list for an invoice. A nil
// invoice is a skip, not an error: zero findings.
func (v *Validator) Validate(inv *model.Invoice) ([]model.ValidationFinding, error) {
	if inv == nil {
		return []model.ValidationFinding{}, nil
	}

	findings := []model.ValidationFinding{}

	vendorFindings, err := v.checkVendor(inv)
	if err != nil {
		return nil, err
	}
	findings = append(findings, vendorFindings...)

	// Line items are checked independently, input order preserved.
	for _, item := range inv.LineItems {
		itemFindings, err := v.checkLineItem(item)
		if err != nil {
			return nil, err
		}
		findings = append(findings, itemFindings...)
	}

	return findings, nil
}

// checkVendor emits at most one of UNKNOWN_VENDOR / SUSPICIOUS_VENDOR.
// Sentinel vendors are not looked up; the decision policy already rejects
// them as missing data.
func (v *Validator) checkVendor(inv *model.Invoice) ([]model.ValidationFinding, error) {
	if inv.VendorMissing() {
		return nil, nil
	}

	info, found, err := v.gateway.LookupVendor(inv.Vendor)
	if err != nil {
		return nil, fmt.Errorf("vendor lookup: %w", err)
	}

	if !found {
		return []model.ValidationFinding{{
			Code:        model.CodeUnknownVendor,
			Severity:    model.SeverityWarn,
			Message:     fmt.Sprintf("Vendor '%s' not found in vendor registry", inv.Vendor),
			SubjectName: inv.Vendor,
		}}, nil
	}

	if !info.Trusted {
		return []model.ValidationFinding{{
			Code:        model.CodeSuspiciousVendor,
			Severity:    model.SeverityWarn,
			Message:     fmt.Sprintf("Vendor '%s' is flagged as untrusted", inv.Vendor),
			SubjectName: inv.Vendor,
		}}, nil
	}

	return nil, nil
}

func (v *Validator) checkLineItem(item model.LineItem) ([]model.ValidationFinding, error) {
	qty := item.Quantity

	if qty < 0 {
		return []model.ValidationFinding{{
			Code:         model.CodeNegativeQty,
			Severity:     model.SeverityError,
			Message:      fmt.Sprintf("Negative quantity: %d", qty),
			SubjectName:  item.Name,
			RequestedQty: &qty,
		}}, nil
	}

	info, found, err := v.gateway.LookupItem(item.Name)
	if err != nil {
		return nil, fmt.Errorf("item lookup: %w", err)
	}

	if !found {
		return []model.ValidationFinding{{
			Code:         model.CodeUnknownItem,
			Severity:     model.SeverityError,
			Message:      fmt.Sprintf("Item '%s' not found in inventory", item.Name),
			SubjectName:  item.Name,
			RequestedQty: &qty,
		}}, nil
	}

	if info.Stock == 0 && qty > 0 {
		zero := 0
		return []model.ValidationFinding{{
			Code:         model.CodeOutOfStock,
			Severity:     model.SeverityError,
			Message:      fmt.Sprintf("Item '%s' is out of stock", item.Name),
			SubjectName:  item.Name,
			RequestedQty: &qty,
			AvailableQty: &zero,
		}}, nil
	}

	var findings []model.ValidationFinding

	// Over-stock is an ERROR but does not stop the price checks below.
	if qty > info.Stock {
		stock := info.Stock
		findings = append(findings, model.ValidationFinding{
			Code:         model.CodeExceedsStock,
			Severity:     model.SeverityError,
			Message:      fmt.Sprintf("Requested %d, only %d available", qty, stock),
			SubjectName:  item.Name,
			RequestedQty: &qty,
			AvailableQty: &stock,
		})
	}

	if item.UnitPrice != nil && math.Abs(*item.UnitPrice-info.UnitPrice) > centTolerance {
		findings = append(findings, model.ValidationFinding{
			Code:        model.CodePriceMismatch,
			Severity:    model.SeverityWarn,
			Message:     fmt.Sprintf("Item '%s' priced at %.2f, reference price is %.2f", item.Name, *item.UnitPrice, info.UnitPrice),
			SubjectName: item.Name,
		})
	}

	if item.UnitPrice != nil && item.Amount != nil {
		expected := *item.UnitPrice * float64(qty)
		if math.Abs(expected-*item.Amount) > centTolerance {
			findings = append(findings, model.ValidationFinding{
				Code:        model.CodeLineItemAmountMismatch,
				Severity:    model.SeverityWarn,
				Message:     fmt.Sprintf("Item '%s' states amount %.2f, but %d x %.2f = %.2f", item.Name, *item.Amount, qty, *item.UnitPrice, expected),
				SubjectName: item.Name,
			})
		}
	}

	return findings, nil
}
