package extract

import (
	"strings"
	"testing"

	"github.com/shonlittle/acme-invoice/internal/model"
)

func TestStructuredExtractor_FullInvoice(t *testing.T) {
	extractor := NewStructuredExtractor()

	data := []byte(`{
		"vendor": {"name": "Widgets Inc.", "address": "100 Main St, Chicago, IL 60601"},
		"invoice_number": "INV-2024-001",
		"due_date": "2024-12-31",
		"total": 6250.00,
		"subtotal": 6000.00,
		"tax_rate": 0.04,
		"line_items": [
			{"item": "WidgetA", "quantity": 10, "unit_price": 250.00, "amount": 2500.00},
			{"item": "WidgetB", "quantity": 7, "unit_price": 500.00, "amount": 3500.00}
		]
	}`)

	inv, report, err := extractor.Extract(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if inv.Vendor != "Widgets Inc." {
		t.Errorf("Expected vendor 'Widgets Inc.', got '%s'", inv.Vendor)
	}
	if inv.VendorAddress != "100 Main St, Chicago, IL 60601" {
		t.Errorf("Expected vendor address, got '%s'", inv.VendorAddress)
	}
	if inv.Amount != 6250.00 {
		t.Errorf("Expected amount 6250.00, got %.2f", inv.Amount)
	}
	if inv.InvoiceNumber != "INV-2024-001" {
		t.Errorf("Expected invoice number INV-2024-001, got '%s'", inv.InvoiceNumber)
	}
	if len(inv.LineItems) != 2 {
		t.Fatalf("Expected 2 line items, got %d", len(inv.LineItems))
	}
	if inv.LineItems[0].Name != "WidgetA" || inv.LineItems[0].Quantity != 10 {
		t.Errorf("Expected WidgetA x10 first, got %s x%d", inv.LineItems[0].Name, inv.LineItems[0].Quantity)
	}
	if inv.Subtotal == nil || *inv.Subtotal != 6000.00 {
		t.Error("Expected subtotal 6000.00")
	}

	if got := report.ConfidenceScores["vendor"]; got != model.ConfidenceHigh {
		t.Errorf("Expected vendor confidence HIGH, got %s", got)
	}
	if got := report.ConfidenceScores["amount"]; got != model.ConfidenceHigh {
		t.Errorf("Expected amount confidence HIGH, got %s", got)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}
}

func TestStructuredExtractor_BareStringVendor(t *testing.T) {
	extractor := NewStructuredExtractor()

	inv, report, err := extractor.Extract([]byte(`{"vendor": "Acme Industrial Supplies", "total": 100.0}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if inv.Vendor != "Acme Industrial Supplies" {
		t.Errorf("Expected bare-string vendor, got '%s'", inv.Vendor)
	}
	if got := report.ConfidenceScores["vendor"]; got != model.ConfidenceHigh {
		t.Errorf("Expected vendor confidence HIGH, got %s", got)
	}
}

func TestStructuredExtractor_MissingFields(t *testing.T) {
	extractor := NewStructuredExtractor()

	inv, report, err := extractor.Extract([]byte(`{"line_items": []}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if inv.Vendor != model.VendorUnknown {
		t.Errorf("Expected vendor sentinel %s, got '%s'", model.VendorUnknown, inv.Vendor)
	}
	if inv.Amount != 0.0 {
		t.Errorf("Expected amount sentinel 0.0, got %.2f", inv.Amount)
	}
	if got := report.ConfidenceScores["vendor"]; got != model.ConfidenceLow {
		t.Errorf("Expected vendor confidence LOW, got %s", got)
	}
	if got := report.ConfidenceScores["amount"]; got != model.ConfidenceLow {
		t.Errorf("Expected amount confidence LOW, got %s", got)
	}
	if len(report.Warnings) < 2 {
		t.Errorf("Expected warnings for both missing fields, got %v", report.Warnings)
	}
}

func TestStructuredExtractor_MissingQuantityDefaultsToZero(t *testing.T) {
	extractor := NewStructuredExtractor()

	inv, report, err := extractor.Extract([]byte(`{
		"vendor": "Widgets Inc.",
		"total": 250.0,
		"line_items": [{"item": "WidgetA", "unit_price": 250.00}]
	}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(inv.LineItems) != 1 {
		t.Fatalf("Expected 1 line item, got %d", len(inv.LineItems))
	}
	if inv.LineItems[0].Quantity != 0 {
		t.Errorf("Expected default quantity 0, got %d", inv.LineItems[0].Quantity)
	}

	warned := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "missing quantity") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("Expected a missing-quantity warning, got %v", report.Warnings)
	}
}

func TestStructuredExtractor_MalformedJSON(t *testing.T) {
	extractor := NewStructuredExtractor()

	inv, report, err := extractor.Extract([]byte(`{"vendor": "Widgets`))
	if err == nil {
		t.Fatal("Expected an error for malformed JSON")
	}

	if inv == nil {
		t.Fatal("Expected a minimal invoice even on parse failure")
	}
	if inv.Vendor != model.VendorParseError {
		t.Errorf("Expected %s sentinel, got '%s'", model.VendorParseError, inv.Vendor)
	}
	if inv.Amount != 0.0 {
		t.Errorf("Expected 0.0 amount, got %.2f", inv.Amount)
	}
	if len(report.Warnings) == 0 {
		t.Error("Expected a parse warning")
	}
}

func TestStructuredExtractor_ExplicitZeroTotal(t *testing.T) {
	extractor := NewStructuredExtractor()

	inv, report, err := extractor.Extract([]byte(`{"vendor": "Widgets Inc.", "total": 0}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// An explicit zero is recorded as present, even though downstream
	// policy treats 0.0 as absent.
	if got := report.ConfidenceScores["amount"]; got != model.ConfidenceHigh {
		t.Errorf("Expected amount confidence HIGH for explicit zero, got %s", got)
	}
	if !inv.AmountMissing() {
		t.Error("Expected explicit zero to still trip the absent sentinel")
	}
}
