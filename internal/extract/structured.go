package extract

import (
	"encoding/json"
	"fmt"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// StructuredExtractor parses JSON invoices. Fields map directly; the
// vendor may be a nested record (name + address) or a bare string.
type StructuredExtractor struct{}

// NewStructuredExtractor creates a new JSON extractor.
func NewStructuredExtractor() *StructuredExtractor {
	return &StructuredExtractor{}
}

// Name returns the extractor name
func (e *StructuredExtractor) Name() string { return "structured-json" }

// Extensions returns the file extensions this extractor handles
func (e *StructuredExtractor) Extensions() []string { return []string{".json"} }

// Extract parses a JSON invoice document.
func (e *StructuredExtractor) Extract(data []byte) (*model.Invoice, *model.ParseReport, error) {
	report := model.NewParseReport()

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		report.Warn(fmt.Sprintf("malformed JSON: %v", err))
		report.Record("vendor", "json.parse_error", model.ConfidenceLow)
		report.Record("amount", "json.parse_error", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, fmt.Errorf("parse JSON invoice: %w", err)
	}

	inv := &model.Invoice{Currency: "USD", LineItems: []model.LineItem{}}

	// Vendor: nested record or bare string
	switch vendor := doc["vendor"].(type) {
	case map[string]interface{}:
		inv.Vendor = stringField(vendor, "name")
		inv.VendorAddress = stringField(vendor, "address")
		if inv.Vendor == "" {
			inv.Vendor = model.VendorUnknown
			report.Warn("vendor record missing name")
			report.Record("vendor", "json.vendor.name", model.ConfidenceLow)
		} else {
			report.Record("vendor", "json.vendor.name", model.ConfidenceHigh)
		}
	case string:
		inv.Vendor = vendor
		report.Record("vendor", "json.vendor", model.ConfidenceHigh)
	default:
		inv.Vendor = model.VendorUnknown
		report.Warn("missing vendor field")
		report.Record("vendor", "default", model.ConfidenceLow)
	}

	// Total: an explicit 0 counts as present even though downstream policy
	// cannot tell it apart from the absent sentinel.
	if total, ok := doc["total"].(float64); ok {
		inv.Amount = total
		report.Record("amount", "json.total", model.ConfidenceHigh)
	} else {
		inv.Amount = 0.0
		report.Warn("missing total field")
		report.Record("amount", "default", model.ConfidenceLow)
	}

	if v := stringField(doc, "invoice_number"); v != "" {
		inv.InvoiceNumber = v
		report.Record("invoice_number", "json.invoice_number", model.ConfidenceHigh)
	}
	if v := stringField(doc, "due_date"); v != "" {
		inv.DueDate = v
		report.Record("due_date", "json.due_date", model.ConfidenceHigh)
	}
	if v := stringField(doc, "payment_terms"); v != "" {
		inv.PaymentTerms = v
	}
	if v := stringField(doc, "currency"); v != "" {
		inv.Currency = v
	}
	if v := stringField(doc, "revision"); v != "" {
		inv.Revision = v
		report.Record("revision", "json.revision", model.ConfidenceHigh)
	}
	if v, ok := doc["subtotal"].(float64); ok {
		inv.Subtotal = &v
	}
	if v, ok := doc["tax_rate"].(float64); ok {
		inv.TaxRate = &v
	}
	if v, ok := doc["tax_amount"].(float64); ok {
		inv.TaxAmount = &v
	}

	// Line items, mapped one by one with defaults for absent quantity
	if items, ok := doc["line_items"].([]interface{}); ok {
		for i, raw := range items {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				report.Warn(fmt.Sprintf("line item %d is not an object, skipped", i))
				continue
			}
			item := model.LineItem{Name: stringField(entry, "item")}
			if qty, ok := entry["quantity"].(float64); ok {
				item.Quantity = int(qty)
			} else {
				report.Warn(fmt.Sprintf("line item %d missing quantity, defaulting to 0", i))
			}
			if price, ok := entry["unit_price"].(float64); ok {
				item.UnitPrice = &price
			}
			if amount, ok := entry["amount"].(float64); ok {
				item.Amount = &amount
			}
			inv.LineItems = append(inv.LineItems, item)
		}
		report.Record("line_items", "json.line_items", model.ConfidenceHigh)
	}

	return inv, report, nil
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
