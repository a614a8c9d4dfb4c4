package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// Free-text label patterns, case-insensitive "Label: value" style.
var (
	vendorPattern   = regexp.MustCompile(`(?im)^\s*vendor:\s*(.+?)\s*$`)
	invoicePattern  = regexp.MustCompile(`(?i)invoice\s+number:\s*(\S+)`)
	totalPattern    = regexp.MustCompile(`(?i)\btotal(?:\s+amount)?:\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	dueDatePattern  = regexp.MustCompile(`(?i)due\s+date:\s*(\S+)`)
	termsPattern    = regexp.MustCompile(`(?im)payment\s+terms:\s*(.+?)\s*$`)
	revisionPattern = regexp.MustCompile(`(?i)revision:\s*(\S+)`)

	// Repeating line-item pattern: "<name> qty: <int> unit price: $<decimal>"
	lineItemPattern = regexp.MustCompile(`(?im)^\s*(\S(?:.*?\S)?)\s+qty:\s*(-?\d+)\s+unit\s+price:\s*\$?([\d,]+(?:\.\d+)?)`)
)

// FreeTextExtractor applies fixed-pattern extraction to plain-text
// invoices. Found fields are MEDIUM confidence, sentinel fallbacks LOW.
type FreeTextExtractor struct{}

// NewFreeTextExtractor creates a new free-text extractor.
func NewFreeTextExtractor() *FreeTextExtractor {
	return &FreeTextExtractor{}
}

// Name returns the extractor name
func (e *FreeTextExtractor) Name() string { return "free-text" }

// Extensions returns the file extensions this extractor handles
func (e *FreeTextExtractor) Extensions() []string { return []string{".txt"} }

// Extract parses a plain-text invoice.
func (e *FreeTextExtractor) Extract(data []byte) (*model.Invoice, *model.ParseReport, error) {
	inv, report := extractFromText(string(data), "txt")
	return inv, report, nil
}

// extractFromText runs the free-text rules over text. Shared with the
// derived-text extractor, which stacks it behind a document layer.
func extractFromText(text, prefix string) (*model.Invoice, *model.ParseReport) {
	report := model.NewParseReport()
	inv := &model.Invoice{Currency: "USD", LineItems: []model.LineItem{}}

	if m := vendorPattern.FindStringSubmatch(text); m != nil {
		inv.Vendor = strings.TrimSpace(m[1])
		report.Record("vendor", prefix+".pattern.vendor", model.ConfidenceMedium)
	} else {
		inv.Vendor = model.VendorUnknown
		report.Warn("no vendor pattern matched")
		report.Record("vendor", "default", model.ConfidenceLow)
	}

	if m := totalPattern.FindStringSubmatch(text); m != nil {
		total, err := parseMoney(m[1])
		if err != nil {
			report.Warn(fmt.Sprintf("unparsable total %q, defaulting to 0.0", m[1]))
			report.Record("amount", prefix+".pattern.total", model.ConfidenceLow)
		} else {
			inv.Amount = total
			report.Record("amount", prefix+".pattern.total", model.ConfidenceMedium)
		}
	} else {
		inv.Amount = 0.0
		report.Warn("no total pattern matched")
		report.Record("amount", "default", model.ConfidenceLow)
	}

	if m := invoicePattern.FindStringSubmatch(text); m != nil {
		inv.InvoiceNumber = m[1]
		report.Record("invoice_number", prefix+".pattern.invoice_number", model.ConfidenceMedium)
	}
	if m := dueDatePattern.FindStringSubmatch(text); m != nil {
		inv.DueDate = m[1]
		report.Record("due_date", prefix+".pattern.due_date", model.ConfidenceMedium)
	}
	if m := termsPattern.FindStringSubmatch(text); m != nil {
		inv.PaymentTerms = strings.TrimSpace(m[1])
		report.Record("payment_terms", prefix+".pattern.payment_terms", model.ConfidenceMedium)
	}
	if m := revisionPattern.FindStringSubmatch(text); m != nil {
		inv.Revision = m[1]
		report.Record("revision", prefix+".pattern.revision", model.ConfidenceMedium)
	}

	for _, m := range lineItemPattern.FindAllStringSubmatch(text, -1) {
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			report.Warn(fmt.Sprintf("unparsable quantity %q for item %s", m[2], m[1]))
			continue
		}
		item := model.LineItem{Name: strings.TrimSpace(m[1]), Quantity: qty}
		if price, err := parseMoney(m[3]); err == nil {
			item.UnitPrice = &price
		}
		inv.LineItems = append(inv.LineItems, item)
	}
	if len(inv.LineItems) > 0 {
		report.Record("line_items", prefix+".pattern.items", model.ConfidenceMedium)
	}

	return inv, report
}
