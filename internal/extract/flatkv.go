package extract

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// FlatKVExtractor parses CSV invoices in `field,value` form. An `item`
// key starts a new line item; `quantity`/`unit_price`/`amount` populate
// the current one; everything else is a top-level field.
type FlatKVExtractor struct{}

// NewFlatKVExtractor creates a new CSV extractor.
func NewFlatKVExtractor() *FlatKVExtractor {
	return &FlatKVExtractor{}
}

// Name returns the extractor name
func (e *FlatKVExtractor) Name() string { return "flat-kv-csv" }

// Extensions returns the file extensions this extractor handles
func (e *FlatKVExtractor) Extensions() []string { return []string{".csv"} }

// Extract parses a flat key-value CSV invoice.
func (e *FlatKVExtractor) Extract(data []byte) (*model.Invoice, *model.ParseReport, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		report := model.NewParseReport()
		report.Warn(fmt.Sprintf("malformed CSV: %v", err))
		report.Record("vendor", "csv.parse_error", model.ConfidenceLow)
		report.Record("amount", "csv.parse_error", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, fmt.Errorf("parse CSV invoice: %w", err)
	}

	acc := newKVAccumulator("csv")
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.TrimSpace(strings.ToLower(row[0]))
		value := strings.TrimSpace(row[1])
		if key == "field" && strings.EqualFold(value, "value") {
			continue // header row
		}
		acc.consume(key, value)
	}

	inv, report := acc.finish()
	return inv, report, nil
}

// kvAccumulator is the small state machine shared by the CSV and XLSX
// extractors. Encountering `item` flushes the previously accumulated line
// item and starts a new one; the final pending item is flushed at finish.
type kvAccumulator struct {
	prefix  string
	inv     *model.Invoice
	report  *model.ParseReport
	current *model.LineItem

	sawVendor bool
	sawTotal  bool
}

func newKVAccumulator(prefix string) *kvAccumulator {
	return &kvAccumulator{
		prefix: prefix,
		inv:    &model.Invoice{Currency: "USD", LineItems: []model.LineItem{}},
		report: model.NewParseReport(),
	}
}

func (a *kvAccumulator) flush() {
	if a.current != nil {
		a.inv.LineItems = append(a.inv.LineItems, *a.current)
		a.current = nil
	}
}

func (a *kvAccumulator) prov(field string) string {
	return a.prefix + "." + field
}

func (a *kvAccumulator) consume(key, value string) {
	switch key {
	case "item":
		a.flush()
		a.current = &model.LineItem{Name: value}

	case "quantity":
		if a.current == nil {
			a.report.Warn("quantity without a preceding item, ignored")
			return
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			a.report.Warn(fmt.Sprintf("unparsable quantity %q for item %s, defaulting to 0", value, a.current.Name))
			return
		}
		a.current.Quantity = qty

	case "unit_price":
		if a.current == nil {
			a.report.Warn("unit_price without a preceding item, ignored")
			return
		}
		price, err := parseMoney(value)
		if err != nil {
			a.report.Warn(fmt.Sprintf("unparsable unit_price %q for item %s", value, a.current.Name))
			return
		}
		a.current.UnitPrice = &price

	case "amount":
		if a.current == nil {
			a.report.Warn("amount without a preceding item, ignored")
			return
		}
		amount, err := parseMoney(value)
		if err != nil {
			a.report.Warn(fmt.Sprintf("unparsable amount %q for item %s", value, a.current.Name))
			return
		}
		a.current.Amount = &amount

	case "vendor":
		a.inv.Vendor = value
		a.sawVendor = true
		a.report.Record("vendor", a.prov("vendor"), model.ConfidenceMedium)

	case "total":
		total, err := parseMoney(value)
		if err != nil {
			a.report.Warn(fmt.Sprintf("unparsable total %q, defaulting to 0.0", value))
			a.report.Record("amount", a.prov("total"), model.ConfidenceLow)
			a.sawTotal = true // present but unusable; keep the sentinel
			return
		}
		a.inv.Amount = total
		a.sawTotal = true
		a.report.Record("amount", a.prov("total"), model.ConfidenceMedium)

	case "invoice_number":
		a.inv.InvoiceNumber = value
		a.report.Record("invoice_number", a.prov("invoice_number"), model.ConfidenceMedium)

	case "due_date":
		a.inv.DueDate = value
		a.report.Record("due_date", a.prov("due_date"), model.ConfidenceMedium)

	case "payment_terms":
		a.inv.PaymentTerms = value

	case "currency":
		a.inv.Currency = value

	case "revision":
		a.inv.Revision = value
		a.report.Record("revision", a.prov("revision"), model.ConfidenceMedium)

	case "subtotal":
		if v, err := parseMoney(value); err == nil {
			a.inv.Subtotal = &v
		}

	case "tax_rate":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			a.inv.TaxRate = &v
		}

	case "tax_amount":
		if v, err := parseMoney(value); err == nil {
			a.inv.TaxAmount = &v
		}
	}
}

func (a *kvAccumulator) finish() (*model.Invoice, *model.ParseReport) {
	a.flush()

	if !a.sawVendor {
		a.inv.Vendor = model.VendorUnknown
		a.report.Warn("missing vendor field")
		a.report.Record("vendor", "default", model.ConfidenceLow)
	}
	if !a.sawTotal {
		a.inv.Amount = 0.0
		a.report.Warn("missing total field")
		a.report.Record("amount", "default", model.ConfidenceLow)
	}
	if len(a.inv.LineItems) > 0 {
		a.report.Record("line_items", a.prov("items"), model.ConfidenceMedium)
	}

	return a.inv, a.report
}
