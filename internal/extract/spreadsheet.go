package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// SpreadsheetExtractor parses XLSX invoices. Rows on the first sheet
// follow the same flat key-value contract as CSV: column A is the key,
// column B the value, with `item` rows delimiting line items.
type SpreadsheetExtractor struct{}

// NewSpreadsheetExtractor creates a new XLSX extractor.
func NewSpreadsheetExtractor() *SpreadsheetExtractor {
	return &SpreadsheetExtractor{}
}

// Name returns the extractor name
func (e *SpreadsheetExtractor) Name() string { return "spreadsheet-xlsx" }

// Extensions returns the file extensions this extractor handles
func (e *SpreadsheetExtractor) Extensions() []string { return []string{".xlsx"} }

// Extract parses an XLSX invoice workbook.
func (e *SpreadsheetExtractor) Extract(data []byte) (*model.Invoice, *model.ParseReport, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		report := model.NewParseReport()
		report.Warn(fmt.Sprintf("malformed workbook: %v", err))
		report.Record("vendor", "xlsx.parse_error", model.ConfidenceLow)
		report.Record("amount", "xlsx.parse_error", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, fmt.Errorf("parse XLSX invoice: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		report := model.NewParseReport()
		report.Warn("workbook has no sheets")
		report.Record("vendor", "xlsx.empty", model.ConfidenceLow)
		report.Record("amount", "xlsx.empty", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorUnknown), report, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		report := model.NewParseReport()
		report.Warn(fmt.Sprintf("read sheet %s: %v", sheets[0], err))
		report.Record("vendor", "xlsx.parse_error", model.ConfidenceLow)
		report.Record("amount", "xlsx.parse_error", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, fmt.Errorf("read XLSX sheet: %w", err)
	}

	acc := newKVAccumulator("xlsx")
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
