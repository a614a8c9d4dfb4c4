package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shonlittle/acme-invoice/internal/model"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Renderer writes audit results to disk and summaries to the console.
type Renderer struct{}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the result record as pretty-printed JSON. The record
// is the audit artifact and is preserved verbatim.
func (r *Renderer) RenderJSON(result *model.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// OutputPath derives the result file path for an invoice inside dir.
func (r *Renderer) OutputPath(dir, invoicePath string) string {
	stem := strings.TrimSuffix(filepath.Base(invoicePath), filepath.Ext(invoicePath))
	return filepath.Join(dir, stem+".json")
}

// RenderSummary prints a one-line-per-invoice table of run outcomes.
func (r *Renderer) RenderSummary(w io.Writer, results []*model.Result) {
	fmt.Fprintf(w, "%-30s %-25s %10s %9s %5s %6s\n", "File", "Vendor", "Amount", "Approved", "Paid", "Errors")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, result := range results {
		vendor := "N/A"
		amount := 0.0
		if result.Invoice != nil {
			vendor = result.Invoice.Vendor
			amount = result.Invoice.Amount
		}

		approved := "N/A"
		if result.Approval != nil {
			approved = fmt.Sprintf("%v", result.Approval.Approved)
		}

		paid := "No"
		if result.Payment != nil && result.Payment.Status == model.PaymentPaid {
			paid = "Yes"
		}

		fmt.Fprintf(w, "%-30s %-25s %10.2f %9s %5s %6d\n",
			filepath.Base(result.InvoicePath), vendor, amount, approved, paid, len(result.Errors))
	}
}
