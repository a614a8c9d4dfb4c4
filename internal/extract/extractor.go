package extract

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// Extractor turns raw invoice bytes into a normalized Invoice plus a
// parse-quality report. Implementations never panic past this boundary:
// a malformed input still yields a minimal sentinel invoice and a
// descriptive warning, with the error returned for the run's error list.
type Extractor interface {
	// Name returns the extractor name
	Name() string

	// Extensions returns the file extensions this extractor handles
	Extensions() []string

	// Extract parses raw bytes into an invoice and a parse report
	Extract(data []byte) (*model.Invoice, *model.ParseReport, error)
}

// TextExtractor is the optional capability for pulling plain text out of a
// binary document container before the free-text rules run over it.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Registry dispatches to an extractor by file extension. The variant set
// is closed: structured JSON, flat key-value CSV, free-text TXT,
// spreadsheet XLSX, and derived-text HTML/PDF.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates a registry with all built-in extractors registered.
// docText may be nil; the PDF path then degrades to its
// capability-unavailable fallback.
func NewRegistry(docText TextExtractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}

	r.Register(NewStructuredExtractor())
	r.Register(NewFlatKVExtractor())
	r.Register(NewFreeTextExtractor())
	r.Register(NewSpreadsheetExtractor())
	r.Register(NewDocumentExtractor(docText))

	return r
}

// Register registers an extractor for all of its extensions.
func (r *Registry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// ForPath resolves the extractor for a file path. An unrecognized
// extension is a hard error for this stage; the pipeline boundary
// recovers it with a PARSE_ERROR sentinel invoice.
func (r *Registry) ForPath(path string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q for %s", ext, path)
	}
	return e, nil
}

// parseMoney parses a decimal amount, tolerating thousands separators and
// a leading currency symbol.
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
