package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// DocumentExtractor handles derived-text containers: the document layer
// yields plain text, the free-text rules run over it, and every
// confidence tier is downgraded one step for the added indirection.
//
// HTML text extraction is built in; PDF depends on an injected
// TextExtractor capability and degrades gracefully without one.
type DocumentExtractor struct {
	pdfText TextExtractor // nil means the PDF capability is unavailable
}

// NewDocumentExtractor creates a new derived-text extractor.
func NewDocumentExtractor(pdfText TextExtractor) *DocumentExtractor {
	return &DocumentExtractor{pdfText: pdfText}
}

// Name returns the extractor name
func (e *DocumentExtractor) Name() string { return "derived-text" }

// Extensions returns the file extensions this extractor handles
func (e *DocumentExtractor) Extensions() []string { return []string{".html", ".htm", ".pdf"} }

// Extract pulls text out of the document container, then delegates to the
// free-text rules.
func (e *DocumentExtractor) Extract(data []byte) (*model.Invoice, *model.ParseReport, error) {
	if looksLikePDF(data) {
		return e.extractPDF(data)
	}
	return e.extractHTML(data)
}

func (e *DocumentExtractor) extractHTML(data []byte) (*model.Invoice, *model.ParseReport, error) {
	report := model.NewParseReport()

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		report.Warn("HTML parse failed: " + err.Error())
		report.Record("vendor", "html.parse_error", model.ConfidenceLow)
		report.Record("amount", "html.parse_error", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, err
	}

	text := visibleText(doc)
	return e.fromDerivedText(text, "html", report)
}

func (e *DocumentExtractor) extractPDF(data []byte) (*model.Invoice, *model.ParseReport, error) {
	report := model.NewParseReport()

	// No extraction capability at all: non-fatal, but nothing to parse.
	if e.pdfText == nil {
		report.Warn("no PDF text extraction capability available")
		report.Record("vendor", "pdf.unavailable", model.ConfidenceLow)
		report.Record("amount", "pdf.unavailable", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, nil
	}

	text, err := e.pdfText.ExtractText(data)
	if err != nil {
		report.Warn("PDF text extraction failed: " + err.Error())
		report.Record("vendor", "pdf.extract_error", model.ConfidenceLow)
		report.Record("amount", "pdf.extract_error", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorParseError), report, err
	}

	return e.fromDerivedText(text, "pdf", report)
}

// fromDerivedText applies the free-text rules to extracted text and merges
// the layered reports. Empty text after a successful extraction is a
// warning and an Unknown/0.0 invoice, not PARSE_ERROR: extraction worked,
// it just found nothing.
func (e *DocumentExtractor) fromDerivedText(text, prefix string, report *model.ParseReport) (*model.Invoice, *model.ParseReport, error) {
	if strings.TrimSpace(text) == "" {
		report.Warn("document contained no extractable text")
		report.Record("vendor", prefix+".empty", model.ConfidenceLow)
		report.Record("amount", prefix+".empty", model.ConfidenceLow)
		return model.MinimalInvoice(model.VendorUnknown), report, nil
	}

	inv, sub := extractFromText(text, prefix)
	sub.DowngradeAll() // One tier per indirection layer
	report.MergeFrom(sub)
	return inv, report, nil
}

// visibleText walks the node tree and collects text content, one line per
// text node so the line-anchored free-text patterns still apply.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// looksLikePDF checks the magic header.
func looksLikePDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
