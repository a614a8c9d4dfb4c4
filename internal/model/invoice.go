package model

// Sentinel vendor values. These are in-band markers, not real vendors:
// downstream rules must treat them as "field absent".
const (
	VendorUnknown    = "Unknown"     // Extractor could not determine the vendor
	VendorParseError = "PARSE_ERROR" // Extraction itself failed irrecoverably
)

// LineItem represents a single line item on an invoice.
// Immutable once created by the extractor; a negative quantity is
// preserved as-is and left for the validator to flag.
type LineItem struct {
	Name      string   `json:"item"`                 // Item name as stated on the invoice
	Quantity  int      `json:"quantity"`             // May be negative
	UnitPrice *float64 `json:"unit_price,omitempty"` // Stated per-unit price
	Amount    *float64 `json:"amount,omitempty"`     // Stated line total (qty x unit_price should match)
}

// Invoice is the normalized invoice record produced by extraction.
// Created once and never mutated afterward.
type Invoice struct {
	Vendor        string     `json:"vendor"`                   // "Unknown"/"PARSE_ERROR" are sentinels
	Amount        float64    `json:"amount"`                   // 0.0 is the "absent" sentinel
	Currency      string     `json:"currency"`
	LineItems     []LineItem `json:"line_items"`               // Input order preserved
	InvoiceNumber string     `json:"invoice_number,omitempty"` // Dedup/lookup key
	DueDate       string     `json:"due_date,omitempty"`
	VendorAddress string     `json:"vendor_address,omitempty"`
	Subtotal      *float64   `json:"subtotal,omitempty"`
	TaxRate       *float64   `json:"tax_rate,omitempty"`
	TaxAmount     *float64   `json:"tax_amount,omitempty"`
	PaymentTerms  string     `json:"payment_terms,omitempty"`
	Revision      string     `json:"revision,omitempty"` // Presence makes this a distinct entity
}

// VendorMissing reports whether the vendor field carries a sentinel
// rather than a real vendor name.
func (inv *Invoice) VendorMissing() bool {
	return inv.Vendor == VendorUnknown || inv.Vendor == VendorParseError || inv.Vendor == ""
}

// AmountMissing reports whether the total carries the "absent" sentinel.
// A legitimately-zero total is indistinguishable from a missing one here;
// that ambiguity is deliberate and relied on by downstream policy.
func (inv *Invoice) AmountMissing() bool {
	return inv.Amount == 0.0
}

// DedupKey returns the identity key for this invoice. A revised invoice
// is a distinct entity from the same-numbered unrevised one.
func (inv *Invoice) DedupKey() string {
	if inv.Revision == "" {
		return inv.InvoiceNumber
	}
	return inv.InvoiceNumber + "#" + inv.Revision
}

// MinimalInvoice builds the sentinel invoice used when extraction cannot
// produce anything better.
func MinimalInvoice(vendor string) *Invoice {
	return &Invoice{
		Vendor:    vendor,
		Amount:    0.0,
		Currency:  "USD",
		LineItems: []LineItem{},
	}
}
