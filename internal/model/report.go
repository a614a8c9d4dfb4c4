package model

// Confidence is the extraction-reliability tier attached to a field.
// It informs downstream trust weighting, never validation logic.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Downgrade returns the tier one step lower. LOW stays LOW.
func (c Confidence) Downgrade() Confidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	default:
		return ConfidenceLow
	}
}

// ParseReport records parse quality for one invoice: warnings, per-field
// provenance, and per-field confidence. Built incrementally during
// extraction; one report per invoice.
type ParseReport struct {
	Warnings         []string              `json:"parse_warnings"`
	FieldProvenance  map[string]string     `json:"field_provenance"`
	ConfidenceScores map[string]Confidence `json:"confidence_scores"`
}

// NewParseReport creates an empty parse report.
func NewParseReport() *ParseReport {
	return &ParseReport{
		Warnings:         []string{},
		FieldProvenance:  map[string]string{},
		ConfidenceScores: map[string]Confidence{},
	}
}

// Warn appends a human-readable parse warning.
func (r *ParseReport) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Record notes where a field's value came from and how reliable it is.
func (r *ParseReport) Record(field, provenance string, conf Confidence) {
	r.FieldProvenance[field] = provenance
	r.ConfidenceScores[field] = conf
}

// DowngradeAll lowers every field's confidence by one tier. Used when an
// extraction layer is stacked on top of another (document -> text -> fields):
// each indirection costs exactly one tier.
func (r *ParseReport) DowngradeAll() {
	for field, conf := range r.ConfidenceScores {
		r.ConfidenceScores[field] = conf.Downgrade()
	}
}

// MergeFrom folds a sub-step report into this one. Warnings and provenance
// accumulate; confidence from the sub-step wins on conflict. Reports are
// only ever merged across sub-steps of a single invoice, never across
// invoices.
func (r *ParseReport) MergeFrom(sub *ParseReport) {
	if sub == nil {
		return
	}
	r.Warnings = append(r.Warnings, sub.Warnings...)
	for field, prov := range sub.FieldProvenance {
		r.FieldProvenance[field] = prov
	}
	for field, conf := range sub.ConfidenceScores {
		r.ConfidenceScores[field] = conf
	}
}
