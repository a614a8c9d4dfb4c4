package model

import "time"

// PaymentStatus is the outcome of the payment stage.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentSkipped PaymentStatus = "SKIPPED" // Gate not passed; executor never invoked
)

// PaymentResult is the audit record of the payment stage.
type PaymentResult struct {
	Status      PaymentStatus `json:"status"`
	Vendor      string        `json:"vendor"`
	Amount      float64       `json:"amount"`
	ReferenceID string        `json:"payment_reference_id"`
	Timestamp   time.Time     `json:"timestamp"`
	Reason      string        `json:"reason,omitempty"` // Why skipped or failed
}
