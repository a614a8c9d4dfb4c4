package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// Executor is the payment-execution contract. It is only ever invoked
// for an approved invoice; gating lives in the pipeline, not here.
type Executor interface {
	// Pay executes a payment and returns its audit record
	Pay(ctx context.Context, vendor string, amount float64, invoiceRef string) (*model.PaymentResult, error)
}

// MockExecutor is a deterministic, side-effect-free executor. In
// production this would call a banking API; here it always succeeds and
// issues a traceable transaction reference.
type MockExecutor struct {
	now func() time.Time
}

// NewMockExecutor creates a mock payment executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{now: func() time.Time { return time.Now().UTC() }}
}

// Pay records a successful mock payment.
func (e *MockExecutor) Pay(_ context.Context, vendor string, amount float64, invoiceRef string) (*model.PaymentResult, error) {
	if invoiceRef == "" {
		invoiceRef = "UNKNOWN"
	}

	return &model.PaymentResult{
		Status:      model.PaymentPaid,
		Vendor:      vendor,
		Amount:      amount,
		ReferenceID: fmt.Sprintf("TXN-%s-%s", invoiceRef, uuid.NewString()),
		Timestamp:   e.now(),
	}, nil
}
