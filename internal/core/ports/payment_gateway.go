package ports

import (
	"context"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
)

// PaymentRequest is the payment intent sent to the collaborator.
type PaymentRequest struct {
	DraftID kernel.UUID
	Amount  int64
	Method  order.PaymentMethod
}

// PaymentResult is the collaborator's answer. A nil error with Approved false is a
// decline.
type PaymentResult struct {
	Approved      bool
	Reference     string
	DeclineReason string
}

// PaymentGateway settles card and mobile money payments. Implementations must honour
// ctx cancellation.
//
// DraftID is the idempotency key. A charge can be approved and the draft still fail
// to persist, leaving it in PaymentChosen; the next ResolvePayment then charges the
// same DraftID again. Implementations must deduplicate on DraftID and return the
// original result instead of charging twice.
type PaymentGateway interface {
	Charge(ctx context.Context, req PaymentRequest) (PaymentResult, error)
}
