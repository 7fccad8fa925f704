package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
)

// ResolvePaymentCommandHandler resolves payment for a draft in PaymentChosen.
//
// Example:
//
//	draft, receipt, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, orderflow.ErrPaymentFailed) {
//	    // nothing changed, the sender may retry or pick another method
//	}
//	fmt.Println(draft.Status(), receipt.Reference)
type ResolvePaymentCommandHandler struct {
	workflow Workflow
}

func NewResolvePaymentCommandHandler(workflow Workflow) ResolvePaymentCommandHandler {
	return ResolvePaymentCommandHandler{workflow: workflow}
}

// Handle returns the gateway answer as well; it is empty for methods settled offline.
func (h ResolvePaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ResolvePaymentCommand,
) (*order.Draft, ports.PaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, ports.PaymentResult{}, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, ports.PaymentResult{}, err
	}

	result, err := m.ResolvePayment(ctx)
	if err != nil {
		return nil, result, err
	}
	return m.Draft(), result, nil
}
