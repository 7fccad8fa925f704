package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

type ChoosePaymentCommandHandler struct {
	workflow Workflow
}

func NewChoosePaymentCommandHandler(workflow Workflow) ChoosePaymentCommandHandler {
	return ChoosePaymentCommandHandler{workflow: workflow}
}

func (h ChoosePaymentCommandHandler) Handle(ctx context.Context, cmd ChoosePaymentCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, err
	}
	if err = m.ChoosePayment(ctx, cmd.Recipient(), cmd.Method()); err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
