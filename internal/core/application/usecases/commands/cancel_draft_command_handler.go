package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

// CancelDraftCommandHandler cancels and archives a draft that is not yet confirmed.
type CancelDraftCommandHandler struct {
	workflow Workflow
}

func NewCancelDraftCommandHandler(workflow Workflow) CancelDraftCommandHandler {
	return CancelDraftCommandHandler{workflow: workflow}
}

func (h CancelDraftCommandHandler) Handle(ctx context.Context, cmd CancelDraftCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, err
	}
	if err = m.Cancel(ctx, cmd.Reason()); err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
