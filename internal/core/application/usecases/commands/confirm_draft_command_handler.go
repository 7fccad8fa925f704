package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

type ConfirmDraftCommandHandler struct {
	workflow Workflow
}

func NewConfirmDraftCommandHandler(workflow Workflow) ConfirmDraftCommandHandler {
	return ConfirmDraftCommandHandler{workflow: workflow}
}

func (h ConfirmDraftCommandHandler) Handle(ctx context.Context, cmd ConfirmDraftCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, err
	}
	if _, err = m.Confirm(ctx); err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
