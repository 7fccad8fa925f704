package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

type AdvanceDraftCommandHandler struct {
	workflow Workflow
}

func NewAdvanceDraftCommandHandler(workflow Workflow) AdvanceDraftCommandHandler {
	return AdvanceDraftCommandHandler{workflow: workflow}
}

// Handle moves the draft one step forward. Skipping a step is an
// *errs.IllegalTransitionError.
func (h AdvanceDraftCommandHandler) Handle(ctx context.Context, cmd AdvanceDraftCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, err
	}
	if err = m.Advance(ctx, cmd.To()); err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
