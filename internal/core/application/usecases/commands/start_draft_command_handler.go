package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

// StartDraftCommandHandler creates drafts.
//
// Example:
//
//	handler := NewStartDraftCommandHandler(engine)
//	draft, err := handler.Handle(ctx, NewStartDraftCommand())
//	if err != nil {
//	    return fmt.Errorf("start draft: %w", err)
//	}
//	fmt.Printf("draft %s is in status %s\n", draft.ID(), draft.Status())
type StartDraftCommandHandler struct {
	workflow Workflow
}

func NewStartDraftCommandHandler(workflow Workflow) StartDraftCommandHandler {
	return StartDraftCommandHandler{workflow: workflow}
}

// Handle returns the persisted draft.
func (h StartDraftCommandHandler) Handle(ctx context.Context, cmd StartDraftCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Start(ctx)
	if err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
