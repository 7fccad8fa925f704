package commands

import "context"

type RestartDraftCommandHandler struct {
	workflow Workflow
}

func NewRestartDraftCommandHandler(workflow Workflow) RestartDraftCommandHandler {
	return RestartDraftCommandHandler{workflow: workflow}
}

// Handle clears the snapshot. Restarting an unknown draft is not an error.
func (h RestartDraftCommandHandler) Handle(ctx context.Context, cmd RestartDraftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.workflow.Restart(ctx, cmd.DraftID())
}
