package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

type SubmitPackageCommandHandler struct {
	workflow Workflow
}

func NewSubmitPackageCommandHandler(workflow Workflow) SubmitPackageCommandHandler {
	return SubmitPackageCommandHandler{workflow: workflow}
}

func (h SubmitPackageCommandHandler) Handle(ctx context.Context, cmd SubmitPackageCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, err
	}

	if cmd.Partial() {
		err = m.EditPackage(ctx, cmd.Package(), cmd.ServiceOptions())
	} else {
		err = m.SubmitPackageDetails(ctx, cmd.Package(), cmd.ServiceOptions())
	}
	if err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
