package commands

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

type SelectRouteCommandHandler struct {
	workflow Workflow
}

func NewSelectRouteCommandHandler(workflow Workflow) SelectRouteCommandHandler {
	return SelectRouteCommandHandler{workflow: workflow}
}

// Handle returns services.ErrSameEndpoint or services.ErrUnknownPoint errors from
// route validation unchanged; the draft keeps its previous route.
func (h SelectRouteCommandHandler) Handle(ctx context.Context, cmd SelectRouteCommand) (*order.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.workflow.Resume(ctx, cmd.DraftID())
	if err != nil {
		return nil, err
	}

	if cmd.DepartureID() == "" {
		err = m.SelectArrival(ctx, cmd.ArrivalID())
	} else {
		err = m.SelectRoute(ctx, cmd.DepartureID(), cmd.ArrivalID())
	}
	if err != nil {
		return nil, err
	}
	return m.Draft(), nil
}
