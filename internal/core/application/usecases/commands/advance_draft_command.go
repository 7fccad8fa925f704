package commands

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/pkg/guard"
)

var ErrAdvanceDraftCommandIsNotConstructed = errors.New(
	"AdvanceDraftCommand must be created via NewAdvanceDraftCommand constructor",
)

// AdvanceDraftCommand records a physical hand-off: deposit at the departure relay,
// transit, arrival at the destination relay and collection by the recipient.
type AdvanceDraftCommand struct {
	draftID kernel.UUID
	to      order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceDraftCommand parses the target status name (for example "inTransit").
func NewAdvanceDraftCommand(draftID kernel.UUID, to string) (AdvanceDraftCommand, error) {
	status, statusErr := order.ParseStatus(to)
	if err := errors.Join(validateDraftID(draftID), statusErr); err != nil {
		return AdvanceDraftCommand{}, err
	}

	return AdvanceDraftCommand{draftID: draftID, to: status, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceDraftCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDraftCommandIsNotConstructed)
}

func (c AdvanceDraftCommand) DraftID() kernel.UUID { return c.draftID }
func (c AdvanceDraftCommand) To() order.Status     { return c.to }
