package commands

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/guard"
)

var ErrConfirmDraftCommandIsNotConstructed = errors.New(
	"ConfirmDraftCommand must be created via NewConfirmDraftCommand constructor",
)

// ConfirmDraftCommand turns a paid (or payment-deferred) draft into a trackable order.
type ConfirmDraftCommand struct {
	draftID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewConfirmDraftCommand(draftID kernel.UUID) (ConfirmDraftCommand, error) {
	if err := validateDraftID(draftID); err != nil {
		return ConfirmDraftCommand{}, err
	}
	return ConfirmDraftCommand{draftID: draftID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmDraftCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDraftCommandIsNotConstructed)
}

func (c ConfirmDraftCommand) DraftID() kernel.UUID { return c.draftID }
