package commands

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/guard"
)

var ErrRestartDraftCommandIsNotConstructed = errors.New(
	"RestartDraftCommand must be created via NewRestartDraftCommand constructor",
)

// RestartDraftCommand discards a draft so the sender can start over.
type RestartDraftCommand struct {
	draftID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewRestartDraftCommand(draftID kernel.UUID) (RestartDraftCommand, error) {
	if err := validateDraftID(draftID); err != nil {
		return RestartDraftCommand{}, err
	}
	return RestartDraftCommand{draftID: draftID, guard: guard.NewConstructorGuard()}, nil
}

func (c RestartDraftCommand) Validate() error {
	return c.guard.Validate(ErrRestartDraftCommandIsNotConstructed)
}

func (c RestartDraftCommand) DraftID() kernel.UUID { return c.draftID }
