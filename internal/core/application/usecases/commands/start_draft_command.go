package commands

import (
	"errors"

	"pickdrop/internal/pkg/guard"
)

var ErrStartDraftCommandIsNotConstructed = errors.New(
	"StartDraftCommand must be created via NewStartDraftCommand constructor",
)

// StartDraftCommand opens a new, empty draft.
type StartDraftCommand struct {
	guard guard.ConstructorGuard
}

func NewStartDraftCommand() StartDraftCommand {
	return StartDraftCommand{guard: guard.NewConstructorGuard()}
}

func (c StartDraftCommand) Validate() error {
	return c.guard.Validate(ErrStartDraftCommandIsNotConstructed)
}
