package commands

import (
	"errors"
	"strings"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/guard"
)

var ErrCancelDraftCommandIsNotConstructed = errors.New(
	"CancelDraftCommand must be created via NewCancelDraftCommand constructor",
)

type CancelDraftCommand struct {
	draftID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelDraftCommand(draftID kernel.UUID, reason string) (CancelDraftCommand, error) {
	if err := validateDraftID(draftID); err != nil {
		return CancelDraftCommand{}, err
	}
	return CancelDraftCommand{
		draftID: draftID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDraftCommand) Validate() error {
	return c.guard.Validate(ErrCancelDraftCommandIsNotConstructed)
}

func (c CancelDraftCommand) DraftID() kernel.UUID { return c.draftID }
func (c CancelDraftCommand) Reason() string       { return c.reason }
