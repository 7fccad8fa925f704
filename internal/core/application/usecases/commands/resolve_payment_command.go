package commands

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/guard"
)

var ErrResolvePaymentCommandIsNotConstructed = errors.New(
	"ResolvePaymentCommand must be created via NewResolvePaymentCommand constructor",
)

// ResolvePaymentCommand settles the chosen payment method and freezes the price.
type ResolvePaymentCommand struct {
	draftID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewResolvePaymentCommand(draftID kernel.UUID) (ResolvePaymentCommand, error) {
	if err := validateDraftID(draftID); err != nil {
		return ResolvePaymentCommand{}, err
	}
	return ResolvePaymentCommand{draftID: draftID, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolvePaymentCommand) Validate() error {
	return c.guard.Validate(ErrResolvePaymentCommandIsNotConstructed)
}

func (c ResolvePaymentCommand) DraftID() kernel.UUID { return c.draftID }
