package commands

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/pkg/guard"
)

var ErrChoosePaymentCommandIsNotConstructed = errors.New(
	"ChoosePaymentCommand must be created via NewChoosePaymentCommand constructor",
)

// ChoosePaymentCommand records the recipient and the payment method of a draft.
//
// Example:
//
//	cmd, err := NewChoosePaymentCommand(draftID,
//	    order.RecipientInfo{Name: "Awa Mbarga", Phone: "699112233"}, "mobileMoney")
//	if err != nil {
//	    return err
//	}
type ChoosePaymentCommand struct {
	draftID   kernel.UUID
	recipient order.RecipientInfo
	method    order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewChoosePaymentCommand parses the payment method and validates the recipient.
func NewChoosePaymentCommand(draftID kernel.UUID, recipient order.RecipientInfo, method string) (ChoosePaymentCommand, error) {
	parsed, methodErr := order.ParsePaymentMethod(method)
	if err := errors.Join(validateDraftID(draftID), methodErr, recipient.Validate()); err != nil {
		return ChoosePaymentCommand{}, err
	}

	return ChoosePaymentCommand{
		draftID:   draftID,
		recipient: recipient,
		method:    parsed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChoosePaymentCommand) Validate() error {
	return c.guard.Validate(ErrChoosePaymentCommandIsNotConstructed)
}

func (c ChoosePaymentCommand) DraftID() kernel.UUID           { return c.draftID }
func (c ChoosePaymentCommand) Recipient() order.RecipientInfo { return c.recipient }
func (c ChoosePaymentCommand) Method() order.PaymentMethod    { return c.method }
