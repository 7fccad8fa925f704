package order

import (
	"fmt"

	"pickdrop/internal/pkg/errs"
)

// PaymentMethod is how the shipment is paid for.
type PaymentMethod string

const (
	Card           PaymentMethod = "card"
	MobileMoney    PaymentMethod = "mobileMoney"
	CashAtDeposit  PaymentMethod = "cashAtDeposit"
	PayByRecipient PaymentMethod = "payByRecipient"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case Card, MobileMoney, CashAtDeposit, PayByRecipient:
		return nil
	case "":
		return errs.NewValueIsRequiredError("paymentMethod")
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a payment method", string(m)))
	}
}

// RequiresGateway reports methods settled online through the payment collaborator.
func (m PaymentMethod) RequiresGateway() bool {
	return m == Card || m == MobileMoney
}

// ResolvedStatus is the status reached from PaymentChosen with this method.
func (m PaymentMethod) ResolvedStatus() (Status, error) {
	switch m {
	case Card, MobileMoney:
		return Paid, nil
	case CashAtDeposit:
		return PendingCashAtDeposit, nil
	case PayByRecipient:
		return PendingRecipientPayment, nil
	default:
		return Unknown, m.Validate()
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
