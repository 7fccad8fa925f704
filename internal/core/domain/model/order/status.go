package order

import (
	"fmt"

	"pickdrop/internal/pkg/errs"
)

// Status is the position of a draft in the ordering workflow.
//
//	Drafting ─> PackageDetailsComplete ─> RouteSelected ─> PaymentChosen ─┬─> Paid ────────────────────┐
//	                                                                       ├─> PendingCashAtDeposit ────┼─> Confirmed
//	                                                                       └─> PendingRecipientPayment ─┘
//	Confirmed ─> Deposited ─> InTransit ─> ArrivedAtRelay ─> Received
//
// Every state before Confirmed may also move to Cancelled. Received and Cancelled are
// terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Drafting
	PackageDetailsComplete
	RouteSelected
	PaymentChosen
	Paid
	PendingCashAtDeposit
	PendingRecipientPayment
	Confirmed
	Deposited
	InTransit
	ArrivedAtRelay
	Received
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "unknown",
		Drafting:                "draft",
		PackageDetailsComplete:  "packageDetailsComplete",
		RouteSelected:           "routeSelected",
		PaymentChosen:           "paymentChosen",
		Paid:                    "paid",
		PendingCashAtDeposit:    "pendingCashAtDeposit",
		PendingRecipientPayment: "pendingRecipientPayment",
		Confirmed:               "confirmed",
		Deposited:               "deposited",
		InTransit:               "inTransit",
		ArrivedAtRelay:          "arrivedAtRelay",
		Received:                "received",
		Cancelled:               "cancelled",
	}
}

// ParseStatus is the inverse of String. "unknown" is rejected.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalText encodes the status by name so snapshots stay readable and stable
// across reorderings of the constants.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports Received and Cancelled.
func (s Status) IsTerminal() bool {
	return s == Received || s == Cancelled
}

// IsPaymentResolved reports the three states reachable from PaymentChosen.
func (s Status) IsPaymentResolved() bool {
	return s == Paid || s == PendingCashAtDeposit || s == PendingRecipientPayment
}

// IsBeforePaymentResolution reports the states in which the sender may still go back
// and change what was entered.
func (s Status) IsBeforePaymentResolution() bool {
	return s >= Drafting && s <= PaymentChosen
}

// IsPriceFrozen reports whether the price breakdown may no longer be recomputed.
func (s Status) IsPriceFrozen() bool {
	return s >= Paid && s <= Received
}

// IsCancellable reports whether Cancel is allowed.
func (s Status) IsCancellable() bool {
	return s >= Drafting && s < Confirmed
}

// SubmitPackage moves Drafting to PackageDetailsComplete. Later states before payment
// resolution keep their status so the sender can go back and amend the package.
func (s Status) SubmitPackage() (Status, error) {
	switch s {
	case Drafting:
		return PackageDetailsComplete, nil
	case PackageDetailsComplete, RouteSelected, PaymentChosen:
		return s, nil
	default:
		return s, errs.NewIllegalTransitionError(s, PackageDetailsComplete)
	}
}

// SelectRoute moves PackageDetailsComplete to RouteSelected. Re-selecting keeps the
// current status.
func (s Status) SelectRoute() (Status, error) {
	switch s {
	case PackageDetailsComplete:
		return RouteSelected, nil
	case RouteSelected, PaymentChosen:
		return s, nil
	default:
		return s, errs.NewIllegalTransitionError(s, RouteSelected)
	}
}

// ChoosePayment moves RouteSelected to PaymentChosen.
func (s Status) ChoosePayment() (Status, error) {
	switch s {
	case RouteSelected, PaymentChosen:
		return PaymentChosen, nil
	default:
		return s, errs.NewIllegalTransitionError(s, PaymentChosen)
	}
}

// ResolvePayment moves PaymentChosen to the state dictated by the payment method.
func (s Status) ResolvePayment(method PaymentMethod) (Status, error) {
	target, err := method.ResolvedStatus()
	if err != nil {
		return s, err
	}
	if s != PaymentChosen {
		return s, errs.NewIllegalTransitionError(s, target)
	}
	return target, nil
}

// Confirm moves any payment-resolved state to Confirmed.
func (s Status) Confirm() (Status, error) {
	if !s.IsPaymentResolved() {
		return s, errs.NewIllegalTransitionError(s, Confirmed)
	}
	return Confirmed, nil
}

// Next returns the following step of the physical hand-off chain.
func (s Status) Next() (Status, error) {
	switch s {
	case Confirmed:
		return Deposited, nil
	case Deposited:
		return InTransit, nil
	case InTransit:
		return ArrivedAtRelay, nil
	case ArrivedAtRelay:
		return Received, nil
	default:
		return s, errs.NewIllegalTransitionError(s, Unknown)
	}
}

// AdvanceTo allows only the single forward step returned by Next.
func (s Status) AdvanceTo(to Status) (Status, error) {
	next, err := s.Next()
	if err != nil || next != to {
		return s, errs.NewIllegalTransitionError(s, to)
	}
	return next, nil
}

// Cancel moves any state before Confirmed to Cancelled.
func (s Status) Cancel() (Status, error) {
	if !s.IsCancellable() {
		return s, errs.NewIllegalTransitionError(s, Cancelled)
	}
	return Cancelled, nil
}
