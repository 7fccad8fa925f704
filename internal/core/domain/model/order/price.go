package order

import (
	"fmt"

	"pickdrop/internal/pkg/errs"
)

// PriceBreakdown itemizes a quote in the smallest currency unit.
//
// VolumetricSurcharge is informative: it is the share of BaseFee caused by volumetric
// weight exceeding actual weight and is not added to Total a second time.
type PriceBreakdown struct {
	BaseFee             int64 `json:"baseFee"`
	VolumetricSurcharge int64 `json:"volumetricSurcharge"`
	FragileFee          int64 `json:"fragileFee"`
	LiquidFee           int64 `json:"liquidFee"`
	PerishableFee       int64 `json:"perishableFee"`
	InsuranceFee        int64 `json:"insuranceFee"`
	ExpressFee          int64 `json:"expressFee"`
	PickupFee           int64 `json:"pickupFee"`
	DeliveryFee         int64 `json:"deliveryFee"`
	Total               int64 `json:"total"`
}

// ComponentsSum adds every billable component.
func (p PriceBreakdown) ComponentsSum() int64 {
	return p.BaseFee + p.FragileFee + p.LiquidFee + p.PerishableFee +
		p.InsuranceFee + p.ExpressFee + p.PickupFee + p.DeliveryFee
}

// Validate checks non-negativity and that Total matches the components.
func (p PriceBreakdown) Validate() error {
	for _, f := range []struct {
		name  string
		value int64
	}{
		{"baseFee", p.BaseFee},
		{"volumetricSurcharge", p.VolumetricSurcharge},
		{"fragileFee", p.FragileFee},
		{"liquidFee", p.LiquidFee},
		{"perishableFee", p.PerishableFee},
		{"insuranceFee", p.InsuranceFee},
		{"expressFee", p.ExpressFee},
		{"pickupFee", p.PickupFee},
		{"deliveryFee", p.DeliveryFee},
	} {
		if f.value < 0 {
			return errs.NewValueIsInvalidErrorWithCause(f.name, fmt.Errorf("%d is negative", f.value))
		}
	}
	if p.VolumetricSurcharge > p.BaseFee {
		return errs.NewValueIsInvalidErrorWithCause("volumetricSurcharge", fmt.Errorf("%d exceeds base fee %d", p.VolumetricSurcharge, p.BaseFee))
	}
	if sum := p.ComponentsSum(); sum != p.Total {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d does not match components sum %d", p.Total, sum))
	}
	return nil
}

// Settlement records who is billed for a frozen breakdown.
// ProcessingFee is charged by the payment channel on top of the breakdown and is
// owed by the sender.
type Settlement struct {
	SenderOwes    int64 `json:"senderOwes"`
	RecipientOwes int64 `json:"recipientOwes"`
	ProcessingFee int64 `json:"processingFee"`
}

// NewSettlement splits total between sender and recipient. Only payByRecipient moves
// the amount to the recipient.
func NewSettlement(total int64, method PaymentMethod, processingFee int64) (Settlement, error) {
	if err := method.Validate(); err != nil {
		return Settlement{}, err
	}
	if total < 0 {
		return Settlement{}, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", total))
	}
	if processingFee < 0 {
		return Settlement{}, errs.NewValueIsInvalidErrorWithCause("processingFee", fmt.Errorf("%d is negative", processingFee))
	}

	if method == PayByRecipient {
		return Settlement{SenderOwes: 0, RecipientOwes: total}, nil
	}
	return Settlement{SenderOwes: total + processingFee, ProcessingFee: processingFee}, nil
}
