package services

import (
	"errors"
	"fmt"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tariff holds the pricing constants. Amounts are in the smallest currency unit,
// rates are fractions (0.15 = 15%).
type Tariff struct {
	BaseFee           int64
	PerKgFee          int64
	VolumetricDivisor int64

	FragileRate    decimal.Decimal
	LiquidRate     decimal.Decimal
	PerishableRate decimal.Decimal
	InsuranceRate  decimal.Decimal
	ExpressRates   map[parcel.ExpressTier]decimal.Decimal

	PickupFee      int64
	DeliveryFee    int64
	MobileMoneyFee int64
}

// DefaultTariff returns the published price list.
func DefaultTariff() Tariff {
	return Tariff{
		BaseFee:           1500,
		PerKgFee:          300,
		VolumetricDivisor: 5000,

		FragileRate:    decimal.RequireFromString("0.15"),
		LiquidRate:     decimal.RequireFromString("0.10"),
		PerishableRate: decimal.RequireFromString("0.20"),
		InsuranceRate:  decimal.RequireFromString("0.05"),
		ExpressRates: map[parcel.ExpressTier]decimal.Decimal{
			parcel.Standard:  decimal.Zero,
			parcel.Express72: decimal.RequireFromString("0.10"),
			parcel.Express48: decimal.RequireFromString("0.20"),
			parcel.Express24: decimal.RequireFromString("0.30"),
		},

		PickupFee:      1200,
		DeliveryFee:    1800,
		MobileMoneyFee: 100,
	}
}

// Validate rejects negative amounts and rates and a non-positive divisor.
func (t Tariff) Validate() error {
	var problems []error

	for _, f := range []struct {
		name  string
		value int64
	}{
		{"baseFee", t.BaseFee},
		{"perKgFee", t.PerKgFee},
		{"pickupFee", t.PickupFee},
		{"deliveryFee", t.DeliveryFee},
		{"mobileMoneyFee", t.MobileMoneyFee},
	} {
		if f.value < 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(f.name, fmt.Errorf("%d is negative", f.value)))
		}
	}
	if t.VolumetricDivisor <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("volumetricDivisor",
			fmt.Errorf("%d is not greater than 0", t.VolumetricDivisor)))
	}

	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"fragileRate", t.FragileRate},
		{"liquidRate", t.LiquidRate},
		{"perishableRate", t.PerishableRate},
		{"insuranceRate", t.InsuranceRate},
	} {
		if f.value.IsNegative() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(f.name, fmt.Errorf("%s is negative", f.value)))
		}
	}

	for _, tier := range []parcel.ExpressTier{parcel.Standard, parcel.Express72, parcel.Express48, parcel.Express24} {
		r, ok := t.ExpressRates[tier]
		if !ok {
			problems = append(problems, errs.NewValueIsRequiredError("expressRates."+string(tier)))
			continue
		}
		if r.IsNegative() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("expressRates."+string(tier), fmt.Errorf("%s is negative", r)))
		}
	}

	return errors.Join(problems...)
}

// ProcessingFee is what the payment channel adds on top of the breakdown.
func (t Tariff) ProcessingFee(method order.PaymentMethod) int64 {
	if method == order.MobileMoney {
		return t.MobileMoneyFee
	}
	return 0
}
