package services

import (
	"fmt"
	"math"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingEngine turns a package description into a PriceBreakdown.
//
// Quote is a pure function of its arguments and the tariff: it holds no state, performs
// no I/O and is safe to call on every keystroke from any number of goroutines.
//
// Pricing rules:
//   - chargeable weight is the greater of actual and volumetric weight
//     (length × width × height / VolumetricDivisor, 0 unless all three sides are given)
//   - base fee is BaseFee + chargeable weight × PerKgFee
//   - fragile, liquid, perishable and express surcharges are percentages of the base fee
//   - insurance is a percentage of the declared value, only when insured
//   - pickup and delivery are flat add-ons
//   - every component is rounded half-up to an integer and the total is their sum
//
// Who pays is not a pricing concern: the breakdown is identical for every payment
// method. See Settle.
//
// Example usage:
//
//	engine := services.NewPricingEngine(services.DefaultTariff())
//	breakdown, err := engine.Quote(parcel.PackageSpec{WeightKg: 2.5, Fragile: true}, parcel.ServiceOptions{}, nil)
//	// breakdown.BaseFee == 2250, breakdown.FragileFee == 338, breakdown.Total == 2588
type PricingEngine struct {
	tariff Tariff
}

// NewPricingEngine creates an engine for the given tariff. The tariff is assumed valid;
// use Tariff.Validate when it comes from configuration.
func NewPricingEngine(tariff Tariff) PricingEngine {
	return PricingEngine{tariff: tariff}
}

// Tariff returns the tariff the engine prices with.
func (e PricingEngine) Tariff() Tariff {
	return e.tariff
}

// Quote computes the price breakdown.
//
// Parameters:
//   - pkg: the package; weight must be greater than 0
//   - opts: the service options; the express tier must be known (empty means standard)
//   - route: accepted for signature stability; the flat tariff does not price distance
//
// Returns:
//   - order.PriceBreakdown: every component plus the total
//   - error: *errs.ValueIsOutOfRangeError or *errs.ValueIsInvalidError, both matching
//     errs.ErrInvalidInput
func (e PricingEngine) Quote(pkg parcel.PackageSpec, opts parcel.ServiceOptions, _ *order.Route) (order.PriceBreakdown, error) {
	if err := e.validateInput(pkg, opts); err != nil {
		return order.PriceBreakdown{}, err
	}

	t := e.tariff
	weight := decimal.NewFromFloat(pkg.WeightKg)
	chargeable := decimal.Max(weight, e.volumetricWeight(pkg.Dimensions))

	baseFee := e.baseFee(chargeable)
	actualBaseFee := e.baseFee(weight)
	base := decimal.NewFromInt(baseFee)

	b := order.PriceBreakdown{
		BaseFee:             baseFee,
		VolumetricSurcharge: baseFee - actualBaseFee,
		ExpressFee:          roundHalfUp(base.Mul(t.ExpressRates[opts.ExpressTier.Normalize()])),
	}

	if pkg.Fragile {
		b.FragileFee = roundHalfUp(base.Mul(t.FragileRate))
	}
	if pkg.LiquidContent {
		b.LiquidFee = roundHalfUp(base.Mul(t.LiquidRate))
	}
	if pkg.Perishable {
		b.PerishableFee = roundHalfUp(base.Mul(t.PerishableRate))
	}
	if pkg.Insured && pkg.DeclaredValue > 0 {
		b.InsuranceFee = roundHalfUp(decimal.NewFromInt(pkg.DeclaredValue).Mul(t.InsuranceRate))
	}
	if opts.CourierPickupAtOrigin {
		b.PickupFee = t.PickupFee
	}
	if opts.CourierDeliveryAtDestination {
		b.DeliveryFee = t.DeliveryFee
	}

	b.Total = b.ComponentsSum()
	return b, nil
}

// Settle decides who owes what for a frozen breakdown.
func (e PricingEngine) Settle(b order.PriceBreakdown, method order.PaymentMethod) (order.Settlement, error) {
	return order.NewSettlement(b.Total, method, e.tariff.ProcessingFee(method))
}

func (e PricingEngine) validateInput(pkg parcel.PackageSpec, opts parcel.ServiceOptions) error {
	if math.IsNaN(pkg.WeightKg) || math.IsInf(pkg.WeightKg, 0) || pkg.WeightKg <= 0 {
		return errs.NewValueIsOutOfRangeError("weightKg", pkg.WeightKg, 0, math.MaxFloat64)
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"dimensions.lengthCm", pkg.Dimensions.LengthCm},
		{"dimensions.widthCm", pkg.Dimensions.WidthCm},
		{"dimensions.heightCm", pkg.Dimensions.HeightCm},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return errs.NewValueIsOutOfRangeError(f.name, f.value, 0, math.MaxFloat64)
		}
	}

	if pkg.Insured && pkg.DeclaredValue < 0 {
		return errs.NewValueIsOutOfRangeError("declaredValue", pkg.DeclaredValue, 0, int64(math.MaxInt64))
	}

	if err := opts.ExpressTier.Validate(); err != nil {
		return err
	}
	if _, ok := e.tariff.ExpressRates[opts.ExpressTier.Normalize()]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("expressTier", fmt.Errorf("no rate for %q", opts.ExpressTier.Normalize()))
	}

	return nil
}

func (e PricingEngine) volumetricWeight(d parcel.Dimensions) decimal.Decimal {
	if !d.IsComplete() {
		return decimal.Zero
	}
	volume := decimal.NewFromFloat(d.LengthCm).
		Mul(decimal.NewFromFloat(d.WidthCm)).
		Mul(decimal.NewFromFloat(d.HeightCm))
	return volume.Div(decimal.NewFromInt(e.tariff.VolumetricDivisor))
}

func (e PricingEngine) baseFee(chargeableKg decimal.Decimal) int64 {
	fee := decimal.NewFromInt(e.tariff.BaseFee).Add(chargeableKg.Mul(decimal.NewFromInt(e.tariff.PerKgFee)))
	return roundHalfUp(fee)
}

// roundHalfUp rounds to the nearest integer, halves away from zero. Every amount
// priced here is non-negative, so this is round half up.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
