package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/pkg/errs"
)

// ErrDraftIsNotConstructed is returned when a Draft was not created through NewDraft
// or RestoreDraft.
var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft or RestoreDraft")

// Draft is the aggregate root of one shipment, from the first keystroke of package
// entry to the recipient collecting the parcel.
//
// Draft follows these invariants:
//   - the status only moves along the edges defined by Status
//   - a route is set from RouteSelected onwards
//   - recipient and payment method are set from PaymentChosen onwards
//   - price and settlement are frozen exactly once, when payment resolves
//   - a tracking number exists from Confirmed onwards
//
// Mutators either apply completely or leave the draft untouched.
type Draft struct {
	id             kernel.UUID
	packageSpec    parcel.PackageSpec
	serviceOptions parcel.ServiceOptions
	route          *Route
	recipient      RecipientInfo
	paymentMethod  PaymentMethod
	status         Status
	price          *PriceBreakdown
	settlement     *Settlement
	trackingNumber TrackingNumber
	cancelReason   string
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewDraft starts an empty draft.
func NewDraft(id kernel.UUID, now time.Time) (*Draft, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ts := stamp(now)
	return &Draft{
		id:             id,
		serviceOptions: parcel.ServiceOptions{ExpressTier: parcel.Standard},
		status:         Drafting,
		createdAt:      ts,
		updatedAt:      ts,
		isConstructed:  true,
	}, nil
}

func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

func (d *Draft) ID() kernel.UUID                       { return d.id }
func (d *Draft) PackageSpec() parcel.PackageSpec       { return d.packageSpec }
func (d *Draft) ServiceOptions() parcel.ServiceOptions { return d.serviceOptions }
func (d *Draft) Recipient() RecipientInfo              { return d.recipient }
func (d *Draft) PaymentMethod() PaymentMethod          { return d.paymentMethod }
func (d *Draft) Status() Status                        { return d.status }
func (d *Draft) TrackingNumber() TrackingNumber        { return d.trackingNumber }
func (d *Draft) CancelReason() string                  { return d.cancelReason }
func (d *Draft) CreatedAt() time.Time                  { return d.createdAt }
func (d *Draft) UpdatedAt() time.Time                  { return d.updatedAt }

// Route returns a copy of the selected route, or nil.
func (d *Draft) Route() *Route {
	if d.route == nil {
		return nil
	}
	r := d.route.clone()
	return &r
}

// Price returns a copy of the frozen breakdown, or nil before payment resolution.
func (d *Draft) Price() *PriceBreakdown {
	if d.price == nil {
		return nil
	}
	p := *d.price
	return &p
}

// Settlement returns a copy of the frozen settlement, or nil.
func (d *Draft) Settlement() *Settlement {
	if d.settlement == nil {
		return nil
	}
	s := *d.settlement
	return &s
}

// IsEqual compares drafts by identity.
func (d *Draft) IsEqual(other *Draft) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Clone returns a deep copy that can be mutated without affecting d.
func (d *Draft) Clone() *Draft {
	c := *d
	c.route = d.Route()
	c.price = d.Price()
	c.settlement = d.Settlement()
	return &c
}

// EditPackage records in-progress package entry without validating the package
// itself. Only the Drafting status accepts partial edits; later states go
// through SubmitPackageDetails. The express tier must still be a known tier so
// the stored snapshot restores.
func (d *Draft) EditPackage(spec parcel.PackageSpec, opts parcel.ServiceOptions, now time.Time) error {
	if d.status != Drafting {
		return errs.NewIllegalTransitionError(d.status, Drafting)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	d.packageSpec = spec
	d.serviceOptions = opts
	d.touch(now)
	return nil
}

// SubmitPackageDetails validates the package and options and completes the package
// step. Before payment resolution it may be called again to amend them.
func (d *Draft) SubmitPackageDetails(spec parcel.PackageSpec, opts parcel.ServiceOptions, now time.Time) error {
	next, err := d.status.SubmitPackage()
	if err != nil {
		return err
	}
	if err = opts.Validate(); err != nil {
		return err
	}
	if err = spec.Validate(); err != nil {
		return err
	}

	d.packageSpec = spec.Normalized()
	opts.ExpressTier = opts.ExpressTier.Normalize()
	d.serviceOptions = opts
	d.status = next
	d.touch(now)
	return nil
}

// SelectRoute stores a route already validated by the route selector.
func (d *Draft) SelectRoute(route Route, now time.Time) error {
	next, err := d.status.SelectRoute()
	if err != nil {
		return err
	}
	if route.DeparturePointID == "" || route.ArrivalPointID == "" {
		return errs.NewValueIsRequiredError("route")
	}

	r := route.clone()
	d.route = &r
	d.status = next
	d.touch(now)
	return nil
}

// ChoosePayment records who collects the parcel and how it is paid for.
func (d *Draft) ChoosePayment(recipient RecipientInfo, method PaymentMethod, now time.Time) error {
	next, err := d.status.ChoosePayment()
	if err != nil {
		return err
	}
	if err = method.Validate(); err != nil {
		return err
	}
	if err = recipient.Validate(); err != nil {
		return err
	}

	d.recipient = recipient.Normalized()
	d.paymentMethod = method
	d.status = next
	d.touch(now)
	return nil
}

// ResolvePayment freezes the price and settlement and moves to the state dictated by
// the payment method.
func (d *Draft) ResolvePayment(price PriceBreakdown, settlement Settlement, now time.Time) error {
	next, err := d.status.ResolvePayment(d.paymentMethod)
	if err != nil {
		return err
	}
	if d.price != nil {
		return fmt.Errorf("price already frozen: %w", errs.NewIllegalTransitionError(d.status, next))
	}
	if err = price.Validate(); err != nil {
		return err
	}

	d.price = &price
	d.settlement = &settlement
	d.status = next
	d.touch(now)
	return nil
}

// Confirm assigns the tracking number.
func (d *Draft) Confirm(tn TrackingNumber, now time.Time) error {
	next, err := d.status.Confirm()
	if err != nil {
		return err
	}
	if err = tn.Validate(); err != nil {
		return err
	}

	d.trackingNumber = tn
	d.status = next
	d.touch(now)
	return nil
}

// AdvanceTo moves one step along the hand-off chain.
func (d *Draft) AdvanceTo(to Status, now time.Time) error {
	next, err := d.status.AdvanceTo(to)
	if err != nil {
		return err
	}

	d.status = next
	d.touch(now)
	return nil
}

// Cancel abandons the draft. Not possible once confirmed.
func (d *Draft) Cancel(reason string, now time.Time) error {
	next, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.cancelReason = strings.TrimSpace(reason)
	d.status = next
	d.touch(now)
	return nil
}

func (d *Draft) touch(now time.Time) {
	d.updatedAt = stamp(now)
}

// stamp drops the monotonic reading and sub-microsecond precision so timestamps
// survive every store unchanged.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
