package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/pkg/errs"
)

// Snapshot is the persisted form of a Draft: everything needed to resume the workflow
// at the exact step it was left.
type Snapshot struct {
	DraftID        kernel.UUID           `json:"draftId"`
	PackageSpec    parcel.PackageSpec    `json:"packageSpec"`
	ServiceOptions parcel.ServiceOptions `json:"serviceOptions"`
	Route          *Route                `json:"route"`
	RecipientInfo  RecipientInfo         `json:"recipientInfo"`
	PaymentMethod  PaymentMethod         `json:"paymentMethod"`
	Status         Status                `json:"status"`
	PriceBreakdown *PriceBreakdown       `json:"priceBreakdown"`
	Settlement     *Settlement           `json:"settlement"`
	TrackingNumber *TrackingNumber       `json:"trackingNumber"`
	CancelReason   string                `json:"cancelReason,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// Snapshot captures the draft. The result shares no memory with d.
func (d *Draft) Snapshot() Snapshot {
	s := Snapshot{
		DraftID:        d.id,
		PackageSpec:    d.packageSpec,
		ServiceOptions: d.serviceOptions,
		Route:          d.Route(),
		RecipientInfo:  d.recipient,
		PaymentMethod:  d.paymentMethod,
		Status:         d.status,
		PriceBreakdown: d.Price(),
		Settlement:     d.Settlement(),
		CancelReason:   d.cancelReason,
		CreatedAt:      d.createdAt,
		UpdatedAt:      d.updatedAt,
	}
	if d.trackingNumber != "" {
		tn := d.trackingNumber
		s.TrackingNumber = &tn
	}
	return s
}

// RestoreDraft rebuilds a draft from persistence, checking that the snapshot is
// consistent with its status.
func RestoreDraft(s Snapshot) (*Draft, error) {
	if err := errors.Join(s.DraftID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}

	d := &Draft{
		id:             s.DraftID,
		packageSpec:    s.PackageSpec,
		serviceOptions: s.ServiceOptions,
		recipient:      s.RecipientInfo,
		paymentMethod:  s.PaymentMethod,
		status:         s.Status,
		cancelReason:   s.CancelReason,
		createdAt:      stamp(s.CreatedAt),
		updatedAt:      stamp(s.UpdatedAt),
		isConstructed:  true,
	}
	if s.Route != nil {
		r := s.Route.clone()
		d.route = &r
	}
	if s.PriceBreakdown != nil {
		p := *s.PriceBreakdown
		d.price = &p
	}
	if s.Settlement != nil {
		st := *s.Settlement
		d.settlement = &st
	}
	if s.TrackingNumber != nil {
		d.trackingNumber = *s.TrackingNumber
	}

	if err := d.checkConsistency(); err != nil {
		return nil, fmt.Errorf("restore draft %s: %w", s.DraftID, err)
	}
	return d, nil
}

// MarshalSnapshot encodes a draft as its JSON snapshot.
func MarshalSnapshot(d *Draft) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(d.Snapshot())
}

// UnmarshalSnapshot decodes and restores a JSON snapshot.
func UnmarshalSnapshot(data []byte) (*Draft, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("snapshot", err)
	}
	return RestoreDraft(s)
}

func (d *Draft) checkConsistency() error {
	var problems []error
	reached := func(s Status) bool { return d.status >= s && d.status != Cancelled }

	if reached(RouteSelected) && d.route == nil {
		problems = append(problems, errs.NewValueIsRequiredError("route"))
	}
	if reached(PaymentChosen) {
		if err := d.paymentMethod.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if d.status.IsPriceFrozen() && (d.price == nil || d.settlement == nil) {
		problems = append(problems, errs.NewValueIsRequiredError("priceBreakdown"))
	}
	if d.price != nil {
		if err := d.price.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if reached(Confirmed) {
		if err := d.trackingNumber.Validate(); err != nil {
			problems = append(problems, err)
		}
	} else if d.trackingNumber != "" && d.status != Cancelled {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("trackingNumber",
			fmt.Errorf("assigned before confirmation in status %s", d.status)))
	}
	if d.serviceOptions.ExpressTier != "" {
		if err := d.serviceOptions.Validate(); err != nil {
			problems = append(problems, err)
		}
	}

	return errors.Join(problems...)
}
