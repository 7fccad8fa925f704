package http

import (
	"time"

	"pickdrop/internal/core/application/usecases/queries"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/pkg/errs"
)

type Error struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	Fields    []errs.FieldError `json:"fields,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

type ServiceOptions struct {
	ExpressTier                  string `json:"expressTier"`
	CourierPickupAtOrigin        bool   `json:"courierPickupAtOrigin"`
	CourierDeliveryAtDestination bool   `json:"courierDeliveryAtDestination"`
}

func (o ServiceOptions) toDomain() (parcel.ServiceOptions, error) {
	tier, err := parcel.ParseExpressTier(o.ExpressTier)
	if err != nil {
		return parcel.ServiceOptions{}, err
	}
	return parcel.ServiceOptions{
		ExpressTier:                  tier,
		CourierPickupAtOrigin:        o.CourierPickupAtOrigin,
		CourierDeliveryAtDestination: o.CourierDeliveryAtDestination,
	}, nil
}

type PackageRequest struct {
	Package        parcel.PackageSpec `json:"package"`
	ServiceOptions ServiceOptions     `json:"serviceOptions"`
}

type QuoteRequest struct {
	PackageRequest
	DeparturePointID string `json:"departurePointId"`
	ArrivalPointID   string `json:"arrivalPointId"`
}

type Quote struct {
	Breakdown  order.PriceBreakdown `json:"breakdown"`
	DistanceKm *float64             `json:"distanceKm"`
}

type RouteRequest struct {
	DeparturePointID string `json:"departurePointId"`
	ArrivalPointID   string `json:"arrivalPointId"`
}

type PaymentChoiceRequest struct {
	Recipient     order.RecipientInfo `json:"recipient"`
	PaymentMethod string              `json:"paymentMethod"`
}

type AdvanceRequest struct {
	Status string `json:"status"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// Draft is the snapshot plus the fields only the API reports.
type Draft struct {
	order.Snapshot
	Archived         bool   `json:"archived,omitempty"`
	PaymentReference string `json:"paymentReference,omitempty"`
}

func draftFromDomain(d *order.Draft) Draft {
	return Draft{Snapshot: d.Snapshot()}
}

type DraftSummary struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	Total          *int64    `json:"total"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func draftSummaryFromQuery(r queries.ListDraftsQueryResponse) DraftSummary {
	return DraftSummary{
		ID:             r.ID.String(),
		Status:         r.Status.String(),
		TrackingNumber: r.TrackingNumber,
		Total:          r.Total,
		UpdatedAt:      r.UpdatedAt,
	}
}

type RelayPoint struct {
	relaypoint.Record
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

func relayPointFromQuery(r queries.ListRelayPointsQueryResponse) RelayPoint {
	return RelayPoint{Record: relaypoint.ToRecord(r.Point), DistanceKm: r.DistanceKm}
}
