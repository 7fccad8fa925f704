package services

import (
	"errors"
	"fmt"
	"strings"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/pkg/errs"
)

var (
	// ErrSameEndpoint is returned when departure and arrival are the same relay point.
	ErrSameEndpoint = errors.New("departure and arrival must differ")
	// ErrUnknownPoint is returned when a relay point id is not in the catalog.
	ErrUnknownPoint = errors.New("unknown relay point")
)

// RouteError ties a route failure to the request field that caused it.
type RouteError struct {
	Field string
	ID    string
	Err   error
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Err, e.Field, e.ID)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

// PointCatalog is the part of the relay point catalog route selection needs.
type PointCatalog interface {
	Get(id string) (relaypoint.RelayPoint, error)
	DistanceKm(a, b relaypoint.RelayPoint) float64
}

// RouteSelector validates departure/arrival pairs against the catalog.
//
// In fixed-departure mode the departure comes from configuration and the sender only
// picks the arrival.
type RouteSelector struct {
	catalog        PointCatalog
	fixedDeparture string
}

func NewRouteSelector(catalog PointCatalog) *RouteSelector {
	return &RouteSelector{catalog: catalog}
}

func NewFixedDepartureRouteSelector(catalog PointCatalog, departureID string) (*RouteSelector, error) {
	departureID = strings.TrimSpace(departureID)
	if departureID == "" {
		return nil, errs.NewValueIsRequiredError("departurePointId")
	}
	return &RouteSelector{catalog: catalog, fixedDeparture: departureID}, nil
}

// FixedDeparture reports the configured departure, if any.
func (s *RouteSelector) FixedDeparture() (string, bool) {
	return s.fixedDeparture, s.fixedDeparture != ""
}

// SelectRoute returns a route with its distance set.
//
// Errors: ErrSameEndpoint, ErrUnknownPoint (as *RouteError), errs.ErrInvalidInput for a
// blank id or, in fixed mode, a departure other than the configured one.
func (s *RouteSelector) SelectRoute(departureID, arrivalID string) (order.Route, error) {
	departureID = strings.TrimSpace(departureID)
	arrivalID = strings.TrimSpace(arrivalID)

	if err := errors.Join(requireID("departurePointId", departureID), requireID("arrivalPointId", arrivalID)); err != nil {
		return order.Route{}, err
	}

	if fixed, ok := s.FixedDeparture(); ok && departureID != fixed {
		return order.Route{}, errs.NewValueIsInvalidErrorWithCause("departurePointId",
			fmt.Errorf("departure is fixed to %q", fixed))
	}

	if departureID == arrivalID {
		return order.Route{}, &RouteError{Field: "arrivalPointId", ID: arrivalID, Err: ErrSameEndpoint}
	}

	departure, depErr := s.lookup("departurePointId", departureID)
	arrival, arrErr := s.lookup("arrivalPointId", arrivalID)
	if err := errors.Join(depErr, arrErr); err != nil {
		return order.Route{}, err
	}

	distance := s.catalog.DistanceKm(departure, arrival)
	return order.Route{
		DeparturePointID: departure.ID(),
		ArrivalPointID:   arrival.ID(),
		DistanceKm:       &distance,
	}, nil
}

// SelectArrival routes from the fixed departure. Only valid in fixed-departure mode.
func (s *RouteSelector) SelectArrival(arrivalID string) (order.Route, error) {
	fixed, ok := s.FixedDeparture()
	if !ok {
		return order.Route{}, errs.NewValueIsRequiredErrorWithCause("departurePointId",
			errors.New("no fixed departure is configured"))
	}
	return s.SelectRoute(fixed, arrivalID)
}

func (s *RouteSelector) lookup(field, id string) (relaypoint.RelayPoint, error) {
	p, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return relaypoint.RelayPoint{}, &RouteError{Field: field, ID: id, Err: ErrUnknownPoint}
		}
		return relaypoint.RelayPoint{}, fmt.Errorf("lookup %s: %w", field, err)
	}
	return p, nil
}

func requireID(field, id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError(field)
	}
	return nil
}
