package queries

import (
	"errors"
	"strings"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/pkg/errs"
	"pickdrop/internal/pkg/guard"
)

var ErrListRelayPointsQueryIsNotConstructed = errors.New(
	"ListRelayPointsQuery must be created via NewListRelayPointsQuery constructor",
)

// ListRelayPointsQuery lists relay points for selection screens. Every filter is
// optional and they combine: type, then proximity, then free text.
type ListRelayPointsQuery struct {
	search     string
	pointType  relaypoint.Type
	near       *kernel.Coordinates
	radiusKm   float64
	excludeIDs []string

	guard guard.ConstructorGuard
}

// ListRelayPointsFilter is the raw input of NewListRelayPointsQuery.
type ListRelayPointsFilter struct {
	Search     string
	Type       string
	Near       *kernel.Coordinates
	RadiusKm   float64
	ExcludeIDs []string
}

// NewListRelayPointsQuery parses the type and applies relaypoint.DefaultNearbyRadiusKm
// when a position is given without a radius.
func NewListRelayPointsQuery(f ListRelayPointsFilter) (ListRelayPointsQuery, error) {
	q := ListRelayPointsQuery{
		search:     strings.TrimSpace(f.Search),
		radiusKm:   f.RadiusKm,
		excludeIDs: f.ExcludeIDs,
		guard:      guard.NewConstructorGuard(),
	}

	var problems []error
	if strings.TrimSpace(f.Type) != "" {
		t, err := relaypoint.ParseType(f.Type)
		if err != nil {
			problems = append(problems, err)
		}
		q.pointType = t
	}
	if f.Near != nil {
		if err := f.Near.Validate(); err != nil {
			problems = append(problems, err)
		}
		near := *f.Near
		q.near = &near
		if q.radiusKm == 0 {
			q.radiusKm = relaypoint.DefaultNearbyRadiusKm
		}
	}
	if q.radiusKm < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("radiusKm", q.radiusKm, 0, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return ListRelayPointsQuery{}, err
	}
	return q, nil
}

func (q ListRelayPointsQuery) Validate() error {
	return q.guard.Validate(ErrListRelayPointsQueryIsNotConstructed)
}

// ListRelayPointsQueryResponse is one relay point, with its distance from the
// requested position when one was given.
type ListRelayPointsQueryResponse struct {
	Point      relaypoint.RelayPoint
	DistanceKm *float64
}
