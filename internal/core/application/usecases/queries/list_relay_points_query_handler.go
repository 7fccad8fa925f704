package queries

import (
	"context"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/relaypoint"
)

type ListRelayPointsQueryHandler struct {
	catalog *relaypoint.Catalog
}

func NewListRelayPointsQueryHandler(catalog *relaypoint.Catalog) ListRelayPointsQueryHandler {
	return ListRelayPointsQueryHandler{catalog: catalog}
}

// Handle returns points ordered by id, or by distance when a position was given.
func (h ListRelayPointsQueryHandler) Handle(
	_ context.Context,
	query ListRelayPointsQuery,
) ([]ListRelayPointsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		points []relaypoint.RelayPoint
		err    error
	)
	if query.near != nil {
		points, err = h.catalog.FindNear(*query.near, query.radiusKm, query.excludeIDs)
		if err != nil {
			return nil, err
		}
	} else {
		points = h.catalog.All()
	}

	if query.pointType != "" {
		filtered := points[:0:0]
		for _, p := range points {
			if p.Type() == query.pointType {
				filtered = append(filtered, p)
			}
		}
		points = filtered
	}

	points = h.catalog.Search(query.search, points)

	out := make([]ListRelayPointsQueryResponse, 0, len(points))
	for _, p := range points {
		item := ListRelayPointsQueryResponse{Point: p}
		if query.near != nil {
			c := p.Coordinates()
			d := kernel.Haversine(query.near.Lat(), query.near.Lng(), c.Lat(), c.Lng())
			item.DistanceKm = &d
		}
		out = append(out, item)
	}
	return out, nil
}
