package queries

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
)

type (
	// Pricer quotes packages.
	Pricer interface {
		Quote(pkg parcel.PackageSpec, opts parcel.ServiceOptions, route *order.Route) (order.PriceBreakdown, error)
	}

	// RouteResolver validates relay point pairs.
	RouteResolver interface {
		SelectRoute(departureID, arrivalID string) (order.Route, error)
		SelectArrival(arrivalID string) (order.Route, error)
	}
)

// GetQuoteQueryResponse is a price with the optional route it was computed for.
type GetQuoteQueryResponse struct {
	Breakdown order.PriceBreakdown
	Route     *order.Route
}

type GetQuoteQueryHandler struct {
	pricer Pricer
	routes RouteResolver
}

func NewGetQuoteQueryHandler(pricer Pricer, routes RouteResolver) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{pricer: pricer, routes: routes}
}

// Handle is pure: the same query always yields the same breakdown.
func (h GetQuoteQueryHandler) Handle(_ context.Context, query GetQuoteQuery) (GetQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetQuoteQueryResponse{}, err
	}

	var route *order.Route
	if query.HasRoute() {
		var (
			r   order.Route
			err error
		)
		if query.DepartureID() == "" {
			r, err = h.routes.SelectArrival(query.ArrivalID())
		} else {
			r, err = h.routes.SelectRoute(query.DepartureID(), query.ArrivalID())
		}
		if err != nil {
			return GetQuoteQueryResponse{}, err
		}
		route = &r
	}

	breakdown, err := h.pricer.Quote(query.Package(), query.ServiceOptions(), route)
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}
	return GetQuoteQueryResponse{Breakdown: breakdown, Route: route}, nil
}
