// Package queries contains read operations. Queries never change draft state.
package queries

import (
	"errors"
	"strings"

	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/pkg/guard"
)

var ErrGetQuoteQueryIsNotConstructed = errors.New(
	"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
)

// GetQuoteQuery prices a package without creating a draft. When both relay point ids
// are given the route is validated and its distance returned with the price.
//
// Example:
//
//	query := NewGetQuoteQuery(parcel.PackageSpec{WeightKg: 2.5, Fragile: true}, parcel.ServiceOptions{}, "", "")
//	res, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Breakdown.Total) // 2588
type GetQuoteQuery struct {
	pkg         parcel.PackageSpec
	opts        parcel.ServiceOptions
	departureID string
	arrivalID   string

	guard guard.ConstructorGuard
}

func NewGetQuoteQuery(pkg parcel.PackageSpec, opts parcel.ServiceOptions, departureID, arrivalID string) GetQuoteQuery {
	return GetQuoteQuery{
		pkg:         pkg,
		opts:        opts,
		departureID: strings.TrimSpace(departureID),
		arrivalID:   strings.TrimSpace(arrivalID),
		guard:       guard.NewConstructorGuard(),
	}
}

func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

func (q GetQuoteQuery) Package() parcel.PackageSpec           { return q.pkg }
func (q GetQuoteQuery) ServiceOptions() parcel.ServiceOptions { return q.opts }
func (q GetQuoteQuery) DepartureID() string                   { return q.departureID }
func (q GetQuoteQuery) ArrivalID() string                     { return q.arrivalID }

// HasRoute reports whether a route was requested.
func (q GetQuoteQuery) HasRoute() bool {
	return q.arrivalID != ""
}
