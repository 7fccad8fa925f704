// Package services provides the stateless domain services of the parcel ordering core.
//
// The package includes:
//   - PricingEngine: a pure function from package, options and route to a PriceBreakdown
//   - RouteSelector: validates a departure/arrival pair against the relay point catalog
//   - TrackingNumberGenerator: builds the public reference assigned at confirmation
//
// None of these services hold a reference to a Draft; the order workflow consults
// them by value.
package services
