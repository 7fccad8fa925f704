// Package kernel provides the shared domain primitives of the parcel ordering core.
//
// The package includes:
//   - UUID: identifier value object for drafts, wrapping github.com/google/uuid
//   - Coordinates: a validated latitude/longitude pair with haversine distance
//
// Both are immutable value objects whose zero value fails validation.
package kernel
