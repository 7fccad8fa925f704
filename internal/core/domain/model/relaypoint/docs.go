// Package relaypoint models the physical drop-off and pick-up locations of the network
// and the read-only Catalog the rest of the core consults by value.
//
// A RelayPoint is immutable once constructed. The Catalog is swapped as a whole on
// every Load, so concurrent readers always observe either the previous or the new set
// of points, never a partially built index.
package relaypoint
