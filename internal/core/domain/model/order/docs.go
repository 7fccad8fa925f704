// Package order provides the Draft aggregate: one shipment carried from package entry
// through payment and confirmation to collection at the arrival relay point.
//
// The package includes:
//   - Draft: the aggregate root owning every field collected during the workflow
//   - Status: the workflow states and the legal edges between them
//   - PriceBreakdown and Settlement: the quote frozen at payment resolution and who owes it
//   - Snapshot: the persisted layout used to resume a draft
//
// Key business rules:
//   - the status never skips a step nor goes backward along the hand-off chain
//   - the price is frozen exactly once, when payment resolves
//   - a draft can be cancelled until it is confirmed
package order
