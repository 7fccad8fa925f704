// Package ports defines the contracts between the ordering core and its infrastructure:
// draft persistence, the payment collaborator and the relay point directory.
package ports

import (
	"context"
	"errors"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
)

// ErrTrackingNumberTaken is returned by Save when another draft already holds the
// tracking number being stored.
var ErrTrackingNumberTaken = errors.New("tracking number already taken")

// DraftStore keeps one snapshot per draft so an interrupted workflow can resume.
type DraftStore interface {
	// Save overwrites any prior snapshot for the draft (last write wins).
	Save(ctx context.Context, draft *order.Draft) error

	// Load returns the latest snapshot or an *errs.ObjectNotFoundError.
	Load(ctx context.Context, id kernel.UUID) (*order.Draft, error)

	// Clear removes the snapshot. Clearing a missing draft is not an error.
	Clear(ctx context.Context, id kernel.UUID) error
}

// DraftArchiver retires drafts that reached a terminal status.
type DraftArchiver interface {
	// Archive stores the final record and clears the live snapshot as one unit.
	Archive(ctx context.Context, draft *order.Draft) error

	// LoadArchived returns an archived draft or an *errs.ObjectNotFoundError.
	LoadArchived(ctx context.Context, id kernel.UUID) (*order.Draft, error)
}

// StaleDraftFinder finds abandoned drafts: live drafts that are still cancellable
// and were last updated before the given instant, oldest first. Snapshots that no
// longer decode are skipped.
type StaleDraftFinder interface {
	ListStale(ctx context.Context, before time.Time, limit int) ([]*order.Draft, error)
}

// DraftRepository is what every persistence backend provides.
type DraftRepository interface {
	DraftStore
	DraftArchiver
	StaleDraftFinder
}
