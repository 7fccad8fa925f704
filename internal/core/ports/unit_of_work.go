package ports

import (
	"context"

	"pickdrop/internal/core/domain/model/order"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary spanning the live snapshot and the archive.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// DraftStore returns a store bound to the current transaction.
	DraftStore() DraftStore

	// ArchiveWriter returns the archive bound to the current transaction.
	ArchiveWriter() ArchiveWriter
}

// ArchiveWriter appends final records of terminal drafts.
type ArchiveWriter interface {
	Append(ctx context.Context, draft *order.Draft) error
}
