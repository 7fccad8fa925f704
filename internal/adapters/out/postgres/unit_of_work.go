// Package postgres stores drafts in PostgreSQL through GORM.
//
// A Store serves the workflow directly (Save, Load, Clear) and hands out units of
// work that span the live drafts table and the archive:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ArchiveWriter().Append(ctx, draft); err != nil {
//	    return err
//	}
//	if err := uow.DraftStore().Clear(ctx, draft.ID()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction; goroutines must not share
// one.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"pickdrop/internal/adapters/out/postgres/draftrepo"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/ports"
)

// trackedAggregate is a draft written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork wraps a GORM transaction and records every draft written through
// its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is active, which
// includes the deferred call after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// DraftStore is bound to the active transaction, or to the pool outside one.
func (uow *GormUnitOfWork) DraftStore() ports.DraftStore {
	return uow.repository()
}

// ArchiveWriter is bound to the active transaction, or to the pool outside one.
func (uow *GormUnitOfWork) ArchiveWriter() ports.ArchiveWriter {
	return uow.repository()
}

// TrackAggregate is called by repositories for every written draft.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the drafts written since the unit of work was created.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) repository() *draftrepo.GormDraftRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return draftrepo.NewGormDraftRepository(db, uow)
}
