package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
)

var (
	_ ports.DraftRepository   = &Store{}
	_ ports.UnitOfWorkFactory = &Store{}
	_ ports.UnitOfWork        = &UnitOfWork{}
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside a transaction.
var ErrNoActiveTransaction = errors.New("sqlitestore: no active transaction")

// Store is the SQLite draft repository.
type Store struct {
	db   *sql.DB
	repo *draftRepository
	now  func() time.Time
}

// NewStore expects a database prepared by Open or InitSchema.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repo: newDraftRepository(db, time.Now), now: time.Now}
}

func (s *Store) Save(ctx context.Context, draft *order.Draft) error {
	return s.repo.Save(ctx, draft)
}

func (s *Store) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	return s.repo.Load(ctx, id)
}

func (s *Store) Clear(ctx context.Context, id kernel.UUID) error {
	return s.repo.Clear(ctx, id)
}

// Archive writes the archive row and deletes the live row in one transaction.
func (s *Store) Archive(ctx context.Context, draft *order.Draft) error {
	uow := s.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ArchiveWriter().Append(ctx, draft); err != nil {
		return err
	}
	if err := uow.DraftStore().Clear(ctx, draft.ID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (s *Store) LoadArchived(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	return s.repo.LoadArchived(ctx, id)
}

func (s *Store) ListStale(ctx context.Context, before time.Time, limit int) ([]*order.Draft, error) {
	return s.repo.ListStale(ctx, before, limit)
}

func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{db: s.db, now: s.now}
}

// UnitOfWork wraps one *sql.Tx. It must not be shared between goroutines.
type UnitOfWork struct {
	db  *sql.DB
	tx  *sql.Tx
	now func() time.Time
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}
	err := u.tx.Commit()
	u.tx = nil
	return err
}

// Rollback after a successful Commit returns ErrNoActiveTransaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}
	err := u.tx.Rollback()
	u.tx = nil
	return err
}

func (u *UnitOfWork) DraftStore() ports.DraftStore {
	return u.repository()
}

func (u *UnitOfWork) ArchiveWriter() ports.ArchiveWriter {
	return u.repository()
}

func (u *UnitOfWork) repository() *draftRepository {
	if u.tx != nil {
		return newDraftRepository(u.tx, u.now)
	}
	return newDraftRepository(u.db, u.now)
}
