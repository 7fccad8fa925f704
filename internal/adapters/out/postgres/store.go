package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pickdrop/internal/adapters/out/postgres/draftrepo"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
)

var (
	_ ports.DraftRepository   = &Store{}
	_ ports.UnitOfWorkFactory = &Store{}
)

// Migrate creates or updates the drafts and archived_drafts tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&draftrepo.DraftDTO{}, &draftrepo.ArchivedDraftDTO{}); err != nil {
		return fmt.Errorf("migrate drafts: %w", err)
	}
	return nil
}

// Store is the PostgreSQL draft repository.
type Store struct {
	*GormUnitOfWorkFactory
	repo *draftrepo.GormDraftRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		GormUnitOfWorkFactory: NewGormUnitOfWorkFactory(db),
		repo:                  draftrepo.NewGormDraftRepository(db, nil),
	}
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
