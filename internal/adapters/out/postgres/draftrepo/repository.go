package draftrepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

const uniqueViolation = "23505"

var (
	_ ports.DraftStore    = &GormDraftRepository{}
	_ ports.ArchiveWriter = &GormDraftRepository{}
)

// aggregateTracker records drafts written through a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDraftRepository reads and writes both tables through one *gorm.DB, which is a
// transaction when the repository comes from a unit of work.
type GormDraftRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

func NewGormDraftRepository(db *gorm.DB, tracker aggregateTracker) *GormDraftRepository {
	return &GormDraftRepository{db: db, tracker: tracker, now: time.Now}
}

// Save upserts the live row. A tracking number already held by another live or
// archived draft yields ports.ErrTrackingNumberTaken.
func (r *GormDraftRepository) Save(ctx context.Context, draft *order.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(draft)
	if err != nil {
		return err
	}

	if dto.TrackingNumber != nil {
		if err = r.checkArchivedTracking(ctx, dto.ID, *dto.TrackingNumber); err != nil {
			return err
		}
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "tracking_number", "snapshot", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return translate(err)
	}

	r.track(draft)
	return nil
}

func (r *GormDraftRepository) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DraftDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draftID", id)
		}
		return nil, err
	}
	return toDomain(dto.Snapshot)
}

func (r *GormDraftRepository) Clear(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&DraftDTO{}, "id = ?", id.Bytes()).Error
}

// Append inserts the archive row, replacing an earlier record of the same draft.
func (r *GormDraftRepository) Append(ctx context.Context, draft *order.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	dto, err := archivedFromDomain(draft, r.now())
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto).Error
	if err != nil {
		return translate(err)
	}

	r.track(draft)
	return nil
}

func (r *GormDraftRepository) LoadArchived(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ArchivedDraftDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draftID", id)
		}
		return nil, err
	}
	return toDomain(dto.Snapshot)
}

// ListStale returns cancellable drafts last updated before the cut-off, oldest first.
func (r *GormDraftRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]*order.Draft, error) {
	query := r.db.WithContext(ctx).
		Where("status < ? AND updated_at < ?", int(order.Confirmed), before.UTC()).
		Order("updated_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []DraftDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	drafts := make([]*order.Draft, 0, len(dtos))
	for _, dto := range dtos {
		d, restoreErr := toDomain(dto.Snapshot)
		if restoreErr != nil {
			slog.Default().Warn("skip undecodable draft", "component", "draftrepo", "draftID", dto.ID, "error", restoreErr)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (r *GormDraftRepository) checkArchivedTracking(ctx context.Context, id uuid.UUID, tn string) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&ArchivedDraftDTO{}).
		Where("tracking_number = ? AND id <> ?", tn, id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ports.ErrTrackingNumberTaken
	}
	return nil
}

func (r *GormDraftRepository) track(draft *order.Draft) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(draft.ID(), draft)
	}
}

// translate maps unique violations on the tracking number index.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(ports.ErrTrackingNumberTaken, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ports.ErrTrackingNumberTaken, err)
	}
	return err
}
