// Package draftrepo maps drafts to the drafts and archived_drafts tables. The full
// snapshot lives in a jsonb column; status, tracking number and timestamps are
// duplicated into indexed columns for lookups and expiry scans.
package draftrepo

import (
	"time"

	"github.com/google/uuid"

	"pickdrop/internal/core/domain/model/order"
)

// DraftDTO is a live draft row.
type DraftDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status         int       `gorm:"not null;index"`
	TrackingNumber *string   `gorm:"type:varchar(13);uniqueIndex"`
	Snapshot       []byte    `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"not null;index;autoUpdateTime:false"`
}

func (DraftDTO) TableName() string {
	return "drafts"
}

// ArchivedDraftDTO is the final record of a received or cancelled draft.
type ArchivedDraftDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status         int       `gorm:"not null;index"`
	TrackingNumber *string   `gorm:"type:varchar(13);uniqueIndex"`
	CancelReason   string
	Snapshot       []byte    `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime:false"`
	ArchivedAt     time.Time `gorm:"not null"`
}

func (ArchivedDraftDTO) TableName() string {
	return "archived_drafts"
}

func fromDomain(d *order.Draft) (DraftDTO, error) {
	data, err := order.MarshalSnapshot(d)
	if err != nil {
		return DraftDTO{}, err
	}

	var tn *string
	if s := d.TrackingNumber().String(); s != "" {
		tn = &s
	}

	return DraftDTO{
		ID:             d.ID().Bytes(),
		Status:         int(d.Status()),
		TrackingNumber: tn,
		Snapshot:       data,
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}, nil
}

func archivedFromDomain(d *order.Draft, archivedAt time.Time) (ArchivedDraftDTO, error) {
	live, err := fromDomain(d)
	if err != nil {
		return ArchivedDraftDTO{}, err
	}

	return ArchivedDraftDTO{
		ID:             live.ID,
		Status:         live.Status,
		TrackingNumber: live.TrackingNumber,
		CancelReason:   d.CancelReason(),
		Snapshot:       live.Snapshot,
		CreatedAt:      live.CreatedAt,
		UpdatedAt:      live.UpdatedAt,
		ArchivedAt:     archivedAt.UTC(),
	}, nil
}

// toDomain restores from the snapshot; the indexed columns are derived data.
func toDomain(snapshot []byte) (*order.Draft, error) {
	return order.UnmarshalSnapshot(snapshot)
}
