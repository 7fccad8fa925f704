package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
)

// ListDraftsQueryHandler reads summaries straight from the drafts table.
type ListDraftsQueryHandler struct {
	db *gorm.DB
}

func NewListDraftsQueryHandler(db *gorm.DB) ListDraftsQueryHandler {
	return ListDraftsQueryHandler{db: db}
}

func (h ListDraftsQueryHandler) Handle(
	ctx context.Context,
	query ListDraftsQuery,
) ([]ListDraftsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int, 0, len(query.statuses))
	for _, s := range query.statuses {
		statuses = append(statuses, int(s))
	}

	db := h.db.WithContext(ctx)
	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = db.Raw(`
			SELECT
				id,
				status,
				tracking_number,
				(snapshot->'priceBreakdown'->>'total')::bigint,
				updated_at
			FROM drafts
			ORDER BY updated_at DESC, id
			LIMIT ?
		`, query.limit).Rows()
	} else {
		rows, err = db.Raw(`
			SELECT
				id,
				status,
				tracking_number,
				(snapshot->'priceBreakdown'->>'total')::bigint,
				updated_at
			FROM drafts
			WHERE status IN ?
			ORDER BY updated_at DESC, id
			LIMIT ?
		`, statuses, query.limit).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := make([]ListDraftsQueryResponse, 0)
	for rows.Next() {
		var (
			resp     ListDraftsQueryResponse
			id       uuid.UUID
			status   int
			tracking sql.NullString
			total    sql.NullInt64
		)

		if err = rows.Scan(&id, &status, &tracking, &total, &resp.UpdatedAt); err != nil {
			return nil, err
		}

		draftID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = draftID
		resp.Status = order.Status(status)
		resp.TrackingNumber = tracking.String
		if total.Valid {
			v := total.Int64
			resp.Total = &v
		}
		drafts = append(drafts, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drafts, nil
}
