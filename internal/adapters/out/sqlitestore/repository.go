package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

var (
	_ ports.DraftStore    = &draftRepository{}
	_ ports.ArchiveWriter = &draftRepository{}
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type draftRepository struct {
	q   querier
	now func() time.Time
}

func newDraftRepository(q querier, now func() time.Time) *draftRepository {
	return &draftRepository{q: q, now: now}
}

func (r *draftRepository) Save(ctx context.Context, draft *order.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	data, err := order.MarshalSnapshot(draft)
	if err != nil {
		return fmt.Errorf("save draft: encode snapshot: %w", err)
	}

	tn := trackingColumn(draft)
	if tn.Valid {
		if err = r.checkTracking(ctx, "archived_drafts", draft.ID(), tn.String); err != nil {
			return err
		}
	}

	query := `
	INSERT INTO drafts (id, status, tracking_number, snapshot, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		tracking_number = excluded.tracking_number,
		snapshot = excluded.snapshot,
		updated_at = excluded.updated_at;
	`
	_, err = r.q.ExecContext(ctx, query,
		draft.ID().String(),
		int(draft.Status()),
		tn,
		string(data),
		draft.CreatedAt().UnixNano(),
		draft.UpdatedAt().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save draft: upsert row: %w", translate(err))
	}
	return nil
}

func (r *draftRepository) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	return r.loadFrom(ctx, "drafts", id)
}

func (r *draftRepository) Clear(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?;`, id.String()); err != nil {
		return fmt.Errorf("clear draft: delete row: %w", err)
	}
	return nil
}

// Append writes the archive row, replacing an earlier record of the same draft.
func (r *draftRepository) Append(ctx context.Context, draft *order.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	data, err := order.MarshalSnapshot(draft)
	if err != nil {
		return fmt.Errorf("archive draft: encode snapshot: %w", err)
	}

	tn := trackingColumn(draft)
	if tn.Valid {
		if err = r.checkTracking(ctx, "drafts", draft.ID(), tn.String); err != nil {
			return err
		}
	}

	query := `
	INSERT INTO archived_drafts
		(id, status, tracking_number, cancel_reason, snapshot, created_at, updated_at, archived_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		tracking_number = excluded.tracking_number,
		cancel_reason = excluded.cancel_reason,
		snapshot = excluded.snapshot,
		updated_at = excluded.updated_at,
		archived_at = excluded.archived_at;
	`
	_, err = r.q.ExecContext(ctx, query,
		draft.ID().String(),
		int(draft.Status()),
		tn,
		draft.CancelReason(),
		string(data),
		draft.CreatedAt().UnixNano(),
		draft.UpdatedAt().UnixNano(),
		r.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("archive draft: insert row: %w", translate(err))
	}
	return nil
}

func (r *draftRepository) LoadArchived(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	return r.loadFrom(ctx, "archived_drafts", id)
}

func (r *draftRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]*order.Draft, error) {
	query := `
	SELECT id, snapshot
	FROM drafts
	WHERE status < ? AND updated_at < ?
	ORDER BY updated_at, id
	LIMIT ?;
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.q.QueryContext(ctx, query, int(order.Confirmed), before.UnixNano(), limit)
	if err != nil {
		return nil, fmt.Errorf("list stale drafts: query drafts table: %w", err)
	}
	defer rows.Close()

	drafts := make([]*order.Draft, 0, 16)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("list stale drafts: scan row: %w", err)
		}
		d, err := order.UnmarshalSnapshot([]byte(data))
		if err != nil {
			slog.Default().Warn("skip undecodable draft", "component", "sqlitestore", "draftID", id, "error", err)
			continue
		}
		drafts = append(drafts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stale drafts: row iteration: %w", err)
	}

	return drafts, nil
}

func (r *draftRepository) loadFrom(ctx context.Context, table string, id kernel.UUID) (*order.Draft, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var data string
	err := r.q.QueryRowContext(ctx, `SELECT snapshot FROM `+table+` WHERE id = ?;`, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("draftID", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: query %s: %w", table, err)
	}
	return order.UnmarshalSnapshot([]byte(data))
}

// checkTracking fails when another draft in table already holds tn.
func (r *draftRepository) checkTracking(ctx context.Context, table string, id kernel.UUID, tn string) error {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE tracking_number = ? AND id <> ?;`,
		tn, id.String(),
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check tracking number: query %s: %w", table, err)
	}
	if count > 0 {
		return ports.ErrTrackingNumberTaken
	}
	return nil
}

func trackingColumn(draft *order.Draft) sql.NullString {
	tn := draft.TrackingNumber().String()
	return sql.NullString{String: tn, Valid: tn != ""}
}

// translate maps constraint violations, which can only come from the unique
// tracking_number columns once the id conflict is handled by the upsert.
func translate(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return errors.Join(ports.ErrTrackingNumberTaken, err)
	}
	return err
}
