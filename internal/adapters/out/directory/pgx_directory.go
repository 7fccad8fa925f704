package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/core/ports"
)

var _ ports.RelayPointDirectory = &PgxDirectory{}

// pool is the part of *pgxpool.Pool the directory uses.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PgxDirectory reads the relay_points table.
type PgxDirectory struct {
	pool pool
}

func NewPgxDirectory(p pool) *PgxDirectory {
	return &PgxDirectory{pool: p}
}

// OpenPool connects and verifies the connection.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open directory pool: parse config: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open directory pool: connect: %w", err)
	}
	if err = p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("open directory pool: verify connection: %w", err)
	}
	return p, nil
}

// EnsureSchema creates the relay_points table when missing.
func (d *PgxDirectory) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS relay_points (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		operating_hours TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`
	if _, err := d.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure relay_points schema: %w", err)
	}
	return nil
}

// Upsert writes records in one batch, replacing rows with the same id.
func (d *PgxDirectory) Upsert(ctx context.Context, records []relaypoint.Record) error {
	query := `
	INSERT INTO relay_points (id, name, address, district, lat, lng, type, operating_hours, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		address = EXCLUDED.address,
		district = EXCLUDED.district,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		type = EXCLUDED.type,
		operating_hours = EXCLUDED.operating_hours,
		active = TRUE;
	`

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(query, r.ID, r.Name, r.Address, r.District, r.Lat, r.Lng, r.Type, r.OperatingHours)
	}

	if err := d.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert relay points: %w", err)
	}
	return nil
}

// Fetch returns the active relay points ordered by id.
func (d *PgxDirectory) Fetch(ctx context.Context) ([]relaypoint.RelayPoint, error) {
	query := `
	SELECT id, name, address, district, lat, lng, type, operating_hours
	FROM relay_points
	WHERE active
	ORDER BY id;
	`

	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch relay points: query relay_points: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (relaypoint.Record, error) {
		var r relaypoint.Record
		err := row.Scan(&r.ID, &r.Name, &r.Address, &r.District, &r.Lat, &r.Lng, &r.Type, &r.OperatingHours)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch relay points: scan rows: %w", err)
	}

	return relaypoint.FromRecords(records)
}
