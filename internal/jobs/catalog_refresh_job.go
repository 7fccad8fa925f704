package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/core/ports"
)

// DefaultCatalogRefreshSchedule reloads the relay points every fifteen minutes.
const DefaultCatalogRefreshSchedule = "0 */15 * * * *"

var ErrEmptyDirectory = errors.New("relay point directory returned no points")

// CatalogRefreshJob reloads the relay point catalog from its directory. A failed or
// empty fetch keeps the catalog that is already loaded.
type CatalogRefreshJob struct {
	directory ports.RelayPointDirectory
	catalog   *relaypoint.Catalog
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewCatalogRefreshJob(
	directory ports.RelayPointDirectory,
	catalog *relaypoint.Catalog,
	schedule string,
	logger *slog.Logger,
) *CatalogRefreshJob {
	if schedule == "" {
		schedule = DefaultCatalogRefreshSchedule
	}
	return &CatalogRefreshJob{
		directory: directory,
		catalog:   catalog,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "catalog_refresh_job"),
	}
}

func (j *CatalogRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Catalog refresh job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Catalog refresh job started", "schedule", j.schedule)
	return nil
}

// Run fetches the directory once and swaps the catalog.
func (j *CatalogRefreshJob) Run(ctx context.Context) error {
	points, err := j.directory.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch relay points: %w", err)
	}
	if len(points) == 0 {
		return ErrEmptyDirectory
	}
	if err = j.catalog.Load(points); err != nil {
		return fmt.Errorf("load relay points: %w", err)
	}

	j.logger.InfoContext(ctx, "relay point catalog refreshed", "points", len(points))
	return nil
}

func (j *CatalogRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Catalog refresh job stopped")
}
