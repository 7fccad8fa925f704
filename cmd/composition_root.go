package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpin "pickdrop/internal/adapters/in/http"
	"pickdrop/internal/adapters/out/directory"
	"pickdrop/internal/adapters/out/memstore"
	"pickdrop/internal/adapters/out/payment"
	"pickdrop/internal/adapters/out/postgres"
	"pickdrop/internal/adapters/out/redisstore"
	"pickdrop/internal/adapters/out/sqlitestore"
	"pickdrop/internal/core/application/orderflow"
	"pickdrop/internal/core/application/usecases/commands"
	"pickdrop/internal/core/application/usecases/queries"
	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/core/domain/services"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/jobs"
)

// draftBackend is what every draft store adapter provides.
type draftBackend interface {
	ports.DraftRepository
	ports.UnitOfWorkFactory
}

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	store  draftBackend
	gormDB *gorm.DB

	directory ports.RelayPointDirectory
	catalog   *relaypoint.Catalog
	pricing   services.PricingEngine
	routes    *services.RouteSelector
	engine    *orderflow.Engine

	closers []func() error
}

// NewCompositionRoot connects the configured backends, loads the relay point catalog
// and builds the ordering engine. Close releases whatever was opened, also on error.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		catalog: relaypoint.NewCatalog(),
		pricing: services.NewPricingEngine(services.DefaultTariff()),
	}

	if err := c.openDraftStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.openDirectory(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.catalogRefreshJob().Run(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("initial catalog load: %w", err), c.Close())
	}
	if err := c.buildEngine(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return c, nil
}

func (c *CompositionRoot) openDraftStore(ctx context.Context) error {
	switch c.cfg.DraftStore {
	case StorePostgres:
		db, err := gorm.Open(gormpg.Open(c.cfg.DSN()), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("postgres handle: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)
		if err = postgres.Migrate(db.WithContext(ctx)); err != nil {
			return err
		}
		c.gormDB = db
		c.store = postgres.NewStore(db)

	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.store = redisstore.NewStore(client, c.cfg.RedisKeyPrefix)

	case StoreSQLite:
		db, err := sqlitestore.Open(c.cfg.SQLitePath)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, db.Close)
		c.store = sqlitestore.NewStore(db)

	default:
		c.store = memstore.NewStore()
	}

	c.logger.InfoContext(ctx, "draft store ready", "backend", c.cfg.DraftStore)
	return nil
}

func (c *CompositionRoot) openDirectory(ctx context.Context) error {
	switch c.cfg.DirectorySource {
	case DirectoryFile:
		c.directory = directory.NewJSONFile(c.cfg.DirectoryFile)

	case DirectoryPostgres:
		pool, err := directory.OpenPool(ctx, c.cfg.DirectoryDatabaseURL)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, closePool(pool))

		dir := directory.NewPgxDirectory(pool)
		if err = dir.EnsureSchema(ctx); err != nil {
			return err
		}
		if c.cfg.DirectorySeedOnStart {
			records, err := directory.SeedFile().Records(ctx)
			if err != nil {
				return err
			}
			if err = dir.Upsert(ctx, records); err != nil {
				return err
			}
		}
		c.directory = dir

	default:
		c.directory = directory.SeedFile()
	}
	return nil
}

func (c *CompositionRoot) buildEngine() error {
	routes := services.NewRouteSelector(c.catalog)
	if c.cfg.FixedDepartureID != "" {
		if !c.catalog.Contains(c.cfg.FixedDepartureID) {
			return fmt.Errorf("fixed departure %q is not in the relay point catalog", c.cfg.FixedDepartureID)
		}
		fixed, err := services.NewFixedDepartureRouteSelector(c.catalog, c.cfg.FixedDepartureID)
		if err != nil {
			return err
		}
		routes = fixed
	}
	c.routes = routes

	tracking, err := services.NewTrackingNumberGenerator(c.cfg.TrackingPrefix)
	if err != nil {
		return fmt.Errorf("tracking numbers: %w", err)
	}

	engine, err := orderflow.NewEngine(orderflow.Dependencies{
		Store:    c.store,
		Archiver: c.store,
		Pricing:  c.pricing,
		Routes:   c.routes,
		Payments: payment.NewOfflineGateway(c.cfg.PaymentApprovalLimit, c.cfg.PaymentLatency, c.logger),
		Tracking: tracking,
	},
		orderflow.WithPaymentTimeout(c.cfg.PaymentTimeout),
		orderflow.WithLogger(c.logger),
	)
	if err != nil {
		return fmt.Errorf("order engine: %w", err)
	}
	c.engine = engine
	return nil
}

// Handlers wires every use case the HTTP server exposes. Listing drafts is only
// available on the postgres store.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	h := httpin.Handlers{
		StartDraft:     commands.NewStartDraftCommandHandler(c.engine),
		SubmitPackage:  commands.NewSubmitPackageCommandHandler(c.engine),
		SelectRoute:    commands.NewSelectRouteCommandHandler(c.engine),
		ChoosePayment:  commands.NewChoosePaymentCommandHandler(c.engine),
		ResolvePayment: commands.NewResolvePaymentCommandHandler(c.engine),
		ConfirmDraft:   commands.NewConfirmDraftCommandHandler(c.engine),
		AdvanceDraft:   commands.NewAdvanceDraftCommandHandler(c.engine),
		CancelDraft:    commands.NewCancelDraftCommandHandler(c.engine),
		RestartDraft:   commands.NewRestartDraftCommandHandler(c.engine),

		GetQuote:        queries.NewGetQuoteQueryHandler(c.pricing, c.routes),
		GetDraft:        queries.NewGetDraftQueryHandler(c.store, c.store),
		ListRelayPoints: queries.NewListRelayPointsQueryHandler(c.catalog),
	}
	if c.gormDB != nil {
		h.ListDrafts = queries.NewListDraftsQueryHandler(c.gormDB)
	}
	return h
}

func (c *CompositionRoot) CreateExpireStaleDraftsCommandHandler() commands.ExpireStaleDraftsCommandHandler {
	return commands.NewExpireStaleDraftsCommandHandler(c.store, c.store, nil)
}

// Jobs returns the scheduled draft expiry and catalog refresh.
func (c *CompositionRoot) Jobs() *jobs.JobManager {
	expiry := jobs.NewDraftExpiryJob(c.CreateExpireStaleDraftsCommandHandler(), jobs.DraftExpiryConfig{
		Schedule: c.cfg.DraftExpirySchedule,
		MaxAge:   c.cfg.DraftExpiryAge,
		Batch:    c.cfg.DraftExpiryBatch,
	}, c.logger)
	return jobs.NewJobManager(expiry, c.catalogRefreshJob())
}

func (c *CompositionRoot) catalogRefreshJob() *jobs.CatalogRefreshJob {
	return jobs.NewCatalogRefreshJob(c.directory, c.catalog, c.cfg.CatalogRefreshSchedule, c.logger)
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var problems []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && !errors.Is(err, sql.ErrConnDone) {
			problems = append(problems, err)
		}
	}
	c.closers = nil
	return errors.Join(problems...)
}

func closePool(pool *pgxpool.Pool) func() error {
	return func() error {
		pool.Close()
		return nil
	}
}
