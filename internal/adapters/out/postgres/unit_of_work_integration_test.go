package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "pickdrop/internal/adapters/out/postgres"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// StoreIntegrationTestSuite runs the draft store against a real PostgreSQL.
type StoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *postgres_adapter.Store
}

func (suite *StoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.store = postgres_adapter.NewStore(db)
}

func (suite *StoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drafts, archived_drafts").Error)
}

func (suite *StoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StoreIntegrationTestSuite) newDraft(at time.Time) *order.Draft {
	d, err := order.NewDraft(kernel.NewUUID(), at)
	suite.Require().NoError(err)
	return d
}

func (suite *StoreIntegrationTestSuite) confirmedDraft(tn order.TrackingNumber) *order.Draft {
	d := suite.newDraft(t0)
	suite.Require().NoError(d.SubmitPackageDetails(parcel.PackageSpec{WeightKg: 2.5, Fragile: true}, parcel.ServiceOptions{}, t0))
	suite.Require().NoError(d.SelectRoute(order.Route{DeparturePointID: "1", ArrivalPointID: "4"}, t0))
	suite.Require().NoError(d.ChoosePayment(order.RecipientInfo{Name: "Awa Mbarga", Phone: "699112233"}, order.PayByRecipient, t0))
	price := order.PriceBreakdown{BaseFee: 2250, FragileFee: 338, Total: 2588}
	settlement, err := order.NewSettlement(price.Total, order.PayByRecipient, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(d.ResolvePayment(price, settlement, t0))
	suite.Require().NoError(d.Confirm(tn, t0))
	return d
}

func (suite *StoreIntegrationTestSuite) TestSaveLoad_RoundTrip() {
	ctx := context.Background()
	d := suite.confirmedDraft("PDL1234567AB1")

	suite.Require().NoError(suite.store.Save(ctx, d))

	got, err := suite.store.Load(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.Snapshot(), got.Snapshot())
}

func (suite *StoreIntegrationTestSuite) TestSave_Overwrites() {
	ctx := context.Background()
	d := suite.newDraft(t0)
	suite.Require().NoError(suite.store.Save(ctx, d))

	suite.Require().NoError(d.SubmitPackageDetails(parcel.PackageSpec{WeightKg: 1}, parcel.ServiceOptions{}, t0.Add(time.Minute)))
	suite.Require().NoError(suite.store.Save(ctx, d))

	got, err := suite.store.Load(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PackageDetailsComplete, got.Status())

	var count int64
	suite.Require().NoError(suite.db.Table("drafts").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *StoreIntegrationTestSuite) TestLoad_Missing() {
	_, err := suite.store.Load(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StoreIntegrationTestSuite) TestSave_DuplicateTrackingNumber() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Save(ctx, suite.confirmedDraft("PDL1234567AB1")))

	err := suite.store.Save(ctx, suite.confirmedDraft("PDL1234567AB1"))

	suite.Require().True(errors.Is(err, ports.ErrTrackingNumberTaken), "got %v", err)
}

func (suite *StoreIntegrationTestSuite) TestArchive_MovesRowAndReservesTrackingNumber() {
	ctx := context.Background()
	d := suite.confirmedDraft("PDL7654321XYZ")
	suite.Require().NoError(suite.store.Save(ctx, d))
	for _, to := range []order.Status{order.Deposited, order.InTransit, order.ArrivedAtRelay, order.Received} {
		suite.Require().NoError(d.AdvanceTo(to, t0.Add(time.Hour)))
	}

	suite.Require().NoError(suite.store.Archive(ctx, d))

	_, err := suite.store.Load(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	archived, err := suite.store.LoadArchived(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Received, archived.Status())

	err = suite.store.Save(ctx, suite.confirmedDraft("PDL7654321XYZ"))
	suite.Require().ErrorIs(err, ports.ErrTrackingNumberTaken)
}

func (suite *StoreIntegrationTestSuite) TestListStale_OnlyCancellableOldestFirst() {
	ctx := context.Background()
	older := suite.newDraft(t0.Add(-2 * time.Hour))
	old := suite.newDraft(t0.Add(-time.Hour))
	fresh := suite.newDraft(t0.Add(time.Hour))
	confirmed := suite.confirmedDraft("PDL1111111AAA")
	for _, d := range []*order.Draft{old, older, fresh, confirmed} {
		suite.Require().NoError(suite.store.Save(ctx, d))
	}

	stale, err := suite.store.ListStale(ctx, t0.Add(time.Minute), 10)

	suite.Require().NoError(err)
	suite.Require().Len(stale, 2)
	suite.True(older.ID().IsEqual(stale[0].ID()))
	suite.True(old.ID().IsEqual(stale[1].ID()))
}

func (suite *StoreIntegrationTestSuite) TestListStale_SkipsUndecodableSnapshot() {
	ctx := context.Background()
	good := suite.newDraft(t0.Add(-time.Hour))
	suite.Require().NoError(good.EditPackage(parcel.PackageSpec{WeightKg: 1}, parcel.ServiceOptions{ExpressTier: parcel.Express24}, t0.Add(-time.Hour)))
	suite.Require().NoError(suite.store.Save(ctx, good))
	suite.Require().NoError(suite.db.Exec(
		"INSERT INTO drafts (id, status, snapshot, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		kernel.NewUUID().String(), int(order.Drafting), `{"status":"Drafting"}`,
		t0.Add(-2*time.Hour), t0.Add(-2*time.Hour),
	).Error)

	stale, err := suite.store.ListStale(ctx, t0, 10)

	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.True(good.ID().IsEqual(stale[0].ID()))
}

func (suite *StoreIntegrationTestSuite) TestUnitOfWork_Lifecycle() {
	ctx := context.Background()
	uow := suite.store.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *StoreIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := context.Background()
	d := suite.newDraft(t0)
	uow := suite.store.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DraftStore().Save(ctx, d))
	inTx, err := uow.DraftStore().Load(ctx, d.ID())
	suite.Require().NoError(err)
	suite.True(d.ID().IsEqual(inTx.ID()))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.store.Load(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StoreIntegrationTestSuite) TestUnitOfWork_TracksWrittenDrafts() {
	ctx := context.Background()
	d := suite.newDraft(t0)
	uow := suite.store.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DraftStore().Save(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))

	tracked := uow.(*postgres_adapter.GormUnitOfWork).TrackedIDs()
	suite.Require().Len(tracked, 1)
	suite.True(d.ID().IsEqual(tracked[0]))
}

func TestStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StoreIntegrationTestSuite))
}
