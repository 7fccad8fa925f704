package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "pickdrop/internal/adapters/out/postgres"
	"pickdrop/internal/core/application/usecases/queries"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
)

type ListDraftsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *postgres_adapter.Store
	handler   queries.ListDraftsQueryHandler
}

func (suite *ListDraftsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
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
	suite.handler = queries.NewListDraftsQueryHandler(db)
}

func (suite *ListDraftsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListDraftsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drafts, archived_drafts").Error)
}

func (suite *ListDraftsQueryHandlerTestSuite) save(d *order.Draft) {
	suite.Require().NoError(suite.store.Save(context.Background(), d))
}

func (suite *ListDraftsQueryHandlerTestSuite) draft(at time.Time) *order.Draft {
	d, err := order.NewDraft(kernel.NewUUID(), at)
	suite.Require().NoError(err)
	return d
}

func (suite *ListDraftsQueryHandlerTestSuite) cashDraft(at time.Time) *order.Draft {
	d := suite.draft(at)
	suite.Require().NoError(d.SubmitPackageDetails(parcel.PackageSpec{WeightKg: 2.5}, parcel.ServiceOptions{}, at))
	suite.Require().NoError(d.SelectRoute(order.Route{DeparturePointID: "1", ArrivalPointID: "4"}, at))
	suite.Require().NoError(d.ChoosePayment(order.RecipientInfo{Name: "Awa Mbarga", Phone: "699112233"}, order.CashAtDeposit, at))
	price := order.PriceBreakdown{BaseFee: 2250, Total: 2250}
	settlement, err := order.NewSettlement(price.Total, order.CashAtDeposit, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(d.ResolvePayment(price, settlement, at))
	return d
}

func (suite *ListDraftsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewListDraftsQuery(nil, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListDraftsQueryHandlerTestSuite) TestHandle_FiltersByStatus() {
	suite.save(suite.draft(t0))
	pending := suite.cashDraft(t0.Add(time.Minute))
	suite.save(pending)

	query, err := queries.NewListDraftsQuery([]order.Status{order.PendingCashAtDeposit}, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(pending.ID().IsEqual(result[0].ID))
	suite.Equal(order.PendingCashAtDeposit, result[0].Status)
	suite.Require().NotNil(result[0].Total)
	suite.Equal(int64(2250), *result[0].Total)
	suite.Empty(result[0].TrackingNumber)
}

func (suite *ListDraftsQueryHandlerTestSuite) TestHandle_NewestFirstWithLimit() {
	older := suite.draft(t0)
	newer := suite.draft(t0.Add(time.Hour))
	suite.save(older)
	suite.save(newer)

	query, err := queries.NewListDraftsQuery(nil, 1)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(newer.ID().IsEqual(result[0].ID))
	suite.Nil(result[0].Total)
}

func TestListDraftsQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ListDraftsQueryHandlerTestSuite))
}
