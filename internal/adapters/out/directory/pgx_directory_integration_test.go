package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"pickdrop/internal/adapters/out/directory"
	"pickdrop/internal/core/domain/model/relaypoint"
)

type PgxDirectoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	dir       *directory.PgxDirectory
}

func (suite *PgxDirectoryTestSuite) SetupSuite() {
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

	suite.pool, err = directory.OpenPool(ctx, dsn)
	suite.Require().NoError(err)

	suite.dir = directory.NewPgxDirectory(suite.pool)
	suite.Require().NoError(suite.dir.EnsureSchema(ctx))
}

func (suite *PgxDirectoryTestSuite) SetupTest() {
	_, err := suite.pool.Exec(context.Background(), "TRUNCATE TABLE relay_points")
	suite.Require().NoError(err)
}

func (suite *PgxDirectoryTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PgxDirectoryTestSuite) Test_SeedThenFetch() {
	ctx := context.Background()
	records, err := directory.SeedFile().Records(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.dir.Upsert(ctx, records))
	suite.Require().NoError(suite.dir.Upsert(ctx, records))

	points, err := suite.dir.Fetch(ctx)
	suite.Require().NoError(err)
	suite.Len(points, len(records))
	suite.Equal("1", points[0].ID())
	suite.Equal(relaypoint.ToRecord(points[0]), records[0])
}

func (suite *PgxDirectoryTestSuite) Test_InactivePointsAreHidden() {
	ctx := context.Background()
	suite.Require().NoError(suite.dir.Upsert(ctx, []relaypoint.Record{
		{ID: "10", Name: "Relais Nlongkak", Address: "Lac", Lat: 3.88, Lng: 11.51, Type: "shop"},
		{ID: "11", Name: "Relais Ngoa", Address: "Université", Lat: 3.86, Lng: 11.50, Type: "office"},
	}))
	_, err := suite.pool.Exec(ctx, "UPDATE relay_points SET active = FALSE WHERE id = '11'")
	suite.Require().NoError(err)

	points, err := suite.dir.Fetch(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(points, 1)
	suite.Equal("10", points[0].ID())
}

func (suite *PgxDirectoryTestSuite) Test_InvalidRowFailsTheBatch() {
	ctx := context.Background()
	suite.Require().NoError(suite.dir.Upsert(ctx, []relaypoint.Record{
		{ID: "12", Name: "Relais", Lat: 3.88, Lng: 11.51, Type: "kiosk"},
	}))

	_, err := suite.dir.Fetch(ctx)

	suite.ErrorIs(err, relaypoint.ErrInvalidCatalog)
}

func TestPgxDirectoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PgxDirectoryTestSuite))
}
