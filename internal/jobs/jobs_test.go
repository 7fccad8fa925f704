package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pickdrop/internal/adapters/out/directory"
	"pickdrop/internal/adapters/out/memstore"
	"pickdrop/internal/core/application/usecases/commands"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/relaypoint"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type MockDraftExpirer struct{ mock.Mock }

func (m *MockDraftExpirer) Handle(ctx context.Context, cmd commands.ExpireStaleDraftsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) Fetch(ctx context.Context) ([]relaypoint.RelayPoint, error) {
	args := m.Called(ctx)
	points, _ := args.Get(0).([]relaypoint.RelayPoint)
	return points, args.Error(1)
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (f *fakeJob) Start() error {
	*f.log = append(*f.log, "start "+f.name)
	return f.startErr
}

func (f *fakeJob) Stop() { *f.log = append(*f.log, "stop "+f.name) }

func TestDraftExpiryJob_Run_UsesCutoffAndBatch(t *testing.T) {
	ctx := t.Context()
	expirer := new(MockDraftExpirer)
	expirer.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ExpireStaleDraftsCommand) bool {
		return cmd.Before().Equal(t0.Add(-72*time.Hour)) && cmd.Limit() == 25
	})).Return(3, nil).Once()

	job := NewDraftExpiryJob(expirer, DraftExpiryConfig{MaxAge: 72 * time.Hour, Batch: 25}, slog.Default())
	job.now = func() time.Time { return t0 }

	expired, err := job.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, expired)
	expirer.AssertExpectations(t)
}

func TestDraftExpiryJob_Run_RejectsZeroBatch(t *testing.T) {
	expirer := new(MockDraftExpirer)
	job := NewDraftExpiryJob(expirer, DraftExpiryConfig{MaxAge: time.Hour}, slog.Default())

	_, err := job.Run(t.Context())

	require.Error(t, err)
	expirer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDraftExpiryJob_Run_WithMemstore(t *testing.T) {
	ctx := t.Context()
	store := memstore.NewStore()
	old, err := order.NewDraft(kernel.NewUUID(), t0.Add(-80*time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, old))

	handler := commands.NewExpireStaleDraftsCommandHandler(store, store, func() time.Time { return t0 })
	job := NewDraftExpiryJob(handler, DraftExpiryConfig{MaxAge: 72 * time.Hour, Batch: 10}, slog.Default())
	job.now = func() time.Time { return t0 }

	expired, err := job.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	archived, err := store.LoadArchived(ctx, old.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, archived.Status())
}

func TestDraftExpiryJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewDraftExpiryJob(new(MockDraftExpirer), DraftExpiryConfig{Schedule: "every hour"}, slog.Default())
	require.Error(t, job.Start())
}

func TestCatalogRefreshJob_Run_LoadsSeed(t *testing.T) {
	catalog := relaypoint.NewCatalog()
	job := NewCatalogRefreshJob(directory.SeedFile(), catalog, "", slog.Default())

	require.NoError(t, job.Run(t.Context()))

	assert.Equal(t, 8, catalog.Len())
}

func TestCatalogRefreshJob_Run_KeepsCatalogOnFailure(t *testing.T) {
	ctx := t.Context()
	catalog := relaypoint.NewCatalog()
	require.NoError(t, NewCatalogRefreshJob(directory.SeedFile(), catalog, "", slog.Default()).Run(ctx))

	dir := new(MockDirectory)
	dir.On("Fetch", ctx).Return(nil, errors.New("directory down")).Once()
	dir.On("Fetch", ctx).Return([]relaypoint.RelayPoint{}, nil).Once()
	job := NewCatalogRefreshJob(dir, catalog, "", slog.Default())

	require.Error(t, job.Run(ctx))
	require.ErrorIs(t, job.Run(ctx), ErrEmptyDirectory)

	assert.Equal(t, 8, catalog.Len())
	dir.AssertExpectations(t)
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	var log []string
	a := &fakeJob{name: "a", log: &log}
	b := &fakeJob{name: "b", startErr: errors.New("bad schedule"), log: &log}
	c := &fakeJob{name: "c", log: &log}

	err := NewJobManager(a, nil, b, c).StartAll()

	require.Error(t, err)
	assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
}

func TestJobManager_StopAllInReverseOrder(t *testing.T) {
	var log []string
	jm := NewJobManager(&fakeJob{name: "a", log: &log}, &fakeJob{name: "b", log: &log})

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}
