package memstore

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newDraft(t *testing.T, at time.Time) *order.Draft {
	t.Helper()
	d, err := order.NewDraft(kernel.NewUUID(), at)
	require.NoError(t, err)
	return d
}

func confirmedDraft(t *testing.T, tn order.TrackingNumber) *order.Draft {
	t.Helper()
	d := newDraft(t, t0)
	require.NoError(t, d.SubmitPackageDetails(parcel.PackageSpec{WeightKg: 2}, parcel.ServiceOptions{}, t0))
	require.NoError(t, d.SelectRoute(order.Route{DeparturePointID: "1", ArrivalPointID: "2"}, t0))
	require.NoError(t, d.ChoosePayment(order.RecipientInfo{Name: "Awa Ngono", Phone: "677123456"}, order.CashAtDeposit, t0))
	price := order.PriceBreakdown{BaseFee: 1500, Total: 1500}
	require.NoError(t, d.ResolvePayment(price, order.Settlement{SenderOwes: 1500}, t0))
	require.NoError(t, d.Confirm(tn, t0))
	return d
}

func Test_SaveLoadRoundTrip(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	d := newDraft(t, t0)
	require.NoError(t, d.EditPackage(parcel.PackageSpec{WeightKg: 1.5, Designation: "shoes"}, parcel.ServiceOptions{}, t0))

	require.NoError(t, s.Save(ctx, d))

	got, err := s.Load(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, d.Snapshot(), got.Snapshot())
}

func Test_LoadMissingIsNotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Load(t.Context(), kernel.NewUUID())

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_SaveOverwrites(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	d := newDraft(t, t0)
	require.NoError(t, s.Save(ctx, d))

	require.NoError(t, d.SubmitPackageDetails(parcel.PackageSpec{WeightKg: 3}, parcel.ServiceOptions{}, t0.Add(time.Minute)))
	require.NoError(t, s.Save(ctx, d))

	got, err := s.Load(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, order.PackageDetailsComplete, got.Status())
}

func Test_ClearIsIdempotent(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	d := newDraft(t, t0)
	require.NoError(t, s.Save(ctx, d))

	require.NoError(t, s.Clear(ctx, d.ID()))
	require.NoError(t, s.Clear(ctx, d.ID()))

	_, err := s.Load(ctx, d.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_TrackingNumberIsUnique(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	first := confirmedDraft(t, "PDL1234567AB1")
	second := confirmedDraft(t, "PDL1234567AB1")
	require.NoError(t, s.Save(ctx, first))

	err := s.Save(ctx, second)
	assert.True(t, errors.Is(err, ports.ErrTrackingNumberTaken))

	// saving the holder again is fine
	assert.NoError(t, s.Save(ctx, first))
}

func Test_ArchiveMovesDraft(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	d := newDraft(t, t0)
	require.NoError(t, s.Save(ctx, d))
	require.NoError(t, d.Cancel("changed my mind", t0.Add(time.Minute)))

	require.NoError(t, s.Archive(ctx, d))

	_, err := s.Load(ctx, d.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	archived, err := s.LoadArchived(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, archived.Status())
	assert.Equal(t, "changed my mind", archived.CancelReason())
}

func Test_ListStaleOldestFirst(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	old := newDraft(t, t0)
	older := newDraft(t, t0.Add(-time.Hour))
	fresh := newDraft(t, t0.Add(2*time.Hour))
	for _, d := range []*order.Draft{old, older, fresh} {
		require.NoError(t, s.Save(ctx, d))
	}

	stale, err := s.ListStale(ctx, t0.Add(time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.True(t, older.ID().IsEqual(stale[0].ID()))
	assert.True(t, old.ID().IsEqual(stale[1].ID()))

	limited, err := s.ListStale(ctx, t0.Add(time.Hour), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func Test_ListStaleSkipsUndecodableSnapshot(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	good := newDraft(t, t0)
	require.NoError(t, good.EditPackage(parcel.PackageSpec{WeightKg: 1}, parcel.ServiceOptions{ExpressTier: parcel.Express24}, t0))
	require.NoError(t, s.Save(ctx, good))
	s.state.live[kernel.NewUUID()] = entry{data: []byte(`{"status":"Drafting"`), updatedAt: t0.Add(-time.Hour), status: order.Drafting}

	stale, err := s.ListStale(ctx, t0.Add(time.Hour), 0)

	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.True(t, good.ID().IsEqual(stale[0].ID()))
}

func Test_ArchiveKeepsTrackingNumberReserved(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	done := confirmedDraft(t, "PDL7654321XYZ")
	require.NoError(t, s.Save(ctx, done))
	for _, to := range []order.Status{order.Deposited, order.InTransit, order.ArrivedAtRelay, order.Received} {
		require.NoError(t, done.AdvanceTo(to, t0))
	}
	require.NoError(t, s.Archive(ctx, done))

	err := s.Save(ctx, confirmedDraft(t, "PDL7654321XYZ"))

	assert.ErrorIs(t, err, ports.ErrTrackingNumberTaken)
}

func Test_ListStaleSkipsConfirmed(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	require.NoError(t, s.Save(ctx, confirmedDraft(t, "PDL1111111AAA")))
	abandoned := newDraft(t, t0)
	require.NoError(t, s.Save(ctx, abandoned))

	stale, err := s.ListStale(ctx, t0.Add(time.Hour), 0)

	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.True(t, abandoned.ID().IsEqual(stale[0].ID()))
}

func Test_UnitOfWorkAppliesOnCommitOnly(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	d := newDraft(t, t0)

	uow := s.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DraftStore().Save(ctx, d))

	_, err := s.Load(ctx, d.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, uow.Commit(ctx))
	_, err = s.Load(ctx, d.ID())
	require.NoError(t, err)
}

func Test_UnitOfWorkRollbackDiscards(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	d := newDraft(t, t0)

	uow := s.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DraftStore().Save(ctx, d))
	require.NoError(t, uow.Rollback(ctx))

	assert.ErrorIs(t, uow.Commit(ctx), ErrNoActiveTransaction)
	_, err := s.Load(ctx, d.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_UnitOfWorkFailedCommitLeavesStore(t *testing.T) {
	ctx := t.Context()
	s := NewStore()
	holder := confirmedDraft(t, "PDL2222222BBB")
	require.NoError(t, s.Save(ctx, holder))
	fresh := newDraft(t, t0)

	uow := s.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DraftStore().Save(ctx, fresh))
	require.NoError(t, uow.DraftStore().Save(ctx, confirmedDraft(t, "PDL2222222BBB")))

	require.ErrorIs(t, uow.Commit(ctx), ports.ErrTrackingNumberTaken)
	_, err := s.Load(ctx, fresh.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
