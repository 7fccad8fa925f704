package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickdrop/internal/core/application/usecases/commands"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/core/domain/services"
	"pickdrop/internal/pkg/errs"
)

func TestCommands_RejectZeroValues(t *testing.T) {
	ctx := t.Context()
	engine, _ := newEngine(t)

	_, err := commands.NewStartDraftCommandHandler(engine).Handle(ctx, commands.StartDraftCommand{})
	require.ErrorIs(t, err, commands.ErrStartDraftCommandIsNotConstructed)

	_, err = commands.NewSubmitPackageCommandHandler(engine).Handle(ctx, commands.SubmitPackageCommand{})
	require.ErrorIs(t, err, commands.ErrSubmitPackageCommandIsNotConstructed)

	_, err = commands.NewCancelDraftCommandHandler(engine).Handle(ctx, commands.CancelDraftCommand{})
	require.ErrorIs(t, err, commands.ErrCancelDraftCommandIsNotConstructed)

	err = commands.NewRestartDraftCommandHandler(engine).Handle(ctx, commands.RestartDraftCommand{})
	require.ErrorIs(t, err, commands.ErrRestartDraftCommandIsNotConstructed)
}

func TestCommands_ConstructorValidation(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("zero draft id", func(t *testing.T) {
		_, err := commands.NewConfirmDraftCommand(kernel.UUID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("route needs arrival", func(t *testing.T) {
		_, err := commands.NewSelectRouteCommand(id, "1", "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("route trims ids", func(t *testing.T) {
		cmd, err := commands.NewSelectRouteCommand(id, " 1 ", " 4")
		require.NoError(t, err)
		assert.Equal(t, "1", cmd.DepartureID())
		assert.Equal(t, "4", cmd.ArrivalID())
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, err := commands.NewChoosePaymentCommand(id, order.RecipientInfo{Name: "Awa", Phone: "699112233"}, "cheque")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("short recipient name", func(t *testing.T) {
		_, err := commands.NewChoosePaymentCommand(id, order.RecipientInfo{Name: "Al", Phone: "699112233"}, "card")
		require.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("unknown advance target", func(t *testing.T) {
		_, err := commands.NewAdvanceDraftCommand(id, "teleported")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("expiry needs a positive limit", func(t *testing.T) {
		_, err := commands.NewExpireStaleDraftsCommand(t0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCommands_FullJourney(t *testing.T) {
	ctx := t.Context()
	engine, store := newEngine(t)

	draft, err := commands.NewStartDraftCommandHandler(engine).Handle(ctx, commands.NewStartDraftCommand())
	require.NoError(t, err)
	id := draft.ID()

	partial, err := commands.NewSubmitPackageCommand(id, parcel.PackageSpec{Designation: "books"}, parcel.ServiceOptions{}, true)
	require.NoError(t, err)
	draft, err = commands.NewSubmitPackageCommandHandler(engine).Handle(ctx, partial)
	require.NoError(t, err)
	assert.Equal(t, order.Drafting, draft.Status())

	full, err := commands.NewSubmitPackageCommand(id, parcel.PackageSpec{WeightKg: 2.5, Fragile: true}, parcel.ServiceOptions{}, false)
	require.NoError(t, err)
	draft, err = commands.NewSubmitPackageCommandHandler(engine).Handle(ctx, full)
	require.NoError(t, err)
	assert.Equal(t, order.PackageDetailsComplete, draft.Status())

	route, err := commands.NewSelectRouteCommand(id, "1", "4")
	require.NoError(t, err)
	draft, err = commands.NewSelectRouteCommandHandler(engine).Handle(ctx, route)
	require.NoError(t, err)
	assert.Equal(t, order.RouteSelected, draft.Status())

	choice, err := commands.NewChoosePaymentCommand(id, order.RecipientInfo{Name: "Awa Mbarga", Phone: "699112233"}, "card")
	require.NoError(t, err)
	_, err = commands.NewChoosePaymentCommandHandler(engine).Handle(ctx, choice)
	require.NoError(t, err)

	resolve, err := commands.NewResolvePaymentCommand(id)
	require.NoError(t, err)
	draft, receipt, err := commands.NewResolvePaymentCommandHandler(engine).Handle(ctx, resolve)
	require.NoError(t, err)
	assert.Equal(t, order.Paid, draft.Status())
	assert.True(t, receipt.Approved)
	assert.Equal(t, int64(2588), draft.Price().Total)

	confirm, err := commands.NewConfirmDraftCommand(id)
	require.NoError(t, err)
	draft, err = commands.NewConfirmDraftCommandHandler(engine).Handle(ctx, confirm)
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, draft.Status())
	assert.NoError(t, draft.TrackingNumber().Validate())

	advance := commands.NewAdvanceDraftCommandHandler(engine)
	for _, to := range []string{"deposited", "inTransit", "arrivedAtRelay", "received"} {
		cmd, cmdErr := commands.NewAdvanceDraftCommand(id, to)
		require.NoError(t, cmdErr)
		draft, err = advance.Handle(ctx, cmd)
		require.NoError(t, err, to)
	}
	assert.Equal(t, order.Received, draft.Status())

	archived, err := store.LoadArchived(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.Received, archived.Status())
}

func TestSelectRouteCommandHandler_SameEndpoint(t *testing.T) {
	ctx := t.Context()
	engine, _ := newEngine(t)
	draft, err := commands.NewStartDraftCommandHandler(engine).Handle(ctx, commands.NewStartDraftCommand())
	require.NoError(t, err)
	pkg, err := commands.NewSubmitPackageCommand(draft.ID(), parcel.PackageSpec{WeightKg: 1}, parcel.ServiceOptions{}, false)
	require.NoError(t, err)
	_, err = commands.NewSubmitPackageCommandHandler(engine).Handle(ctx, pkg)
	require.NoError(t, err)

	cmd, err := commands.NewSelectRouteCommand(draft.ID(), "4", "4")
	require.NoError(t, err)
	_, err = commands.NewSelectRouteCommandHandler(engine).Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrSameEndpoint)
}

func TestCancelAndRestartCommands(t *testing.T) {
	ctx := t.Context()
	engine, store := newEngine(t)
	start := commands.NewStartDraftCommandHandler(engine)

	first, err := start.Handle(ctx, commands.NewStartDraftCommand())
	require.NoError(t, err)
	cancel, err := commands.NewCancelDraftCommand(first.ID(), " no longer needed ")
	require.NoError(t, err)
	cancelled, err := commands.NewCancelDraftCommandHandler(engine).Handle(ctx, cancel)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Equal(t, "no longer needed", cancelled.CancelReason())

	second, err := start.Handle(ctx, commands.NewStartDraftCommand())
	require.NoError(t, err)
	restart, err := commands.NewRestartDraftCommand(second.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewRestartDraftCommandHandler(engine).Handle(ctx, restart))

	_, err = store.Load(ctx, second.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	missing, err := commands.NewConfirmDraftCommand(second.ID())
	require.NoError(t, err)
	_, err = commands.NewConfirmDraftCommandHandler(engine).Handle(ctx, missing)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
