package order_test

import (
	"encoding/json"
	"testing"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	statuses := []struct {
		status order.Status
		method order.PaymentMethod
	}{
		{order.Drafting, order.Card},
		{order.PackageDetailsComplete, order.Card},
		{order.RouteSelected, order.Card},
		{order.PaymentChosen, order.MobileMoney},
		{order.Paid, order.MobileMoney},
		{order.PendingCashAtDeposit, order.CashAtDeposit},
		{order.PendingRecipientPayment, order.PayByRecipient},
		{order.Confirmed, order.Card},
		{order.InTransit, order.Card},
		{order.Received, order.Card},
	}

	for _, tt := range statuses {
		t.Run(tt.status.String(), func(t *testing.T) {
			d := draftAt(t, tt.status, tt.method)

			data, err := order.MarshalSnapshot(d)
			require.NoError(t, err)

			restored, err := order.UnmarshalSnapshot(data)
			require.NoError(t, err)
			assert.Equal(t, d, restored)
		})
	}

	t.Run("cancelled", func(t *testing.T) {
		d := draftAt(t, order.PaymentChosen, order.Card)
		require.NoError(t, d.Cancel("duplicate", t0))

		data, err := order.MarshalSnapshot(d)
		require.NoError(t, err)
		restored, err := order.UnmarshalSnapshot(data)
		require.NoError(t, err)

		assert.Equal(t, d, restored)
	})
}

func TestSnapshot_Layout(t *testing.T) {
	d := draftAt(t, order.Confirmed, order.Card)

	data, err := order.MarshalSnapshot(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{
		"draftId", "packageSpec", "serviceOptions", "route", "recipientInfo", "paymentMethod",
		"status", "priceBreakdown", "settlement", "trackingNumber", "createdAt", "updatedAt",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, d.ID().String(), raw["draftId"])
	assert.Equal(t, "confirmed", raw["status"])
	assert.Equal(t, "PDL1234567AB1", raw["trackingNumber"])

	t.Run("nulls before freezing", func(t *testing.T) {
		fresh := newDraft(t)
		data, err := order.MarshalSnapshot(fresh)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Nil(t, raw["route"])
		assert.Nil(t, raw["priceBreakdown"])
		assert.Nil(t, raw["trackingNumber"])
	})
}

func TestRestoreDraft_RejectsInconsistentSnapshots(t *testing.T) {
	base := draftAt(t, order.Confirmed, order.Card).Snapshot()

	tests := []struct {
		name   string
		mutate func(s *order.Snapshot)
	}{
		{"unknown status", func(s *order.Snapshot) { s.Status = order.Unknown }},
		{"missing route", func(s *order.Snapshot) { s.Route = nil }},
		{"missing price", func(s *order.Snapshot) { s.PriceBreakdown = nil }},
		{"missing tracking number", func(s *order.Snapshot) { s.TrackingNumber = nil }},
		{"bad total", func(s *order.Snapshot) {
			p := *s.PriceBreakdown
			p.Total++
			s.PriceBreakdown = &p
		}},
		{"tracking before confirmation", func(s *order.Snapshot) {
			s.Status = order.RouteSelected
			s.PriceBreakdown = nil
			s.Settlement = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)

			d, err := order.RestoreDraft(s)

			require.Error(t, err)
			assert.Nil(t, d)
		})
	}
}

func TestUnmarshalSnapshot_Garbage(t *testing.T) {
	_, err := order.UnmarshalSnapshot([]byte(`{"draftId":"nope"`))
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = order.UnmarshalSnapshot([]byte(`{"draftId":"550e8400-e29b-41d4-a716-446655440000","status":"warped"}`))
	require.Error(t, err)
}
