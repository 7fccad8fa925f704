package orderflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/core/ports"
)

// StateMachine drives one draft. It is safe for concurrent use; operations on the
// same machine are serialised.
type StateMachine struct {
	engine *Engine

	mu    sync.Mutex
	draft *order.Draft
}

// ID returns the id of the driven draft.
func (m *StateMachine) ID() kernel.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.ID()
}

// Draft returns a copy of the current draft.
func (m *StateMachine) Draft() *order.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.Clone()
}

// Status returns the current status.
func (m *StateMachine) Status() order.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.Status()
}

// EditPackage saves in-progress package entry without validation.
func (m *StateMachine) EditPackage(ctx context.Context, pkg parcel.PackageSpec, opts parcel.ServiceOptions) error {
	return m.apply(ctx, "edit package", func(d *order.Draft) error {
		return d.EditPackage(pkg, opts, m.engine.now())
	})
}

// SubmitPackageDetails validates and completes the package step.
func (m *StateMachine) SubmitPackageDetails(ctx context.Context, pkg parcel.PackageSpec, opts parcel.ServiceOptions) error {
	return m.apply(ctx, "submit package details", func(d *order.Draft) error {
		return d.SubmitPackageDetails(pkg, opts, m.engine.now())
	})
}

// SelectRoute validates the relay point pair and records it.
func (m *StateMachine) SelectRoute(ctx context.Context, departureID, arrivalID string) error {
	return m.apply(ctx, "select route", func(d *order.Draft) error {
		route, err := m.engine.deps.Routes.SelectRoute(departureID, arrivalID)
		if err != nil {
			return err
		}
		return d.SelectRoute(route, m.engine.now())
	})
}

// SelectArrival records a route from the configured fixed departure point.
func (m *StateMachine) SelectArrival(ctx context.Context, arrivalID string) error {
	return m.apply(ctx, "select arrival", func(d *order.Draft) error {
		route, err := m.engine.deps.Routes.SelectArrival(arrivalID)
		if err != nil {
			return err
		}
		return d.SelectRoute(route, m.engine.now())
	})
}

// ChoosePayment records the recipient and the payment method.
func (m *StateMachine) ChoosePayment(ctx context.Context, recipient order.RecipientInfo, method order.PaymentMethod) error {
	return m.apply(ctx, "choose payment", func(d *order.Draft) error {
		return d.ChoosePayment(recipient, method, m.engine.now())
	})
}

// Quote returns the frozen price once payment resolved, and a live quote before.
func (m *StateMachine) Quote() (order.PriceBreakdown, error) {
	d := m.Draft()
	if price := d.Price(); price != nil {
		return *price, nil
	}
	return m.engine.deps.Pricing.Quote(d.PackageSpec(), d.ServiceOptions(), d.Route())
}

// ResolvePayment prices the draft, collects payment when the method requires the
// gateway and freezes price and settlement. Gateway failures come back as
// *PaymentFailedError with the draft still in PaymentChosen.
func (m *StateMachine) ResolvePayment(ctx context.Context) (ports.PaymentResult, error) {
	var result ports.PaymentResult
	err := m.apply(ctx, "resolve payment", func(d *order.Draft) error {
		if _, err := d.Status().ResolvePayment(d.PaymentMethod()); err != nil {
			return err
		}

		price, err := m.engine.deps.Pricing.Quote(d.PackageSpec(), d.ServiceOptions(), d.Route())
		if err != nil {
			return err
		}
		settlement, err := m.engine.deps.Pricing.Settle(price, d.PaymentMethod())
		if err != nil {
			return err
		}

		if d.PaymentMethod().RequiresGateway() {
			result, err = m.engine.charge(ctx, ports.PaymentRequest{
				DraftID: d.ID(),
				Amount:  settlement.SenderOwes,
				Method:  d.PaymentMethod(),
			})
			if err != nil {
				return err
			}
		}

		return d.ResolvePayment(price, settlement, m.engine.now())
	})
	return result, err
}

// Confirm assigns a tracking number. A number already held by another draft is
// replaced by a fresh one, up to the engine's attempt limit.
func (m *StateMachine) Confirm(ctx context.Context) (order.TrackingNumber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= m.engine.trackingAttempts; attempt++ {
		next := m.draft.Clone()
		if err := next.Confirm(m.engine.deps.Tracking.Generate(), m.engine.now()); err != nil {
			return "", err
		}

		err := m.engine.persist(ctx, next)
		if err == nil {
			m.logTransition(ctx, "confirm", next)
			m.draft = next
			return next.TrackingNumber(), nil
		}
		if !errors.Is(err, ports.ErrTrackingNumberTaken) {
			return "", err
		}

		m.engine.logger.WarnContext(ctx, "tracking number collision",
			"draft_id", next.ID().String(),
			"tracking_number", next.TrackingNumber().String(),
			"attempt", attempt)
		lastErr = err
	}
	return "", fmt.Errorf("confirm after %d attempts: %w", m.engine.trackingAttempts, lastErr)
}

// Advance moves one step along the physical hand-off chain.
func (m *StateMachine) Advance(ctx context.Context, to order.Status) error {
	return m.apply(ctx, "advance", func(d *order.Draft) error {
		return d.AdvanceTo(to, m.engine.now())
	})
}

func (m *StateMachine) MarkDeposited(ctx context.Context) error {
	return m.Advance(ctx, order.Deposited)
}

func (m *StateMachine) MarkInTransit(ctx context.Context) error {
	return m.Advance(ctx, order.InTransit)
}

func (m *StateMachine) MarkArrivedAtRelay(ctx context.Context) error {
	return m.Advance(ctx, order.ArrivedAtRelay)
}

func (m *StateMachine) MarkReceived(ctx context.Context) error {
	return m.Advance(ctx, order.Received)
}

// Cancel abandons the draft and archives it.
func (m *StateMachine) Cancel(ctx context.Context, reason string) error {
	return m.apply(ctx, "cancel", func(d *order.Draft) error {
		return d.Cancel(reason, m.engine.now())
	})
}

// apply runs fn on a copy of the draft, persists the copy and swaps it in.
func (m *StateMachine) apply(ctx context.Context, op string, fn func(d *order.Draft) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.draft.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := m.engine.persist(ctx, next); err != nil {
		return err
	}

	m.logTransition(ctx, op, next)
	m.draft = next
	return nil
}

func (m *StateMachine) logTransition(ctx context.Context, op string, next *order.Draft) {
	if m.draft.Status() == next.Status() {
		m.engine.logger.DebugContext(ctx, "draft updated",
			"draft_id", next.ID().String(), "op", op, "status", next.Status().String())
		return
	}
	m.engine.logger.InfoContext(ctx, "draft transitioned",
		"draft_id", next.ID().String(),
		"op", op,
		"from", m.draft.Status().String(),
		"to", next.Status().String())
}
