package orderflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

const (
	// DefaultPaymentTimeout bounds a single payment collaborator call.
	DefaultPaymentTimeout = 30 * time.Second
	// DefaultTrackingAttempts is how many tracking numbers Confirm tries before giving up.
	DefaultTrackingAttempts = 3
)

// Pricer quotes packages and splits frozen totals between sender and recipient.
type Pricer interface {
	Quote(pkg parcel.PackageSpec, opts parcel.ServiceOptions, route *order.Route) (order.PriceBreakdown, error)
	Settle(b order.PriceBreakdown, method order.PaymentMethod) (order.Settlement, error)
}

// RouteSelector validates relay point pairs.
type RouteSelector interface {
	SelectRoute(departureID, arrivalID string) (order.Route, error)
	SelectArrival(arrivalID string) (order.Route, error)
	FixedDeparture() (string, bool)
}

// TrackingNumbers produces candidate tracking numbers.
type TrackingNumbers interface {
	Generate() order.TrackingNumber
}

// Dependencies are the collaborators of an Engine. All are required.
type Dependencies struct {
	Store    ports.DraftStore
	Archiver ports.DraftArchiver
	Pricing  Pricer
	Routes   RouteSelector
	Payments ports.PaymentGateway
	Tracking TrackingNumbers
}

func (d Dependencies) validate() error {
	var problems []error
	if d.Store == nil {
		problems = append(problems, errs.NewValueIsRequiredError("store"))
	}
	if d.Archiver == nil {
		problems = append(problems, errs.NewValueIsRequiredError("archiver"))
	}
	if d.Pricing == nil {
		problems = append(problems, errs.NewValueIsRequiredError("pricing"))
	}
	if d.Routes == nil {
		problems = append(problems, errs.NewValueIsRequiredError("routes"))
	}
	if d.Payments == nil {
		problems = append(problems, errs.NewValueIsRequiredError("payments"))
	}
	if d.Tracking == nil {
		problems = append(problems, errs.NewValueIsRequiredError("tracking"))
	}
	return errors.Join(problems...)
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPaymentTimeout bounds each payment collaborator call.
func WithPaymentTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.paymentTimeout = d
		}
	}
}

// WithTrackingAttempts sets how many tracking numbers Confirm may try.
func WithTrackingAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.trackingAttempts = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine creates and resumes state machines.
type Engine struct {
	deps             Dependencies
	now              func() time.Time
	newID            func() kernel.UUID
	paymentTimeout   time.Duration
	trackingAttempts int
	logger           *slog.Logger
}

func NewEngine(deps Dependencies, opts ...Option) (*Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		deps:             deps,
		now:              time.Now,
		newID:            kernel.NewUUID,
		paymentTimeout:   DefaultPaymentTimeout,
		trackingAttempts: DefaultTrackingAttempts,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "orderflow")
	return e, nil
}

// Start creates and persists a new draft.
func (e *Engine) Start(ctx context.Context) (*StateMachine, error) {
	draft, err := order.NewDraft(e.newID(), e.now())
	if err != nil {
		return nil, err
	}

	if err = e.deps.Store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save new draft: %w", err)
	}

	e.logger.InfoContext(ctx, "draft started", "draft_id", draft.ID().String())
	return e.machine(draft), nil
}

// Resume loads a draft at the step it was left. A missing draft yields an
// *errs.ObjectNotFoundError; the caller should Start a new one.
func (e *Engine) Resume(ctx context.Context, id kernel.UUID) (*StateMachine, error) {
	draft, err := e.deps.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.machine(draft), nil
}

// Restart discards the snapshot of a draft.
func (e *Engine) Restart(ctx context.Context, id kernel.UUID) error {
	if err := e.deps.Store.Clear(ctx, id); err != nil {
		return fmt.Errorf("clear draft %s: %w", id, err)
	}
	e.logger.InfoContext(ctx, "draft restarted", "draft_id", id.String())
	return nil
}

// Quote prices a package outside of any draft.
func (e *Engine) Quote(pkg parcel.PackageSpec, opts parcel.ServiceOptions, route *order.Route) (order.PriceBreakdown, error) {
	return e.deps.Pricing.Quote(pkg, opts, route)
}

func (e *Engine) machine(draft *order.Draft) *StateMachine {
	return &StateMachine{engine: e, draft: draft}
}

// persist saves a draft, or archives it when it reached a terminal status.
func (e *Engine) persist(ctx context.Context, draft *order.Draft) error {
	if draft.Status().IsTerminal() {
		if err := e.deps.Archiver.Archive(ctx, draft); err != nil {
			return fmt.Errorf("archive draft %s: %w", draft.ID(), err)
		}
		return nil
	}

	if err := e.deps.Store.Save(ctx, draft); err != nil {
		return fmt.Errorf("save draft %s: %w", draft.ID(), err)
	}
	return nil
}

// charge calls the payment collaborator under the payment timeout. The draft id
// doubles as the idempotency key of the request.
func (e *Engine) charge(ctx context.Context, req ports.PaymentRequest) (ports.PaymentResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.paymentTimeout)
	defer cancel()

	result, err := e.deps.Payments.Charge(callCtx, req)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		e.logger.WarnContext(ctx, "payment timed out", "draft_id", req.DraftID.String(), "timeout", e.paymentTimeout)
		return result, &PaymentFailedError{Reason: "timeout", Cause: context.DeadlineExceeded}
	case err != nil:
		e.logger.WarnContext(ctx, "payment failed", "draft_id", req.DraftID.String(), "error", err)
		return result, &PaymentFailedError{Reason: "gateway error", Cause: err}
	case !result.Approved:
		reason := result.DeclineReason
		if reason == "" {
			reason = "declined"
		}
		e.logger.InfoContext(ctx, "payment declined", "draft_id", req.DraftID.String(), "reason", reason)
		return result, &PaymentFailedError{Reason: reason}
	}

	e.logger.InfoContext(ctx, "payment approved",
		"draft_id", req.DraftID.String(),
		"amount", req.Amount,
		"method", req.Method.String(),
		"reference", result.Reference)
	return result, nil
}
