// Package payment provides payment collaborators.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pickdrop/internal/core/ports"
)

// DefaultApprovalLimit is the largest amount the offline gateway approves.
const DefaultApprovalLimit int64 = 500_000

var _ ports.PaymentGateway = &OfflineGateway{}

// OfflineGateway is a deterministic stand-in for a card and mobile money processor.
// It approves every amount up to its limit after an optional fixed latency and
// declines the rest. The reference is derived from the draft id and amount, so a
// repeated charge for the same draft returns the same reference.
type OfflineGateway struct {
	limit   int64
	latency time.Duration
	logger  *slog.Logger
}

func NewOfflineGateway(limit int64, latency time.Duration, logger *slog.Logger) *OfflineGateway {
	if limit <= 0 {
		limit = DefaultApprovalLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OfflineGateway{limit: limit, latency: latency, logger: logger.With("component", "OfflineGateway")}
}

func (g *OfflineGateway) Charge(ctx context.Context, req ports.PaymentRequest) (ports.PaymentResult, error) {
	if err := req.Method.Validate(); err != nil {
		return ports.PaymentResult{}, err
	}

	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ports.PaymentResult{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return ports.PaymentResult{}, err
	}

	if req.Amount <= 0 {
		return ports.PaymentResult{Approved: false, DeclineReason: "amount must be positive"}, nil
	}
	if req.Amount > g.limit {
		g.logger.InfoContext(ctx, "declined over limit", "draft_id", req.DraftID.String(), "amount", req.Amount)
		return ports.PaymentResult{
			Approved:      false,
			DeclineReason: fmt.Sprintf("amount %d exceeds limit %d", req.Amount, g.limit),
		}, nil
	}

	return ports.PaymentResult{
		Approved:  true,
		Reference: fmt.Sprintf("off_%s_%d", req.DraftID.String()[:8], req.Amount),
	}, nil
}
