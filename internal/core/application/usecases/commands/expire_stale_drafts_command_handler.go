package commands

import (
	"context"
	"time"

	"pickdrop/internal/core/ports"
)

// ExpireStaleDraftsCommandHandler cancels abandoned drafts and moves them to the
// archive. The whole batch is written in a single transaction.
type ExpireStaleDraftsCommandHandler struct {
	finder     ports.StaleDraftFinder
	uowFactory UoWFactory
	now        func() time.Time
}

func NewExpireStaleDraftsCommandHandler(
	finder ports.StaleDraftFinder,
	uowFactory UoWFactory,
	now func() time.Time,
) ExpireStaleDraftsCommandHandler {
	if now == nil {
		now = time.Now
	}
	return ExpireStaleDraftsCommandHandler{finder: finder, uowFactory: uowFactory, now: now}
}

// Handle returns how many drafts were expired.
func (h ExpireStaleDraftsCommandHandler) Handle(ctx context.Context, cmd ExpireStaleDraftsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	drafts, err := h.finder.ListStale(ctx, cmd.Before(), cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(drafts) == 0 {
		return 0, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now()
	expired := 0
	for _, draft := range drafts {
		if !draft.Status().IsCancellable() {
			continue
		}
		if err = draft.Cancel(ExpiredReason, now); err != nil {
			return 0, err
		}
		if err = uow.ArchiveWriter().Append(ctx, draft); err != nil {
			return 0, err
		}
		if err = uow.DraftStore().Clear(ctx, draft.ID()); err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
