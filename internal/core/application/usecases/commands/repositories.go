// Package commands contains the operations that change draft state.
// Every command is validated at construction; handlers drive the order workflow and
// persist through it or through a unit of work.
package commands

import (
	"context"

	"pickdrop/internal/core/application/orderflow"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/ports"
)

type (
	// Workflow starts and resumes draft state machines.
	Workflow interface {
		Start(ctx context.Context) (*orderflow.StateMachine, error)
		Resume(ctx context.Context, id kernel.UUID) (*orderflow.StateMachine, error)
		Restart(ctx context.Context, id kernel.UUID) error
	}

	// UoWFactory creates transactions spanning live drafts and the archive.
	UoWFactory = ports.UnitOfWorkFactory

	// UoW is a single transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _ = uow.ArchiveWriter().Append(ctx, draft)
	//   _ = uow.DraftStore().Clear(ctx, draft.ID())
	//
	//   err = uow.Commit(ctx)
	UoW = ports.UnitOfWork
)

func validateDraftID(id kernel.UUID) error {
	return id.Validate()
}
