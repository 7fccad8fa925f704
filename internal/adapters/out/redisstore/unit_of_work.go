package redisstore

import (
	"context"
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
)

var (
	ErrTransactionAlreadyStarted = errors.New("transaction already started")
	ErrNoActiveTransaction       = errors.New("no active transaction")
)

// Create returns a unit of work that buffers writes and sends them as one
// MULTI/EXEC on Commit.
func (s *Store) Create() ports.UnitOfWork {
	return &unitOfWork{store: s}
}

type unitOfWork struct {
	store  *Store
	active bool
	ops    []op
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return ErrTransactionAlreadyStarted
	}
	u.active = true
	u.ops = nil
	return ctx.Err()
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	if err := u.store.commit(ctx, u.ops); err != nil {
		return err
	}
	u.active = false
	u.ops = nil
	return nil
}

func (u *unitOfWork) Rollback(context.Context) error {
	u.active = false
	u.ops = nil
	return nil
}

func (u *unitOfWork) DraftStore() ports.DraftStore {
	return txStore{uow: u}
}

func (u *unitOfWork) ArchiveWriter() ports.ArchiveWriter {
	return txArchive{uow: u}
}

func (u *unitOfWork) enqueue(o op, err error) error {
	if err != nil {
		return err
	}
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.ops = append(u.ops, o)
	return nil
}

type txStore struct {
	uow *unitOfWork
}

func (t txStore) Save(_ context.Context, draft *order.Draft) error {
	return t.uow.enqueue(saveOp(draft))
}

// Load reads committed state only.
func (t txStore) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	return t.uow.store.Load(ctx, id)
}

func (t txStore) Clear(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return t.uow.enqueue(clearOp(id), nil)
}

type txArchive struct {
	uow *unitOfWork
}

func (t txArchive) Append(_ context.Context, draft *order.Draft) error {
	return t.uow.enqueue(appendOp(draft))
}
