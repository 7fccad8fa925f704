package memstore

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

var _ ports.UnitOfWorkFactory = &Store{}

// Create returns a unit of work that buffers writes and applies them to the store
// all at once on Commit.
func (s *Store) Create() ports.UnitOfWork {
	return &unitOfWork{store: s}
}

type unitOfWork struct {
	store  *Store
	active bool
	ops    []func(state) error
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return ErrTransactionAlreadyStarted
	}
	u.active = true
	u.ops = nil
	return ctx.Err()
}

// Commit applies the buffered writes to a copy of the store state and swaps it in,
// so a failing write leaves the store untouched.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	next := u.store.state.clone()
	for _, op := range u.ops {
		if err := op(next); err != nil {
			return err
		}
	}
	u.store.state = next
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

func (u *unitOfWork) enqueue(op func(state) error) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.ops = append(u.ops, op)
	return nil
}

type txStore struct {
	uow *unitOfWork
}

func (t txStore) Save(_ context.Context, draft *order.Draft) error {
	data, err := encode(draft)
	if err != nil {
		return err
	}
	return t.uow.enqueue(func(s state) error { return s.save(draft, data) })
}

// Load reads committed state only.
func (t txStore) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	return t.uow.store.Load(ctx, id)
}

func (t txStore) Clear(_ context.Context, id kernel.UUID) error {
	return t.uow.enqueue(func(s state) error {
		s.clear(id)
		return nil
	})
}

type txArchive struct {
	uow *unitOfWork
}

func (t txArchive) Append(_ context.Context, draft *order.Draft) error {
	data, err := encode(draft)
	if err != nil {
		return err
	}
	return t.uow.enqueue(func(s state) error { return s.appendArchive(draft, data) })
}
