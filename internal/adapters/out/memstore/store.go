// Package memstore keeps draft snapshots in process memory. Snapshots are stored in
// their serialised form so a draft read back is never aliased with a live one.
package memstore

import (
	"context"
	"log/slog"
	"maps"
	"sort"
	"sync"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

var _ ports.DraftRepository = &Store{}

type entry struct {
	data      []byte
	updatedAt time.Time
	status    order.Status
	tracking  string
}

type state struct {
	live     map[kernel.UUID]entry
	archived map[kernel.UUID][]byte
	tracking map[string]kernel.UUID
}

func newState() state {
	return state{
		live:     make(map[kernel.UUID]entry),
		archived: make(map[kernel.UUID][]byte),
		tracking: make(map[string]kernel.UUID),
	}
}

func (s state) clone() state {
	return state{
		live:     maps.Clone(s.live),
		archived: maps.Clone(s.archived),
		tracking: maps.Clone(s.tracking),
	}
}

func (s state) claim(draft *order.Draft) (string, error) {
	tn := draft.TrackingNumber().String()
	if tn == "" {
		return "", nil
	}
	if owner, ok := s.tracking[tn]; ok && owner != draft.ID() {
		return "", ports.ErrTrackingNumberTaken
	}
	return tn, nil
}

// release frees the tracking number held by the live snapshot of id, unless the
// draft is archived and keeps it for good.
func (s state) release(id kernel.UUID) {
	if _, archived := s.archived[id]; archived {
		return
	}
	if prev, ok := s.live[id]; ok && prev.tracking != "" && s.tracking[prev.tracking] == id {
		delete(s.tracking, prev.tracking)
	}
}

func (s state) save(draft *order.Draft, data []byte) error {
	tn, err := s.claim(draft)
	if err != nil {
		return err
	}
	s.release(draft.ID())
	s.live[draft.ID()] = entry{data: data, updatedAt: draft.UpdatedAt(), status: draft.Status(), tracking: tn}
	if tn != "" {
		s.tracking[tn] = draft.ID()
	}
	return nil
}

func (s state) clear(id kernel.UUID) {
	s.release(id)
	delete(s.live, id)
}

// appendArchive keeps the tracking number reserved for the archived draft.
func (s state) appendArchive(draft *order.Draft, data []byte) error {
	tn, err := s.claim(draft)
	if err != nil {
		return err
	}
	s.archived[draft.ID()] = data
	if tn != "" {
		s.tracking[tn] = draft.ID()
	}
	return nil
}

type Store struct {
	mu    sync.RWMutex
	state state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Save(ctx context.Context, draft *order.Draft) error {
	data, err := encode(draft)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = ctx.Err(); err != nil {
		return err
	}
	return s.state.save(draft, data)
}

func (s *Store) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.state.live[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("draftID", id)
	}
	return order.UnmarshalSnapshot(e.data)
}

func (s *Store) Clear(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.clear(id)
	return nil
}

func (s *Store) Archive(ctx context.Context, draft *order.Draft) error {
	uow := s.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ArchiveWriter().Append(ctx, draft); err != nil {
		return err
	}
	if err := uow.DraftStore().Clear(ctx, draft.ID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (s *Store) LoadArchived(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.state.archived[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("draftID", id)
	}
	return order.UnmarshalSnapshot(data)
}

func (s *Store) ListStale(ctx context.Context, before time.Time, limit int) ([]*order.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type stale struct {
		id kernel.UUID
		e  entry
	}
	var found []stale

	s.mu.RLock()
	for id, e := range s.state.live {
		if e.status.IsCancellable() && e.updatedAt.Before(before) {
			found = append(found, stale{id: id, e: e})
		}
	}
	s.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].e.updatedAt.Equal(found[j].e.updatedAt) {
			return found[i].id.String() < found[j].id.String()
		}
		return found[i].e.updatedAt.Before(found[j].e.updatedAt)
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	drafts := make([]*order.Draft, 0, len(found))
	for _, f := range found {
		d, err := order.UnmarshalSnapshot(f.e.data)
		if err != nil {
			slog.Default().Warn("skip undecodable draft", "component", "memstore", "draftID", f.id, "error", err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func encode(draft *order.Draft) ([]byte, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return order.MarshalSnapshot(draft)
}
