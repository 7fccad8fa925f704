package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
)

// op reads what it needs through the plan and queues its writes.
type op func(ctx context.Context, p *plan) error

// plan is the view of one commit: reads go to Redis inside WATCH, overlaid with the
// effects of the ops already planned.
type plan struct {
	store    *Store
	tx       *redis.Tx
	owners   map[string]string
	live     map[kernel.UUID]string
	archived map[kernel.UUID]bool
	writes   []func(redis.Pipeliner)
}

func newPlan(s *Store, tx *redis.Tx) *plan {
	return &plan{
		store:    s,
		tx:       tx,
		owners:   make(map[string]string),
		live:     make(map[kernel.UUID]string),
		archived: make(map[kernel.UUID]bool),
	}
}

func saveOp(draft *order.Draft) (op, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	data, err := order.MarshalSnapshot(draft)
	if err != nil {
		return nil, err
	}

	id := draft.ID()
	tn := draft.TrackingNumber().String()
	status := draft.Status()
	score := float64(draft.UpdatedAt().UnixMicro())

	return func(ctx context.Context, p *plan) error {
		if err := p.claim(ctx, tn, id); err != nil {
			return err
		}
		if err := p.release(ctx, id); err != nil {
			return err
		}

		key, stale, member := p.store.draftKey(id), p.store.staleKey(), id.String()
		p.queue(func(pipe redis.Pipeliner) {
			pipe.HSet(ctx, key, "snapshot", data, "status", int(status), "tracking", tn)
			if status.IsCancellable() {
				pipe.ZAdd(ctx, stale, redis.Z{Score: score, Member: member})
			} else {
				pipe.ZRem(ctx, stale, member)
			}
		})
		p.live[id] = tn
		p.reserve(ctx, tn, id)
		return nil
	}, nil
}

func clearOp(id kernel.UUID) op {
	return func(ctx context.Context, p *plan) error {
		if err := p.release(ctx, id); err != nil {
			return err
		}
		key, stale, member := p.store.draftKey(id), p.store.staleKey(), id.String()
		p.queue(func(pipe redis.Pipeliner) {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, stale, member)
		})
		p.live[id] = ""
		return nil
	}
}

func appendOp(draft *order.Draft) (op, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	data, err := order.MarshalSnapshot(draft)
	if err != nil {
		return nil, err
	}

	id := draft.ID()
	tn := draft.TrackingNumber().String()

	return func(ctx context.Context, p *plan) error {
		if err := p.claim(ctx, tn, id); err != nil {
			return err
		}
		key := p.store.archiveKey(id)
		p.queue(func(pipe redis.Pipeliner) {
			pipe.Set(ctx, key, data, 0)
		})
		p.archived[id] = true
		p.reserve(ctx, tn, id)
		return nil
	}, nil
}

func (p *plan) queue(w func(redis.Pipeliner)) {
	p.writes = append(p.writes, w)
}

func (p *plan) claim(ctx context.Context, tn string, id kernel.UUID) error {
	if tn == "" {
		return nil
	}
	owner, err := p.owner(ctx, tn)
	if err != nil {
		return err
	}
	if owner != "" && owner != id.String() {
		return ports.ErrTrackingNumberTaken
	}
	return nil
}

func (p *plan) reserve(ctx context.Context, tn string, id kernel.UUID) {
	if tn == "" {
		return
	}
	key, member := p.store.trackingKey(), id.String()
	p.queue(func(pipe redis.Pipeliner) {
		pipe.HSet(ctx, key, tn, member)
	})
	p.owners[tn] = member
}

// release frees the tracking number held by the live draft, unless the draft is
// archived and keeps it for good.
func (p *plan) release(ctx context.Context, id kernel.UUID) error {
	archived, err := p.isArchived(ctx, id)
	if err != nil || archived {
		return err
	}
	prev, err := p.liveTracking(ctx, id)
	if err != nil || prev == "" {
		return err
	}
	owner, err := p.owner(ctx, prev)
	if err != nil || owner != id.String() {
		return err
	}

	key := p.store.trackingKey()
	p.queue(func(pipe redis.Pipeliner) {
		pipe.HDel(ctx, key, prev)
	})
	p.owners[prev] = ""
	return nil
}

func (p *plan) owner(ctx context.Context, tn string) (string, error) {
	if owner, ok := p.owners[tn]; ok {
		return owner, nil
	}
	owner, err := p.tx.HGet(ctx, p.store.trackingKey(), tn).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read tracking owner: %w", err)
	}
	return owner, nil
}

func (p *plan) liveTracking(ctx context.Context, id kernel.UUID) (string, error) {
	if tn, ok := p.live[id]; ok {
		return tn, nil
	}
	tn, err := p.tx.HGet(ctx, p.store.draftKey(id), "tracking").Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read draft tracking number: %w", err)
	}
	return tn, nil
}

func (p *plan) isArchived(ctx context.Context, id kernel.UUID) (bool, error) {
	if p.archived[id] {
		return true, nil
	}
	n, err := p.tx.Exists(ctx, p.store.archiveKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("read archive: %w", err)
	}
	return n > 0, nil
}
