// Package redisstore keeps draft snapshots in Redis.
//
// Layout, relative to the configured key prefix:
//
//	draft:<id>      hash {snapshot, status, tracking}
//	archive:<id>    string, the archived snapshot
//	stale           sorted set of cancellable draft ids scored by updatedAt (µs)
//	tracking        hash tracking number -> draft id, live and archived
//
// Every write, single or batched through a unit of work, runs as one MULTI/EXEC
// guarded by WATCH on the tracking hash.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

// DefaultKeyPrefix namespaces every key the store writes.
const DefaultKeyPrefix = "pickdrop:"

const commitAttempts = 3

var (
	_ ports.DraftRepository   = &Store{}
	_ ports.UnitOfWorkFactory = &Store{}
)

type Store struct {
	client redis.UniversalClient
	prefix string
}

func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Save(ctx context.Context, draft *order.Draft) error {
	w, err := saveOp(draft)
	if err != nil {
		return err
	}
	return s.commit(ctx, []op{w})
}

func (s *Store) Load(ctx context.Context, id kernel.UUID) (*order.Draft, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	data, err := s.client.HGet(ctx, s.draftKey(id), "snapshot").Result()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("draftID", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", id, err)
	}
	return order.UnmarshalSnapshot([]byte(data))
}

func (s *Store) Clear(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return s.commit(ctx, []op{clearOp(id)})
}

// Archive appends the archive record and removes the live draft in one transaction.
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
	if err := id.Validate(); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.archiveKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("draftID", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load archived draft %s: %w", id, err)
	}
	return order.UnmarshalSnapshot(data)
}

// ListStale reads the stale index. Equal scores come back ordered by id.
func (s *Store) ListStale(ctx context.Context, before time.Time, limit int) ([]*order.Draft, error) {
	by := &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(before.UnixMicro(), 10),
	}
	if limit > 0 {
		by.Count = int64(limit)
	}

	ids, err := s.client.ZRangeByScore(ctx, s.staleKey(), by).Result()
	if err != nil {
		return nil, fmt.Errorf("list stale drafts: %w", err)
	}

	drafts := make([]*order.Draft, 0, len(ids))
	for _, raw := range ids {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("list stale drafts: member %q: %w", raw, err)
		}
		data, err := s.client.HGet(ctx, s.draftKey(id), "snapshot").Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list stale drafts: load %s: %w", id, err)
		}
		d, err := order.UnmarshalSnapshot([]byte(data))
		if err != nil {
			slog.Default().Warn("skip undecodable draft", "component", "redisstore", "draftID", id, "error", err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// commit applies ops atomically, retrying when the tracking hash changed under it.
func (s *Store) commit(ctx context.Context, ops []op) error {
	var err error
	for range commitAttempts {
		err = s.client.Watch(ctx, func(tx *redis.Tx) error {
			p := newPlan(s, tx)
			for _, o := range ops {
				if err := o(ctx, p); err != nil {
					return err
				}
			}
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for _, w := range p.writes {
					w(pipe)
				}
				return nil
			})
			return err
		}, s.trackingKey())
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("commit drafts: %w", err)
}

func (s *Store) draftKey(id kernel.UUID) string   { return s.prefix + "draft:" + id.String() }
func (s *Store) archiveKey(id kernel.UUID) string { return s.prefix + "archive:" + id.String() }
func (s *Store) staleKey() string                 { return s.prefix + "stale" }
func (s *Store) trackingKey() string              { return s.prefix + "tracking" }
