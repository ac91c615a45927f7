package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

const maxUpdateRetries = 5

// Store keeps JSON documents (composer drafts, feed views) under
// "<prefix>:<uuid>" with a sliding TTL.
type Store[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewStore[T any](client *goredis.Client, prefix string, ttl time.Duration) *Store[T] {
	return &Store[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store[T]) key(id uuid.UUID) string {
	return s.prefix + ":" + id.String()
}

// Create fails with ErrConflict if the id is already taken.
func (s *Store[T]) Create(ctx context.Context, id uuid.UUID, v *T) error {
	op := "redis." + s.prefix + ".Create"

	b, err := json.Marshal(v)
	if err != nil {
		return e.Wrap(op, err)
	}
	ok, err := s.client.SetNX(ctx, s.key(id), b, s.ttl).Result()
	if err != nil {
		return e.Wrap(op, err)
	}
	if !ok {
		return e.Wrap(op, e.ErrConflict)
	}
	return nil
}

func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	op := "redis." + s.prefix + ".Get"

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, e.Wrap(op, e.ErrSessionNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, e.Wrap(op, err)
	}
	return &v, nil
}

// Update applies fn under optimistic locking (WATCH/MULTI) and retries when
// another writer got there first. An error from fn aborts without writing.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, fn func(*T) error) (*T, error) {
	op := "redis." + s.prefix + ".Update"
	key := s.key(id)

	var out *T
	txf := func(tx *goredis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return e.ErrSessionNotFound
			}
			return err
		}

		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		if err := fn(&v); err != nil {
			return err
		}

		b, err := json.Marshal(&v)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = &v
		return nil
	}

	for attempt := 1; attempt <= maxUpdateRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, e.Wrap(op, err)
	}
	return nil, fmt.Errorf("%s: %d attempts: %w", op, maxUpdateRetries, e.ErrConflict)
}

func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	op := "redis." + s.prefix + ".Delete"

	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return e.Wrap(op, err)
	}
	if n == 0 {
		return e.Wrap(op, e.ErrSessionNotFound)
	}
	return nil
}
