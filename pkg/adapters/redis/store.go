// Package redis provides a ports.TrailStore backed by Redis, for pipelines
// that fan traversal work across processes and need durable trails.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arborlab/arbor/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// indexHorizon is the ZSET score used for trails with no expiration
// (2100-01-01, far enough for the lazy pruning to never evict them).
const indexHorizon = 4102444800

// Store implements ports.TrailStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored trails.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for trails.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store connecting to the given address.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "arbor:trail:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the trail as JSON and registers it in the index ZSET.
func (s *Store) Save(ctx context.Context, trail *domain.Trail) error {
	data, err := json.Marshal(trail)
	if err != nil {
		return fmt.Errorf("failed to marshal trail: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(trail.ID), data, s.ttl)

	// Index score = expiry time, so List can lazily prune expired entries.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = indexHorizon
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: trail.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save trail to redis: %w", err)
	}
	return nil
}

// Load retrieves a trail by id.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trail, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrTrailNotFound
		}
		return nil, fmt.Errorf("failed to get trail from redis: %w", err)
	}

	var trail domain.Trail
	if err := json.Unmarshal([]byte(val), &trail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trail: %w", err)
	}
	return &trail, nil
}

// Delete removes the trail and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored trail ids, lazily pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired trails: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list trails: %w", err)
	}
	return ids, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
