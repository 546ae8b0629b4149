package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "portgraph:"

// noExpiry is the index score of documents saved without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.DocumentStore using Redis.
// Documents are kept as raw text under <prefix>doc:<name>; a sorted set at
// <prefix>index lists them, scored by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for documents.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock replaces time.Now for index scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + "doc:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save validates data and stores it with the configured TTL.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("document name cannot be empty")
	}
	if _, err := value.Parse(data, value.DetectFormat(data)); err != nil {
		return fmt.Errorf("invalid document %s: %w", name, err)
	}

	pipe := s.client.Pipeline()

	// 1. Save raw text with TTL (0 means no expiration).
	pipe.Set(ctx, s.key(name), data, s.ttl)

	// 2. Add to Index (ZSET), scored by expiry.
	score := float64(s.now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves and parses the document.
func (s *Store) Load(ctx context.Context, name string) (*value.Value, error) {
	raw, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return value.Parse(raw, value.DetectFormat(raw))
}

// Raw returns the stored document text unparsed.
func (s *Store) Raw(ctx context.Context, name string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return raw, nil
}

// Delete removes the document and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns live document names, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	// Lazy Cleanup: ZREMRANGEBYSCORE key -inf (now)
	now := float64(s.now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("(%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired documents: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
