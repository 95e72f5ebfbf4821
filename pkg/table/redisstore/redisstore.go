// Package redisstore keeps each table in a Redis hash named
// <KeyPrefix><table>, with entries stored as decimal strings. A bridge
// mirroring the camera's table into Redis can then be read with HGET/HSET.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// DefaultKeyPrefix is prepended to table names when Options.KeyPrefix is unset.
const DefaultKeyPrefix = "nt:"

// Options configures the Redis connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Store is a table.Store backed by Redis hashes.
type Store struct {
	client redis.UniversalClient
	prefix string
	owned  bool
}

var _ table.Store = (*Store)(nil)

// New connects to a standalone Redis server. The connection is established
// lazily on first use.
func New(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redisstore: address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	s := NewWithClient(client, opts.KeyPrefix)
	s.owned = true
	return s, nil
}

// NewWithClient wraps an existing client (standalone, cluster or sentinel).
// Close leaves a client passed here open.
func NewWithClient(client redis.UniversalClient, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: keyPrefix}
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redisstore: ping: %w", err)
	}
	return nil
}

// Close releases the client if New created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *Store) hashKey(tableName string) string {
	return s.prefix + tableName
}

// Lookup implements table.Store.
func (s *Store) Lookup(ctx context.Context, tableName, key string) (float64, bool, error) {
	if err := table.Validate(tableName, key); err != nil {
		return 0, false, err
	}
	raw, err := s.client.HGet(ctx, s.hashKey(tableName), key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redisstore: hget %s/%s: %w", tableName, key, err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false, fmt.Errorf("redisstore: decode %s/%s: %w", tableName, key, err)
	}
	return value, true, nil
}

// Publish implements table.Store.
func (s *Store) Publish(ctx context.Context, tableName, key string, value float64) error {
	if err := table.Validate(tableName, key); err != nil {
		return err
	}
	encoded := strconv.FormatFloat(value, 'g', -1, 64)
	if err := s.client.HSet(ctx, s.hashKey(tableName), key, encoded).Err(); err != nil {
		return fmt.Errorf("redisstore: hset %s/%s: %w", tableName, key, err)
	}
	return nil
}

// Keys implements table.Store.
func (s *Store) Keys(ctx context.Context, tableName string) ([]string, error) {
	if err := table.ValidateTable(tableName); err != nil {
		return nil, err
	}
	keys, err := s.client.HKeys(ctx, s.hashKey(tableName)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: hkeys %s: %w", tableName, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)
	return keys, nil
}
