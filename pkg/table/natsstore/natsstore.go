// Package natsstore keeps each table in a NATS JetStream key/value bucket of
// the same name. Values are stored as decimal strings.
package natsstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// Options configures the NATS connection.
type Options struct {
	URL string
	// CreateBuckets creates a missing bucket on first use instead of
	// failing. Tables published by a bridge normally exist already.
	CreateBuckets bool
	// ConnectTimeout bounds the initial dial.
	ConnectTimeout time.Duration
}

// Store is a table.Store backed by JetStream key/value buckets.
type Store struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	create bool
	owned  bool

	mu      sync.Mutex
	buckets map[string]nats.KeyValue
}

var _ table.Store = (*Store)(nil)

// New connects to the NATS server at opts.URL.
func New(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New("natsstore: URL is required")
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	nc, err := nats.Connect(opts.URL, nats.Name("limelight_sdk_go"), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("natsstore: connect: %w", err)
	}
	s, err := NewWithConn(nc, opts.CreateBuckets)
	if err != nil {
		nc.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewWithConn uses an existing connection. Close leaves it open.
func NewWithConn(nc *nats.Conn, createBuckets bool) (*Store, error) {
	if nc == nil {
		return nil, errors.New("natsstore: connection is nil")
	}
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("natsstore: init JetStream: %w", err)
	}
	return &Store{
		nc:      nc,
		js:      js,
		create:  createBuckets,
		buckets: make(map[string]nats.KeyValue),
	}, nil
}

// Close drains the connection if New created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.nc.Drain()
}

func (s *Store) bucket(tableName string) (nats.KeyValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kv, ok := s.buckets[tableName]; ok {
		return kv, nil
	}
	kv, err := s.js.KeyValue(tableName)
	if errors.Is(err, nats.ErrBucketNotFound) && s.create {
		kv, err = s.js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:  tableName,
			History: 1,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("natsstore: open bucket %q: %w", tableName, err)
	}
	s.buckets[tableName] = kv
	return kv, nil
}

// Lookup implements table.Store.
func (s *Store) Lookup(ctx context.Context, tableName, key string) (float64, bool, error) {
	if err := table.Validate(tableName, key); err != nil {
		return 0, false, err
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	kv, err := s.bucket(tableName)
	if err != nil {
		return 0, false, err
	}
	entry, err := kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("natsstore: get %s/%s: %w", tableName, key, err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(entry.Value())), 64)
	if err != nil {
		return 0, false, fmt.Errorf("natsstore: decode %s/%s: %w", tableName, key, err)
	}
	return value, true, nil
}

// Publish implements table.Store.
func (s *Store) Publish(ctx context.Context, tableName, key string, value float64) error {
	if err := table.Validate(tableName, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	kv, err := s.bucket(tableName)
	if err != nil {
		return err
	}
	if _, err := kv.Put(key, []byte(strconv.FormatFloat(value, 'g', -1, 64))); err != nil {
		return fmt.Errorf("natsstore: put %s/%s: %w", tableName, key, err)
	}
	return nil
}

// Keys implements table.Store.
func (s *Store) Keys(ctx context.Context, tableName string) ([]string, error) {
	if err := table.ValidateTable(tableName); err != nil {
		return nil, err
	}
	kv, err := s.bucket(tableName)
	if err != nil {
		return nil, err
	}
	keys, err := kv.Keys(nats.Context(ctx))
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("natsstore: keys %s: %w", tableName, err)
	}
	sort.Strings(keys)
	return keys, nil
}
