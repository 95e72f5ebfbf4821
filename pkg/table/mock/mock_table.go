// Package mock implements an in-memory table store. It backs the mock runtime
// mode and the sandbox, and doubles as a test fixture.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Ratio1/limelight_sdk_go/internal/devseed"
	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// Mock is a concurrency-safe table.Store kept in memory.
type Mock struct {
	mu     sync.RWMutex
	tables map[string]map[string]float64
}

var _ table.Store = (*Mock)(nil)

// New creates an empty mock store.
func New() *Mock {
	return &Mock{tables: make(map[string]map[string]float64)}
}

// Seed loads initial entries (typically decoded via devseed.LoadTableSeed).
func (m *Mock) Seed(entries []devseed.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if err := table.Validate(e.Table, e.Key); err != nil {
			return fmt.Errorf("mock table: seed entry %s/%s: %w", e.Table, e.Key, err)
		}
		m.bucket(e.Table)[e.Key] = e.Value
	}
	return nil
}

// Lookup implements table.Store.
func (m *Mock) Lookup(ctx context.Context, tableName, key string) (float64, bool, error) {
	if err := table.Validate(tableName, key); err != nil {
		return 0, false, err
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.tables[tableName][key]
	return value, ok, nil
}

// Publish implements table.Store.
func (m *Mock) Publish(ctx context.Context, tableName, key string, value float64) error {
	if err := table.Validate(tableName, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bucket(tableName)[key] = value
	return nil
}

// Keys implements table.Store.
func (m *Mock) Keys(ctx context.Context, tableName string) ([]string, error) {
	if err := table.ValidateTable(tableName); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	bucket := m.tables[tableName]
	if len(bucket) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(bucket))
	for key := range bucket {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Get returns the stored value without a context. Missing entries report false.
func (m *Mock) Get(tableName, key string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.tables[tableName][key]
	return value, ok
}

// Set stores value without validation or a context. Meant for tests and seeding.
func (m *Mock) Set(tableName, key string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucket(tableName)[key] = value
}

// Tables lists the table names holding at least one entry.
func (m *Mock) Tables() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name, bucket := range m.tables {
		if len(bucket) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// bucket returns the entries of tableName, creating them. Callers hold mu.
func (m *Mock) bucket(tableName string) map[string]float64 {
	b := m.tables[tableName]
	if b == nil {
		b = make(map[string]float64)
		m.tables[tableName] = b
	}
	return b
}
