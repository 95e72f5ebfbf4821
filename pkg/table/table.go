package table

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
)

// DefaultTimeout bounds each GetNumber/SetNumber call.
const DefaultTimeout = 2 * time.Second

var (
	// ErrTableRequired is returned when a Store call has an empty table name.
	ErrTableRequired = errors.New("table: table name is required")
	// ErrKeyRequired is returned when a Store call has an empty key.
	ErrKeyRequired = errors.New("table: key is required")
)

// Store is a backend holding numeric entries grouped in named tables.
type Store interface {
	// Lookup returns the value of key in table. ok is false when the entry
	// has never been published.
	Lookup(ctx context.Context, table, key string) (value float64, ok bool, err error)
	// Publish overwrites the value of key in table.
	Publish(ctx context.Context, table, key string, value float64) error
	// Keys lists the published keys of table in ascending order.
	Keys(ctx context.Context, table string) ([]string, error)
}

// ValidateTable checks a table name passed to a Store.
func ValidateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return ErrTableRequired
	}
	return nil
}

// Validate checks the table and key passed to Lookup or Publish.
func Validate(table, key string) error {
	if err := ValidateTable(table); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	return nil
}

// Option configures a Handle.
type Option func(*Handle)

// WithTimeout overrides the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(h *Handle) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger used for swallowed store errors.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handle) {
		if l != nil {
			h.logger = l
		}
	}
}

// Handle is one named table of a Store.
type Handle struct {
	store   Store
	name    string
	timeout time.Duration
	logger  *zap.Logger
}

var _ limelight.Table = (*Handle)(nil)

// Open binds store to the named table, or limelight.DefaultTableName when
// name is empty.
func Open(store Store, name string, opts ...Option) *Handle {
	if strings.TrimSpace(name) == "" {
		name = limelight.DefaultTableName
	}
	h := &Handle{
		store:   store,
		name:    name,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(zap.String("table", name))
	return h
}

// Name returns the table name.
func (h *Handle) Name() string { return h.name }

// GetNumber returns the published value of key, or 0 if it is unset or the
// store could not be read.
func (h *Handle) GetNumber(key string) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	value, ok, err := h.store.Lookup(ctx, h.name, key)
	if err != nil {
		h.logger.Warn("table read failed", zap.String("key", key), zap.Error(err))
		return 0
	}
	if !ok {
		return 0
	}
	return value
}

// SetNumber publishes value under key. Failures are logged and dropped.
func (h *Handle) SetNumber(key string, value float64) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.store.Publish(ctx, h.name, key, value); err != nil {
		h.logger.Warn("table write failed", zap.String("key", key), zap.Float64("value", value), zap.Error(err))
		return
	}
	h.logger.Debug("table write", zap.String("key", key), zap.Float64("value", value))
}

// Keys lists the keys currently published in the table.
func (h *Handle) Keys(ctx context.Context) ([]string, error) {
	return h.store.Keys(ctx, h.name)
}

// Opener opens Handles over a shared Store.
type Opener struct {
	store Store
	opts  []Option
}

var _ limelight.Opener = (*Opener)(nil)

// NewOpener returns an Opener whose handles share store and opts.
func NewOpener(store Store, opts ...Option) *Opener {
	return &Opener{store: store, opts: opts}
}

// Open implements limelight.Opener.
func (o *Opener) Open(name string) (limelight.Table, error) {
	if o == nil || o.store == nil {
		return nil, errors.New("table: store is nil")
	}
	return Open(o.store, name, o.opts...), nil
}
