package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ratio1/limelight_sdk_go/internal/devseed"
	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
	"github.com/Ratio1/limelight_sdk_go/pkg/table"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/httpstore"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/mock"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/natsstore"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/redisstore"
)

// Runtime bundles the resolved backend and the accessors bound to it.
type Runtime struct {
	Mode      string
	Store     table.Store
	Handle    *table.Handle
	Limelight *limelight.Advanced

	closeFn func() error
}

// Close releases the backend connection, if any.
func (r *Runtime) Close() error {
	if r == nil || r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// Open builds the backend selected by cfg. The context bounds connection
// checks performed while opening.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mode, err := cfg.ResolveMode()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Mode: mode}
	switch mode {
	case ModeHTTP:
		store, err := httpstore.New(cfg.HTTPURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: init HTTP store: %w", err)
		}
		rt.Store = store
	case ModeRedis:
		store, err := redisstore.New(redisstore.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: init redis store: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		rt.Store = store
		rt.closeFn = store.Close
	case ModeNATS:
		store, err := natsstore.New(natsstore.Options{
			URL:           cfg.NATSURL,
			CreateBuckets: cfg.NATSCreateBucket,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: init nats store: %w", err)
		}
		rt.Store = store
		rt.closeFn = store.Close
	default:
		store, err := newMockStore(cfg.MockSeed)
		if err != nil {
			return nil, err
		}
		rt.Store = store
	}

	rt.Handle = table.Open(rt.Store, cfg.Table,
		table.WithTimeout(cfg.Timeout),
		table.WithLogger(logger.With(zap.String("mode", mode))),
	)
	rt.Limelight = limelight.NewAdvanced(rt.Handle)
	logger.Debug("table runtime ready", zap.String("mode", mode), zap.String("table", rt.Handle.Name()))
	return rt, nil
}

// NewFromEnv is Open with a Config read from LIMELIGHT_* variables.
func NewFromEnv(ctx context.Context, logger *zap.Logger) (*Runtime, error) {
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg, logger)
}

func newMockStore(seedPath string) (*mock.Mock, error) {
	store := mock.New()
	if seedPath == "" {
		return store, nil
	}
	entries, err := devseed.LoadTableSeed(seedPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load mock seed: %w", err)
	}
	if err := store.Seed(entries); err != nil {
		return nil, fmt.Errorf("bootstrap: apply mock seed: %w", err)
	}
	return store, nil
}
