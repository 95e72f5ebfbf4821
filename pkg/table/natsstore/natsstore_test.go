package natsstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// newTestStore connects to a local JetStream-enabled server, skipping when
// none is reachable. Each test gets its own bucket, deleted afterwards.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	nc, err := nats.Connect(nats.DefaultURL, nats.Timeout(time.Second))
	if err != nil {
		t.Skip("NATS is not available for testing:", err)
	}
	store, err := NewWithConn(nc, true)
	if err != nil {
		nc.Close()
		t.Skip("JetStream is not available for testing:", err)
	}
	if _, err := store.js.AccountInfo(); err != nil {
		nc.Close()
		t.Skip("JetStream is not enabled:", err)
	}

	bucket := fmt.Sprintf("limelight-test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_ = store.js.DeleteKeyValue(bucket)
		nc.Close()
	})
	return store, bucket
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = NewWithConn(nil, false)
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	store, bucket := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Lookup(ctx, bucket, "tv")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := store.Keys(ctx, bucket)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.Publish(ctx, bucket, "tx", 12.5))
	require.NoError(t, store.Publish(ctx, bucket, "ta", 42.5))

	value, ok, err := store.Lookup(ctx, bucket, "ta")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42.5, value)

	keys, err = store.Keys(ctx, bucket)
	require.NoError(t, err)
	assert.Equal(t, []string{"ta", "tx"}, keys)
}

func TestMissingBucketWithoutCreate(t *testing.T) {
	store, bucket := newTestStore(t)
	store.create = false

	_, _, err := store.Lookup(context.Background(), bucket, "tx")
	assert.ErrorIs(t, err, nats.ErrBucketNotFound)
}

func TestStoreBacksAdvanced(t *testing.T) {
	store, bucket := newTestStore(t)
	require.NoError(t, store.Publish(context.Background(), bucket, "cy0", -0.5))

	adv := limelight.NewAdvanced(table.Open(store, bucket))
	got, err := adv.RawCrosshairY(0)
	require.NoError(t, err)
	assert.Equal(t, -0.5, got)

	adv.SetCameraMode(limelight.CameraDriver)
	assert.Equal(t, 1.0, adv.GetNumber("camMode"))
}

func TestCanceledContext(t *testing.T) {
	store := &Store{buckets: map[string]nats.KeyValue{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Lookup(ctx, "limelight", "tx")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Publish(ctx, "limelight", "tx", 1), context.Canceled)
}
