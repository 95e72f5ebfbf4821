package sandbox_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ratio1/limelight_sdk_go/internal/httpx"
	"github.com/Ratio1/limelight_sdk_go/internal/sandbox"
	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
	"github.com/Ratio1/limelight_sdk_go/pkg/table"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/httpstore"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/mock"
)

func newSandbox(t *testing.T, opts sandbox.Options) (*httptest.Server, *mock.Mock) {
	t.Helper()
	store := mock.New()
	srv := httptest.NewServer(sandbox.NewHandler(store, opts))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestRoundTripThroughHTTPStore(t *testing.T) {
	srv, store := newSandbox(t, sandbox.Options{})
	store.Set("limelight", "tx", -7.25)

	client, err := httpstore.New(srv.URL)
	require.NoError(t, err)
	ll := limelight.NewAdvanced(table.Open(client, ""))

	assert.Equal(t, -7.25, ll.HorizontalOffset())
	assert.Equal(t, 0.0, ll.TargetArea(), "unset entries read as zero")

	require.NoError(t, ll.SetPipeline(4))
	ll.SetStreamMode(limelight.StreamPiPSecondary)
	value, ok := store.Get("limelight", "pipeline")
	require.True(t, ok)
	assert.Equal(t, 4.0, value)
	value, _ = store.Get("limelight", "stream")
	assert.Equal(t, 2.0, value)

	store.Set("limelight", "tx1", 0.5)
	raw, err := ll.RawScreenspaceX(1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, raw)

	keys, err := client.Keys(context.Background(), "limelight")
	require.NoError(t, err)
	assert.Equal(t, []string{"pipeline", "stream", "tx", "tx1"}, keys)
}

func TestEmptyTableListsNoKeys(t *testing.T) {
	srv, _ := newSandbox(t, sandbox.Options{})
	resp, err := http.Get(srv.URL + "/get_status?table=limelight")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"result":{"keys":[]}}`, string(body))
}

func TestBadRequests(t *testing.T) {
	srv, _ := newSandbox(t, sandbox.Options{})

	resp, err := http.Get(srv.URL + "/get?table=limelight")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/set", "application/json", strings.NewReader(`{"table":"limelight","key":"tx"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/set")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestFailureInjection(t *testing.T) {
	srv, _ := newSandbox(t, sandbox.Options{
		Fail:  sandbox.FailConfig{Rate: 0.5, Code: http.StatusTeapot},
		Float: func() float64 { return 0.1 },
	})
	client, err := httpstore.New(srv.URL)
	require.NoError(t, err)

	_, _, err = client.Lookup(context.Background(), "limelight", "tx")
	var httpErr *httpx.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTeapot, httpErr.StatusCode)
}

func TestRequestsAreLoggedWithID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv, _ := newSandbox(t, sandbox.Options{Logger: zap.New(core)})

	resp, err := http.Get(srv.URL + "/get?table=limelight&key=tv")
	require.NoError(t, err)
	resp.Body.Close()
	id := resp.Header.Get(sandbox.RequestIDHeader)
	assert.NotEmpty(t, id)

	// The entry is written after the response is flushed.
	require.Eventually(t, func() bool {
		return logs.FilterMessage("sandbox request").Len() == 1
	}, time.Second, 10*time.Millisecond)
	entries := logs.FilterMessage("sandbox request").All()
	fields := entries[0].ContextMap()
	assert.Equal(t, id, fields["request_id"])
	assert.Equal(t, "/get", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestParseFailConfig(t *testing.T) {
	cfg, err := sandbox.ParseFailConfig("")
	require.NoError(t, err)
	assert.Zero(t, cfg)

	cfg, err = sandbox.ParseFailConfig("rate=0.25")
	require.NoError(t, err)
	assert.Equal(t, sandbox.FailConfig{Rate: 0.25, Code: http.StatusInternalServerError}, cfg)

	cfg, err = sandbox.ParseFailConfig(" rate=1 , code=503 ")
	require.NoError(t, err)
	assert.Equal(t, sandbox.FailConfig{Rate: 1, Code: 503}, cfg)

	for _, raw := range []string{"rate", "rate=abc", "rate=2", "code=x", "speed=1"} {
		_, err := sandbox.ParseFailConfig(raw)
		assert.Error(t, err, raw)
	}
}
