// Package httpstore reads and writes table entries through an HTTP bridge.
//
// The bridge exposes three endpoints, all answering with a {"result": ...}
// envelope:
//
//	GET  /get?table=<table>&key=<key>      -> {"result": 42.5} or {"result": null}
//	POST /set {"table","key","value"}      -> {"result": true}
//	GET  /get_status?table=<table>         -> {"result": {"keys": ["ta", "tx"]}}
//
// limelightctl sandbox serves the same API from an in-memory store.
package httpstore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/Ratio1/limelight_sdk_go/internal/httpx"
	"github.com/Ratio1/limelight_sdk_go/internal/tableapi"
	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// Store is a table.Store backed by an HTTP bridge.
type Store struct {
	client *httpx.Client
}

var _ table.Store = (*Store)(nil)

// New constructs a Store bound to the provided base URL.
func New(baseURL string, opts ...httpx.Option) (*Store, error) {
	cl, err := httpx.NewClient(baseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("httpstore: %w", err)
	}
	return NewWithHTTPClient(cl), nil
}

// NewWithHTTPClient wraps an existing httpx.Client.
func NewWithHTTPClient(client *httpx.Client) *Store {
	return &Store{client: client}
}

// Lookup implements table.Store.
func (s *Store) Lookup(ctx context.Context, tableName, key string) (float64, bool, error) {
	if err := table.Validate(tableName, key); err != nil {
		return 0, false, err
	}
	if s == nil || s.client == nil {
		return 0, false, fmt.Errorf("httpstore: client is nil")
	}
	resp, err := s.client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "get",
		Query:  url.Values{"table": {tableName}, "key": {key}},
	})
	if err != nil {
		return 0, false, fmt.Errorf("httpstore: get %s/%s: %w", tableName, key, err)
	}
	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return 0, false, fmt.Errorf("httpstore: read get response: %w", err)
	}
	value, ok, err := tableapi.DecodeNumber(data)
	if err != nil {
		return 0, false, fmt.Errorf("httpstore: decode %s/%s: %w", tableName, key, err)
	}
	return value, ok, nil
}

// Publish implements table.Store.
func (s *Store) Publish(ctx context.Context, tableName, key string, value float64) error {
	if err := table.Validate(tableName, key); err != nil {
		return err
	}
	if s == nil || s.client == nil {
		return fmt.Errorf("httpstore: client is nil")
	}
	body, err := httpx.JSONBody(map[string]any{
		"table": tableName,
		"key":   key,
		"value": value,
	})
	if err != nil {
		return fmt.Errorf("httpstore: encode set payload: %w", err)
	}
	resp, err := s.client.Do(ctx, &httpx.Request{
		Method: http.MethodPost,
		Path:   "set",
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("httpstore: set %s/%s: %w", tableName, key, err)
	}
	_ = resp.Body.Close()
	return nil
}

// Keys implements table.Store.
func (s *Store) Keys(ctx context.Context, tableName string) ([]string, error) {
	if err := table.ValidateTable(tableName); err != nil {
		return nil, err
	}
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("httpstore: client is nil")
	}
	resp, err := s.client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   "get_status",
		Query:  url.Values{"table": {tableName}},
	})
	if err != nil {
		return nil, fmt.Errorf("httpstore: get_status %s: %w", tableName, err)
	}
	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpstore: read get_status response: %w", err)
	}
	var payload struct {
		Keys []string `json:"keys"`
	}
	if err := tableapi.DecodeResult(data, &payload); err != nil {
		return nil, fmt.Errorf("httpstore: decode get_status response: %w", err)
	}
	sort.Strings(payload.Keys)
	return payload.Keys, nil
}
