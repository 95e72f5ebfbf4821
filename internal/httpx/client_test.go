package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
)

func TestNewClientValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "://not-a-url", "localhost"} {
		if _, err := NewClient(raw); err == nil {
			t.Fatalf("expected error for base URL %q", raw)
		}
	}
}

func TestDoResolvesPathQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "tx" {
			t.Errorf("unexpected key %q", got)
		}
		if got := r.Header.Get("X-Table"); got != "limelight" {
			t.Errorf("default header missing, got %q", got)
		}
		if got := r.Header.Get("X-Trace"); got != "1" {
			t.Errorf("request header missing, got %q", got)
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/api/", WithHeaders(http.Header{"X-Table": {"limelight"}}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "get",
		Query:  url.Values{"key": {"tx"}},
		Header: http.Header{"X-Trace": {"1"}},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	body, err := ReadAllAndClose(resp.Body)
	if err != nil || string(body) != "ok" {
		t.Fatalf("unexpected body %q err=%v", body, err)
	}
}

func TestDoReturnsHTTPErrorWithoutRetrying(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":"down"}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/get"})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", httpErr.StatusCode)
	}
	if m, ok := httpErr.JSON.(map[string]any); !ok || m["error"] != "down" {
		t.Fatalf("unexpected JSON payload %#v", httpErr.JSON)
	}
	if httpErr.Method != http.MethodGet || !strings.HasSuffix(httpErr.URL, "/get") {
		t.Fatalf("unexpected request info %s %s", httpErr.Method, httpErr.URL)
	}
	if !httpErr.Temporary() {
		t.Fatalf("503 should be temporary")
	}
	if !strings.Contains(httpErr.Error(), "status 503") {
		t.Fatalf("unexpected message %q", httpErr.Error())
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestDoRejectsIncompleteRequest(t *testing.T) {
	c, err := NewClient("http://localhost:1")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Do(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil request")
	}
	if _, err := c.Do(context.Background(), &Request{Path: "/get"}); err == nil {
		t.Fatalf("expected error for missing method")
	}
}

func TestJSONBody(t *testing.T) {
	data, err := JSONBody(map[string]any{"key": "a<b", "value": 1.5})
	if err != nil {
		t.Fatalf("JSONBody: %v", err)
	}
	if string(data) != `{"key":"a<b","value":1.5}` {
		t.Fatalf("unexpected encoding %s", data)
	}
}
