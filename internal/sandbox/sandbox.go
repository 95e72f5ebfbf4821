// Package sandbox serves the httpstore bridge protocol from any table.Store,
// usually an in-memory mock, so HTTP mode can be exercised without a robot.
package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// FailConfig injects failures into a share of requests.
type FailConfig struct {
	Rate float64
	Code int
}

// Options tunes the handler.
type Options struct {
	Latency time.Duration
	Fail    FailConfig
	Logger  *zap.Logger
	// Float returns values in [0,1) for failure injection. Defaults to math/rand.
	Float func() float64
}

// NewHandler returns the /get, /set and /get_status endpoints for store.
func NewHandler(store table.Store, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Float == nil {
		opts.Float = rand.Float64
	}
	s := &server{store: store, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/get", s.withMiddleware(s.handleGet))
	mux.HandleFunc("/set", s.withMiddleware(s.handleSet))
	mux.HandleFunc("/get_status", s.withMiddleware(s.handleStatus))
	return mux
}

type server struct {
	store table.Store
	opts  Options
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			s.opts.Logger.Info("sandbox request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("elapsed", time.Since(start)),
			)
		}()

		if s.opts.Latency > 0 {
			select {
			case <-time.After(s.opts.Latency):
			case <-r.Context().Done():
				rec.status = http.StatusServiceUnavailable
				return
			}
		}
		if s.opts.Fail.Rate > 0 && s.opts.Float() < s.opts.Fail.Rate {
			status := s.opts.Fail.Code
			if status == 0 {
				status = http.StatusInternalServerError
			}
			http.Error(rec, "failure injected", status)
			return
		}
		next(rec, r)
	}
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	value, ok, err := s.store.Lookup(r.Context(), q.Get("table"), q.Get("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeResult(w, nil)
		return
	}
	writeResult(w, value)
}

func (s *server) handleSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Table string   `json:"table"`
		Key   string   `json:"key"`
		Value *float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Value == nil {
		http.Error(w, "value is required", http.StatusBadRequest)
		return
	}
	if err := s.store.Publish(r.Context(), payload.Table, payload.Key, *payload.Value); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, true)
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	keys, err := s.store.Keys(r.Context(), r.URL.Query().Get("table"))
	if err != nil {
		writeError(w, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeResult(w, map[string]any{"keys": keys})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, table.ErrTableRequired) || errors.Is(err, table.ErrKeyRequired) {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"result": result}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ParseFailConfig parses "rate=<float>,code=<httpStatus>". An empty string
// disables injection.
func ParseFailConfig(raw string) (FailConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return FailConfig{}, nil
	}
	cfg := FailConfig{Code: http.StatusInternalServerError}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyVal := strings.SplitN(part, "=", 2)
		if len(keyVal) != 2 {
			return FailConfig{}, fmt.Errorf("sandbox: invalid fail segment %q", part)
		}
		val := strings.TrimSpace(keyVal[1])
		switch strings.TrimSpace(keyVal[0]) {
		case "rate":
			rate, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return FailConfig{}, fmt.Errorf("sandbox: fail rate: %w", err)
			}
			if rate < 0 || rate > 1 {
				return FailConfig{}, fmt.Errorf("sandbox: fail rate %v outside [0,1]", rate)
			}
			cfg.Rate = rate
		case "code":
			code, err := strconv.Atoi(val)
			if err != nil {
				return FailConfig{}, fmt.Errorf("sandbox: fail code: %w", err)
			}
			cfg.Code = code
		default:
			return FailConfig{}, fmt.Errorf("sandbox: unknown fail key %q", keyVal[0])
		}
	}
	return cfg, nil
}
