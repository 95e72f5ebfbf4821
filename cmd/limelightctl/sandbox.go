package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ratio1/limelight_sdk_go/internal/devseed"
	"github.com/Ratio1/limelight_sdk_go/internal/sandbox"
	"github.com/Ratio1/limelight_sdk_go/pkg/bootstrap"
	"github.com/Ratio1/limelight_sdk_go/pkg/table/mock"
)

type sandboxFlags struct {
	addr    string
	seed    string
	latency time.Duration
	fail    string
}

func newSandboxCmd(a *app) *cobra.Command {
	var f sandboxFlags
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve the HTTP bridge API from an in-memory table",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runSandbox(ctx, f)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", ":8787", "listen address")
	cmd.Flags().StringVar(&f.seed, "seed", "", "JSON or YAML seed file")
	cmd.Flags().DurationVar(&f.latency, "latency", 0, "artificial latency per request")
	cmd.Flags().StringVar(&f.fail, "fail", "", "failure injection (rate=<float>,code=<httpStatus>)")
	return cmd
}

func (a *app) runSandbox(ctx context.Context, f sandboxFlags) error {
	if _, err := a.loadConfig(); err != nil {
		return err
	}
	failCfg, err := sandbox.ParseFailConfig(f.fail)
	if err != nil {
		return &usageError{err: err}
	}

	store := mock.New()
	if f.seed != "" {
		entries, err := devseed.LoadTableSeed(f.seed)
		if err != nil {
			return userErr("load seed: %w", err)
		}
		if err := store.Seed(entries); err != nil {
			return userErr("apply seed: %w", err)
		}
	}

	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", f.addr, err)
	}
	server := &http.Server{
		Handler: sandbox.NewHandler(store, sandbox.Options{
			Latency: f.latency,
			Fail:    failCfg,
			Logger:  a.logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.logger.Info("sandbox listening", zap.String("addr", ln.Addr().String()))
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "export %s_MODE=%s\n", bootstrap.EnvPrefix, bootstrap.ModeHTTP)
	fmt.Fprintf(a.out, "export %s_HTTP_URL=http://%s\n", bootstrap.EnvPrefix, displayHost(ln.Addr().String()))
	fmt.Fprintln(a.out)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// displayHost replaces an unspecified listen host with localhost.
func displayHost(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
