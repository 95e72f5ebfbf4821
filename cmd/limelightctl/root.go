package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Ratio1/limelight_sdk_go/internal/logx"
	"github.com/Ratio1/limelight_sdk_go/pkg/bootstrap"
)

const (
	configFileName = "limelight"
	configFileType = "yaml"
)

// app carries state shared by every subcommand.
type app struct {
	out        io.Writer
	configFile string
	v          *viper.Viper
	logger     *zap.Logger

	// open builds the runtime; replaced in tests.
	open func(ctx context.Context, cfg bootstrap.Config, logger *zap.Logger) (*bootstrap.Runtime, error)
	rt   *bootstrap.Runtime
}

func newApp(out io.Writer) *app {
	return &app{
		out:    out,
		v:      viper.New(),
		logger: zap.NewNop(),
		open:   bootstrap.Open,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "limelightctl",
		Short:         "Inspect and control a Limelight camera table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./limelight.yaml when present)")
	flags.String("mode", "", "backend: auto, mock, http, redis or nats")
	flags.String("table", "", "table name (default: limelight)")
	flags.String("http-url", "", "HTTP bridge base URL")
	flags.String("redis-addr", "", "Redis address")
	flags.String("nats-url", "", "NATS server URL")
	flags.String("mock-seed", "", "JSON or YAML seed for the mock backend")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	for key, flag := range map[string]string{
		"mode":       "mode",
		"table":      "table",
		"http_url":   "http-url",
		"redis_addr": "redis-addr",
		"nats_url":   "nats-url",
		"mock_seed":  "mock-seed",
		"log_level":  "log-level",
		"log_format": "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newKeysCmd(a),
		newTargetsCmd(a),
		newRawCmd(a),
		newLEDCmd(a),
		newCameraCmd(a),
		newStreamCmd(a),
		newPipelineCmd(a),
		newSnapshotCmd(a),
		newSandboxCmd(a),
		newVersionCmd(a),
	)
	return root
}

// loadConfig resolves configuration: flags, then LIMELIGHT_* env, then the
// config file, then defaults.
func (a *app) loadConfig() (bootstrap.Config, error) {
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	} else {
		a.v.SetConfigName(configFileName)
		a.v.SetConfigType(configFileType)
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile != "" || !errors.As(err, &notFound) {
			return bootstrap.Config{}, userErr("read config: %w", err)
		}
	}

	cfg, err := bootstrap.LoadConfig(a.v)
	if err != nil {
		return bootstrap.Config{}, err
	}
	logger, err := logx.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return bootstrap.Config{}, userErr("%w", err)
	}
	a.logger = logger
	logx.SetGlobal(logger)
	return cfg, nil
}

// runtime opens the configured backend once per invocation.
func (a *app) runtime(ctx context.Context) (*bootstrap.Runtime, error) {
	if a.rt != nil {
		return a.rt, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := cfg.ResolveMode(); err != nil {
		return nil, &usageError{err: err}
	}
	rt, err := a.open(ctx, cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	a.rt = rt
	return rt, nil
}

// withRuntime adapts a runtime-using function to cobra's RunE and closes the
// backend afterwards.
func (a *app) withRuntime(fn func(cmd *cobra.Command, args []string, rt *bootstrap.Runtime) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rt, err := a.runtime(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := rt.Close(); err != nil {
				a.logger.Warn("close backend", zap.Error(err))
			}
			_ = a.logger.Sync()
			a.rt = nil
		}()
		return fn(cmd, args, rt)
	}
}

func (a *app) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}

// usageArgs wraps a cobra positional validator so its failures count as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := fn(cmd, a); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
