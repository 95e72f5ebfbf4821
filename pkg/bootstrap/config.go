package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
	"github.com/Ratio1/limelight_sdk_go/pkg/table"
)

// EnvPrefix is prepended to every configuration key when read from the
// environment.
const EnvPrefix = "LIMELIGHT"

// Runtime modes.
const (
	ModeAuto  = "auto"
	ModeMock  = "mock"
	ModeHTTP  = "http"
	ModeRedis = "redis"
	ModeNATS  = "nats"
)

// Config selects and configures a table backend.
type Config struct {
	Mode  string `mapstructure:"mode"`
	Table string `mapstructure:"table"`

	HTTPURL string `mapstructure:"http_url"`

	RedisAddr      string `mapstructure:"redis_addr"`
	RedisPassword  string `mapstructure:"redis_password"`
	RedisDB        int    `mapstructure:"redis_db"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`

	NATSURL          string `mapstructure:"nats_url"`
	NATSCreateBucket bool   `mapstructure:"nats_create_bucket"`

	MockSeed string `mapstructure:"mock_seed"`

	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
}

var configKeys = []string{
	"mode", "table", "http_url",
	"redis_addr", "redis_password", "redis_db", "redis_key_prefix",
	"nats_url", "nats_create_bucket", "mock_seed",
	"timeout", "log_level", "log_format",
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeAuto)
	v.SetDefault("table", limelight.DefaultTableName)
	v.SetDefault("redis_db", 0)
	v.SetDefault("timeout", table.DefaultTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// LoadConfig applies defaults, binds LIMELIGHT_* environment variables and
// decodes v into a Config. Values already set on v (flags, config file) keep
// their usual viper precedence.
func LoadConfig(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bootstrap: bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("bootstrap: decode config: %w", err)
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.HTTPURL = strings.TrimSpace(cfg.HTTPURL)
	cfg.RedisAddr = strings.TrimSpace(cfg.RedisAddr)
	cfg.NATSURL = strings.TrimSpace(cfg.NATSURL)
	cfg.MockSeed = strings.TrimSpace(cfg.MockSeed)
	return cfg, nil
}

// FromEnv loads a Config from the environment only.
func FromEnv() (Config, error) {
	return LoadConfig(viper.New())
}

// ResolveMode returns the concrete backend mode for cfg.
func (c Config) ResolveMode() (string, error) {
	switch c.Mode {
	case "", ModeAuto:
		switch {
		case c.HTTPURL != "":
			return ModeHTTP, nil
		case c.RedisAddr != "":
			return ModeRedis, nil
		case c.NATSURL != "":
			return ModeNATS, nil
		default:
			return ModeMock, nil
		}
	case ModeHTTP:
		if c.HTTPURL == "" {
			return "", fmt.Errorf("bootstrap: HTTP mode requires %s_HTTP_URL", EnvPrefix)
		}
		return ModeHTTP, nil
	case ModeRedis:
		if c.RedisAddr == "" {
			return "", fmt.Errorf("bootstrap: redis mode requires %s_REDIS_ADDR", EnvPrefix)
		}
		return ModeRedis, nil
	case ModeNATS:
		if c.NATSURL == "" {
			return "", fmt.Errorf("bootstrap: nats mode requires %s_NATS_URL", EnvPrefix)
		}
		return ModeNATS, nil
	case ModeMock:
		return ModeMock, nil
	default:
		return "", fmt.Errorf("bootstrap: unsupported %s_MODE value %q", EnvPrefix, c.Mode)
	}
}
