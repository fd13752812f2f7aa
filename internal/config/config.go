// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads tokenkeeper configuration.
//
// Values are layered with increasing precedence: flag defaults, the YAML
// config file, flags set on the command line, and finally the environment
// (TOKENKEEPER_* or the bare variable name, e.g. SIGNING_KEY_CURRENT).
// A .env file in the working directory is read into the environment first
// when present.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/tokenkeeper/internal/lifecycle"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TOKENKEEPER"

// Reset token backends.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Default values applied through RegisterFlags.
const (
	DefaultAccessTTL       = 15 * time.Minute
	DefaultRefreshTTL      = 720 * time.Hour
	DefaultResetTTL        = time.Hour
	DefaultRefreshInterval = 24 * time.Hour
	DefaultResetInterval   = 6 * time.Hour
	DefaultSweepTimeout    = time.Minute
	DefaultMetricsAddr     = "127.0.0.1:9100"
	DefaultLogFormat       = "json"
	DefaultLogLevel        = "info"
)

// Config is the full tokenkeeper configuration.
type Config struct {
	Signing  SigningConfig  `koanf:"signing"`
	Tokens   TokensConfig   `koanf:"tokens"`
	Sweep    SweepConfig    `koanf:"sweep"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Reset    ResetConfig    `koanf:"reset"`
	Log      LogConfig      `koanf:"log"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// SigningConfig holds the base64 signing keys and token claims.
// Keys have no default.
type SigningConfig struct {
	Current  string `koanf:"current"`
	Previous string `koanf:"previous"`
	Issuer   string `koanf:"issuer"`
	Audience string `koanf:"audience"`
}

// TokensConfig holds token lifetimes.
type TokensConfig struct {
	AccessTTL  time.Duration `koanf:"access_ttl"`
	RefreshTTL time.Duration `koanf:"refresh_ttl"`
	ResetTTL   time.Duration `koanf:"reset_ttl"`
}

// SweepConfig holds expired record purge intervals.
type SweepConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	ResetInterval   time.Duration `koanf:"reset_interval"`
	Timeout         time.Duration `koanf:"timeout"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL      string `koanf:"url"`
	MaxConns int32  `koanf:"max_conns"`
}

// RedisConfig configures the optional Redis reset token backend.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// ResetConfig selects the reset token backend.
type ResetConfig struct {
	Backend string `koanf:"backend"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// MetricsConfig configures the observability server. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// envOverlay is the environment surface. Each tag is read as
// TOKENKEEPER_<TAG>, falling back to <TAG>.
type envOverlay struct {
	SigningCurrent  string        `envconfig:"SIGNING_KEY_CURRENT"`
	SigningPrevious string        `envconfig:"SIGNING_KEY_PREVIOUS"`
	Issuer          string        `envconfig:"TOKEN_ISSUER"`
	Audience        string        `envconfig:"TOKEN_AUDIENCE"`
	AccessTTL       time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	RefreshTTL      time.Duration `envconfig:"REFRESH_TOKEN_TTL"`
	ResetTTL        time.Duration `envconfig:"RESET_TOKEN_TTL"`
	RefreshInterval time.Duration `envconfig:"REFRESH_SWEEP_INTERVAL"`
	ResetInterval   time.Duration `envconfig:"RESET_SWEEP_INTERVAL"`
	SweepTimeout    time.Duration `envconfig:"SWEEP_TIMEOUT"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	MaxConns        int32         `envconfig:"DATABASE_MAX_CONNS"`
	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	RedisDB         int           `envconfig:"REDIS_DB"`
	ResetBackend    string        `envconfig:"RESET_BACKEND"`
	LogFormat       string        `envconfig:"LOG_FORMAT"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR"`
}

// RegisterFlags adds every configuration flag with its default to fs.
// Flag names are the koanf keys with dots, e.g. --tokens.access_ttl.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("signing.issuer", "", "access token issuer claim")
	fs.String("signing.audience", "", "access token audience claim")
	fs.Duration("tokens.access_ttl", DefaultAccessTTL, "access token lifetime")
	fs.Duration("tokens.refresh_ttl", DefaultRefreshTTL, "refresh token lifetime")
	fs.Duration("tokens.reset_ttl", DefaultResetTTL, "reset token lifetime")
	fs.Duration("sweep.refresh_interval", DefaultRefreshInterval, "expired refresh token purge interval")
	fs.Duration("sweep.reset_interval", DefaultResetInterval, "expired reset token purge interval")
	fs.Duration("sweep.timeout", DefaultSweepTimeout, "upper bound for a single purge run")
	fs.String("database.url", "", "PostgreSQL connection URL")
	fs.Int32("database.max_conns", 0, "maximum pool connections (0 = driver default)")
	fs.String("redis.addr", "", "Redis address for the redis reset backend")
	fs.Int("redis.db", 0, "Redis database number")
	fs.String("reset.backend", BackendPostgres, "reset token backend (postgres or redis)")
	fs.String("log.format", DefaultLogFormat, "log format (json or text)")
	fs.String("log.level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("metrics.addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
}

// Load builds a Config from flags, the optional YAML file at path, and the
// environment. fs may be nil, in which case the registered defaults are used.
// Load does not validate; call Validate on the result.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	if fs == nil {
		fs = pflag.NewFlagSet("config", pflag.ContinueOnError)
		RegisterFlags(fs)
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
		if err != nil {
			return Config{}, oops.Code("CONFIG_FILE_INVALID").With("path", path).Wrap(err)
		}
		if err := ValidateFile(data); err != nil {
			return Config{}, oops.With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_INVALID").With("path", path).Wrap(err)
		}
	}
	// Unchanged flags only fill keys the file left unset.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, oops.Code("CONFIG_FLAGS_INVALID").Wrap(err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, oops.Code("CONFIG_DECODE_FAILED").Wrap(err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return oops.Code("CONFIG_DOTENV_INVALID").With("path", path).Wrap(err)
}

func applyEnv(cfg *Config) error {
	env := envOverlay{
		SigningCurrent:  cfg.Signing.Current,
		SigningPrevious: cfg.Signing.Previous,
		Issuer:          cfg.Signing.Issuer,
		Audience:        cfg.Signing.Audience,
		AccessTTL:       cfg.Tokens.AccessTTL,
		RefreshTTL:      cfg.Tokens.RefreshTTL,
		ResetTTL:        cfg.Tokens.ResetTTL,
		RefreshInterval: cfg.Sweep.RefreshInterval,
		ResetInterval:   cfg.Sweep.ResetInterval,
		SweepTimeout:    cfg.Sweep.Timeout,
		DatabaseURL:     cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		RedisAddr:       cfg.Redis.Addr,
		RedisPassword:   cfg.Redis.Password,
		RedisDB:         cfg.Redis.DB,
		ResetBackend:    cfg.Reset.Backend,
		LogFormat:       cfg.Log.Format,
		LogLevel:        cfg.Log.Level,
		MetricsAddr:     cfg.Metrics.Addr,
	}
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return oops.Code("CONFIG_ENV_INVALID").Wrap(err)
	}

	cfg.Signing = SigningConfig{
		Current:  env.SigningCurrent,
		Previous: env.SigningPrevious,
		Issuer:   env.Issuer,
		Audience: env.Audience,
	}
	cfg.Tokens = TokensConfig{AccessTTL: env.AccessTTL, RefreshTTL: env.RefreshTTL, ResetTTL: env.ResetTTL}
	cfg.Sweep = SweepConfig{RefreshInterval: env.RefreshInterval, ResetInterval: env.ResetInterval, Timeout: env.SweepTimeout}
	cfg.Database = DatabaseConfig{URL: env.DatabaseURL, MaxConns: env.MaxConns}
	cfg.Redis = RedisConfig{Addr: env.RedisAddr, Password: env.RedisPassword, DB: env.RedisDB}
	cfg.Reset.Backend = env.ResetBackend
	cfg.Log = LogConfig{Format: env.LogFormat, Level: env.LogLevel}
	cfg.Metrics.Addr = env.MetricsAddr
	return nil
}

// Validate checks lifetimes, intervals and enums. Signing keys are checked
// separately by auth.ValidateKeyMaterial.
func (c Config) Validate() error {
	durations := []struct {
		key   string
		value time.Duration
	}{
		{"tokens.access_ttl", c.Tokens.AccessTTL},
		{"tokens.refresh_ttl", c.Tokens.RefreshTTL},
		{"tokens.reset_ttl", c.Tokens.ResetTTL},
		{"sweep.refresh_interval", c.Sweep.RefreshInterval},
		{"sweep.reset_interval", c.Sweep.ResetInterval},
		{"sweep.timeout", c.Sweep.Timeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return oops.Code("CONFIG_INVALID").
				With("key", d.key).
				Errorf("%s must be positive, got %s", d.key, d.value)
		}
	}

	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "database.url").
			Hint("set DATABASE_URL or database.url in the config file").
			Errorf("database url is required")
	}
	if c.Database.MaxConns < 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "database.max_conns").
			Errorf("database.max_conns must not be negative, got %d", c.Database.MaxConns)
	}

	switch c.Reset.Backend {
	case BackendPostgres:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return oops.Code("CONFIG_INVALID").
				With("key", "redis.addr").
				Errorf("redis.addr is required when reset.backend is %q", BackendRedis)
		}
	default:
		return oops.Code("CONFIG_INVALID").
			With("key", "reset.backend").
			Errorf("reset.backend must be %q or %q, got %q", BackendPostgres, BackendRedis, c.Reset.Backend)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			With("key", "log.format").
			Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

// Lifecycle returns the sweeper configuration.
func (c Config) Lifecycle() lifecycle.Config {
	return lifecycle.Config{
		RefreshInterval: c.Sweep.RefreshInterval,
		ResetInterval:   c.Sweep.ResetInterval,
		Timeout:         c.Sweep.Timeout,
	}
}
