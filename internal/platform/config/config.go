package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WORKDAYS_ADDR.
const EnvPrefix = "WORKDAYS"

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// keyLen is the required length of decoded secrets.
const keyLen = 32

// Config errors
var (
	ErrUnknownEnv     = errors.New("env must be development or production")
	ErrInvalidKey     = errors.New("key must be 64 hex characters (32 bytes)")
	ErrMissingKey     = errors.New("key is required in production")
	ErrInvalidLimit   = errors.New("rate_limit must be positive")
	ErrInvalidLevel   = errors.New("log_level must be debug, info, warn or error")
	ErrInvalidAddress = errors.New("addr cannot be empty")
)

// Config is the runtime configuration of the server and CLI.
type Config struct {
	Addr           string   `mapstructure:"addr"`
	DBPath         string   `mapstructure:"db_path"`
	Env            string   `mapstructure:"env"`
	LogLevel       string   `mapstructure:"log_level"`
	CSRFKey        string   `mapstructure:"csrf_key"`
	FlashKey       string   `mapstructure:"flash_key"`
	RateLimit      int      `mapstructure:"rate_limit"` // requests per second per client
	SlowRequestMs  int      `mapstructure:"slow_request_ms"`
	SlowQueryMs    int      `mapstructure:"slow_query_ms"`
	TrustedOrigins []string `mapstructure:"trusted_origins"`

	// Decoded secrets, filled by Load.
	CSRFSecret  []byte `mapstructure:"-"`
	FlashSecret []byte `mapstructure:"-"`
}

var defaults = map[string]any{
	"addr":            ":8080",
	"db_path":         "workdays.db",
	"env":             EnvDevelopment,
	"log_level":       "info",
	"csrf_key":        "",
	"flash_key":       "",
	"rate_limit":      10,
	"slow_request_ms": 200,
	"slow_query_ms":   50,
	"trusted_origins": []string{"localhost:8080", "127.0.0.1:8080"},
}

// Load reads configuration from defaults, an optional file and WORKDAYS_* env vars,
// in increasing precedence.
// PRE: path is empty or names a file viper can read (yaml, json, toml, env)
// POST: returns a validated Config with secrets decoded or generated
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var err error
	if cfg.CSRFSecret, err = cfg.secret("csrf_key", cfg.CSRFKey); err != nil {
		return nil, err
	}
	if cfg.FlashSecret, err = cfg.secret("flash_key", cfg.FlashKey); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// SlowRequest returns the slow-request logging threshold.
func (c *Config) SlowRequest() time.Duration {
	return time.Duration(c.SlowRequestMs) * time.Millisecond
}

// SlowQuery returns the slow-query logging threshold.
func (c *Config) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMs) * time.Millisecond
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validate() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("%q: %w", c.Env, ErrUnknownEnv)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%q: %w", c.LogLevel, ErrInvalidLevel)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return ErrInvalidAddress
	}
	if c.RateLimit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// secret decodes a hex key. Outside production an empty key is replaced by a
// random one, so sessions do not survive a restart.
func (c *Config) secret(name, keyHex string) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != keyLen {
			return nil, fmt.Errorf("%s: %w", name, ErrInvalidKey)
		}
		return key, nil
	}
	if c.IsProduction() {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingKey)
	}
	key := make([]byte, keyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	slog.Warn("random_secret_generated", "key", name, "hint", "set "+EnvPrefix+"_"+strings.ToUpper(name))
	return key, nil
}
