// Package config loads walletctl settings from defaults, an optional JSON or
// YAML file, a .env file and WALLET_ prefixed environment variables, in that
// order of precedence (last wins).
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultEnvPrefix = "WALLET_"
	DefaultEnvFile   = ".env"
)

type Config struct {
	API     API     `koanf:"api" json:"api"`
	Storage Storage `koanf:"storage" json:"storage"`
	Auth    Auth    `koanf:"auth" json:"auth"`
	Data    Data    `koanf:"data" json:"data"`
}

type API struct {
	BaseURL string        `koanf:"base_url" json:"base_url"`
	Timeout time.Duration `koanf:"timeout" json:"timeout"`
}

// Storage selects the key-value store holding the session and local data.
type Storage struct {
	Driver string `koanf:"driver" json:"driver"`
	DSN    string `koanf:"dsn" json:"dsn"`
}

type Auth struct {
	Mode       string        `koanf:"mode" json:"mode"`
	SigningKey string        `koanf:"signing_key" json:"-"`
	Issuer     string        `koanf:"issuer" json:"issuer"`
	Delay      time.Duration `koanf:"delay" json:"delay"`
	TTL        time.Duration `koanf:"ttl" json:"ttl"`
}

type Data struct {
	Source       string        `koanf:"source" json:"source"`
	FixtureDelay time.Duration `koanf:"fixture_delay" json:"fixture_delay"`
}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"

	AuthDemo   = "demo"
	AuthRemote = "remote"

	SourceFixture = "fixture"
	SourceRemote  = "remote"
	SourceLocal   = "local"
)

// Defaults mirrors the values used when nothing else is configured.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":       "http://localhost:5000/api",
		"api.timeout":        "10s",
		"storage.driver":     StorageSQLite,
		"storage.dsn":        "file:walletctl.db?cache=shared",
		"auth.mode":          AuthDemo,
		"auth.signing_key":   "wallet-console-demo",
		"auth.issuer":        "wallet-console",
		"auth.delay":         "800ms",
		"auth.ttl":           "24h",
		"data.source":        SourceLocal,
		"data.fixture_delay": "500ms",
	}
}

type options struct {
	file      string
	envFile   string
	envPrefix string
	overrides map[string]any
}

// Option customizes Load.
type Option func(*options)

// WithFile loads a .json, .yaml or .yml file on top of the defaults.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithEnvFile sets the dotenv file, empty disables it.
func WithEnvFile(path string) Option {
	return func(o *options) {
		o.envFile = path
	}
}

func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.envPrefix = prefix
		}
	}
}

// WithOverrides applies dotted keys last, typically from command line flags.
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		o.overrides = values
	}
}

func Load(opts ...Option) (*Config, error) {
	o := &options{
		envFile:   DefaultEnvFile,
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load config defaults")
	}

	if o.file != "" {
		parser, err := parserFor(o.file)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(o.file), parser); err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to load config file").
				WithMetadata(map[string]any{"file": o.file})
		}
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to load env file").
				WithMetadata(map[string]any{"file": o.envFile})
		}
	}

	if err := k.Load(env.Provider(o.envPrefix, ".", envKey(o.envPrefix)), nil); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load environment")
	}

	if len(o.overrides) > 0 {
		if err := k.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to apply overrides")
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps WALLET_API_BASE_URL to api.base_url: the first segment is the
// section, the rest is the field.
func envKey(prefix string) func(string) string {
	return func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.Replace(key, "_", ".", 1)
	}
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.New("unsupported config file extension", errors.CategoryBadInput).
			WithMetadata(map[string]any{"file": path})
	}
}

func (c *Config) Validate() error {
	err := validation.Errors{
		"api": validation.ValidateStruct(&c.API,
			validation.Field(&c.API.BaseURL, validation.Required),
			validation.Field(&c.API.Timeout, validation.Required, validation.Min(time.Millisecond)),
		),
		"storage": validation.ValidateStruct(&c.Storage,
			validation.Field(&c.Storage.Driver, validation.Required, validation.In(StorageMemory, StorageSQLite)),
			validation.Field(&c.Storage.DSN, requiredIf(c.Storage.Driver == StorageSQLite)...),
		),
		"auth": validation.ValidateStruct(&c.Auth,
			validation.Field(&c.Auth.Mode, validation.Required, validation.In(AuthDemo, AuthRemote)),
			validation.Field(&c.Auth.SigningKey, requiredIf(c.Auth.Mode == AuthDemo)...),
		),
		"data": validation.ValidateStruct(&c.Data,
			validation.Field(&c.Data.Source, validation.Required, validation.In(SourceFixture, SourceRemote, SourceLocal)),
		),
	}.Filter()
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid configuration")
	}
	return nil
}

func requiredIf(cond bool) []validation.Rule {
	if cond {
		return []validation.Rule{validation.Required}
	}
	return nil
}
