// Package config loads process configuration from LASTFM_* environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"LastFM-Go/pkg/lastfm"
)

const (
	DefaultEnvPrefix = "LASTFM"

	DefaultListenAddr   = ":4000"
	DefaultDatabasePath = "lastfm.db"
	DefaultRateLimit    = 120
	DefaultTimeout      = lastfm.DefaultTimeout
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("config: api_key must be set")

type Config struct {
	APIKey       string        `json:"api_key,omitempty"       mapstructure:"api_key"`
	Secret       string        `json:"secret,omitempty"        mapstructure:"secret"`
	BaseURL      string        `json:"base_url,omitempty"      mapstructure:"base_url"`
	UserAgent    string        `json:"user_agent,omitempty"    mapstructure:"user_agent"`
	Debug        bool          `json:"debug,omitempty"         mapstructure:"debug"`
	Timeout      time.Duration `json:"timeout,omitempty"       mapstructure:"timeout"`
	DatabasePath string        `json:"database_path,omitempty" mapstructure:"database_path"`
	ListenAddr   string        `json:"listen_addr,omitempty"   mapstructure:"listen_addr"`
	LogLevel     string        `json:"log_level,omitempty"     mapstructure:"log_level"`
	LogFormat    string        `json:"log_format,omitempty"    mapstructure:"log_format"`
	SigningKey   string        `json:"signing_key,omitempty"   mapstructure:"signing_key"`
	// RateLimit is the number of API requests per minute and client IP.
	RateLimit int `json:"rate_limit,omitempty" mapstructure:"rate_limit"`
}

// Load reads the configuration. file may be empty; when set it is read
// before the environment, which takes precedence.
func Load(file string) (*Config, error) {
	v := New()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return Decode(v)
}

// New returns a viper instance with the environment bindings and defaults
// registered. Commands bind their flags onto it before calling Decode.
func New() *viper.Viper {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	_ = v.BindEnv("api_key")
	_ = v.BindEnv("secret")

	_ = v.BindEnv("base_url")
	v.SetDefault("base_url", lastfm.DefaultBaseURL)

	_ = v.BindEnv("user_agent")
	v.SetDefault("user_agent", lastfm.DefaultUserAgent)

	_ = v.BindEnv("debug")
	v.SetDefault("debug", false)

	_ = v.BindEnv("timeout")
	v.SetDefault("timeout", DefaultTimeout)

	// Web server
	_ = v.BindEnv("database_path")
	v.SetDefault("database_path", DefaultDatabasePath)

	_ = v.BindEnv("listen_addr")
	v.SetDefault("listen_addr", DefaultListenAddr)

	_ = v.BindEnv("signing_key")

	_ = v.BindEnv("rate_limit")
	v.SetDefault("rate_limit", DefaultRateLimit)

	_ = v.BindEnv("log_level")
	v.SetDefault("log_level", "info")

	_ = v.BindEnv("log_format")
	v.SetDefault("log_format", "text")

	return v
}

// Decode unmarshals v into a Config.
func Decode(v *viper.Viper) (*Config, error) {
	decodeHooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHooks)); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: negative timeout %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: negative rate_limit %d", c.RateLimit)
	}
	return nil
}

// CallerConfig returns the transport settings for lastfm.NewCaller.
func (c *Config) CallerConfig(logger logrus.FieldLogger) lastfm.Config {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return lastfm.Config{
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
		Debug:     c.Debug,
		HTTP:      &http.Client{Timeout: timeout},
		Logger:    logger,
	}
}

// Client builds a lastfm.Client from the configuration.
func (c *Config) Client(logger logrus.FieldLogger) *lastfm.Client {
	return lastfm.NewClient(lastfm.NewCaller(c.CallerConfig(logger)), c.APIKey, c.Secret)
}
