package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/verso-ui/verso/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "verso.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultBaseURL is where the app is mounted when verso.json does not
	// say otherwise.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultMaxSessions caps concurrent sessions.
	DefaultMaxSessions = 10000

	// DefaultIdleTimeout is how long an inactive session survives.
	DefaultIdleTimeout = "30m"
)

// Config represents the complete verso.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// BaseURL is the absolute URL the app is mounted at. Everything the
	// router resolves outside this URL's origin is treated as external.
	BaseURL string `json:"baseUrl,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Sessions contains session lifecycle settings.
	Sessions SessionsConfig `json:"sessions,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// SessionsConfig contains session lifecycle settings.
type SessionsConfig struct {
	// Max caps the number of concurrent sessions.
	Max int `json:"max,omitempty"`

	// IdleTimeout is how long an inactive session survives (e.g. "30m").
	IdleTimeout string `json:"idleTimeout,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace (default "verso").
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		BaseURL: DefaultBaseURL,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Sessions: SessionsConfig{
			Max:         DefaultMaxSessions,
			IdleTimeout: DefaultIdleTimeout,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "verso",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for verso.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E200").
				WithDetail("no verso.json found in %s", filepath.Dir(path))
		}
		return nil, errors.New("E200").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E201").
			WithDetail("cannot parse verso.json: %v", err).
			WithSuggestion("Check that verso.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E200").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Sessions.Max == 0 {
		c.Sessions.Max = DefaultMaxSessions
	}
	if c.Sessions.IdleTimeout == "" {
		c.Sessions.IdleTimeout = DefaultIdleTimeout
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "verso"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New("E202").
			WithDetail("baseUrl is %q", c.BaseURL)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E201").
			WithDetail("server.port is %d, must be between 0 and 65535", c.Server.Port)
	}

	if c.Sessions.Max < 0 {
		return errors.New("E201").
			WithDetail("sessions.max is %d, must not be negative", c.Sessions.Max)
	}

	if _, err := time.ParseDuration(c.Sessions.IdleTimeout); err != nil {
		return errors.New("E201").
			WithDetail("sessions.idleTimeout is %q, must be a Go duration like \"30m\"", c.Sessions.IdleTimeout)
	}

	return nil
}

// ParsedBaseURL returns the validated base URL. Call Validate first; this
// panics on an unparsable value.
func (c *Config) ParsedBaseURL() *url.URL {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		panic("config: base URL not validated: " + err.Error())
	}
	return u
}

// IdleTimeout returns the parsed session idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Sessions.IdleTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultIdleTimeout)
	}
	return d
}
