// Package config loads the rosterd runtime configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr    = ":8080"
	defaultMetricsPrefix = "rosterd"
	defaultPushSchedule  = "*/5 * * * *"
	defaultMaxAuditLog   = 500

	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	defaultLogOutput = "stdout"
)

// Config represents the complete service configuration.
type Config struct {
	Listener   ListenerConfig   `yaml:"listener"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	// SeedFile is the path to a YAML activity seed file. When empty the
	// built-in roster is used.
	SeedFile string `yaml:"seed_file"`
	// MaxAuditEvents caps the in-memory roster change log.
	MaxAuditEvents int `yaml:"max_audit_events"`
}

// ListenerConfig holds HTTP server listener settings.
type ListenerConfig struct {
	// The listen address, defaults to :8080
	Addr string `yaml:"addr"`
	// TLSCert and TLSKey enable TLS when both are set.
	TLSCert string `yaml:"tls_cert"`
	TLSKey  string `yaml:"tls_key"`
}

// LoggingConfig defines logging behavior settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	Output    string `yaml:"output"`
	AddSource bool   `yaml:"add_source"`
}

// MonitoringConfig holds metrics push settings. Pushing is disabled
// unless VictoriaMetricsURL is set; the scrape endpoint is always on.
type MonitoringConfig struct {
	VictoriaMetricsURL string `yaml:"victoriametrics_url"`
	MetricsPrefix      string `yaml:"metrics_prefix"`
	// PushSchedule is a standard 5-field cron spec.
	PushSchedule string `yaml:"push_schedule"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// LoadConfig reads the YAML config file at the given path. An empty path
// returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults sets reasonable default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Listener.Addr == "" {
		c.Listener.Addr = defaultListenAddr
	}
	if c.Monitoring.MetricsPrefix == "" {
		c.Monitoring.MetricsPrefix = defaultMetricsPrefix
	}
	if c.Monitoring.PushSchedule == "" {
		c.Monitoring.PushSchedule = defaultPushSchedule
	}
	if c.MaxAuditEvents == 0 {
		c.MaxAuditEvents = defaultMaxAuditLog
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaultLogOutput
	}
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if (c.Listener.TLSCert == "") != (c.Listener.TLSKey == "") {
		return fmt.Errorf("listener tls_cert and tls_key must be set together")
	}
	if c.MaxAuditEvents < 0 {
		return fmt.Errorf("max_audit_events must not be negative")
	}
	return nil
}
