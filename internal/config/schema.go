// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for chatterctl.
package config

import "time"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Token is the bearer token used for API authentication. Usually
	// supplied as ${CHATTER_TOKEN} in the config file.
	Token string `yaml:"token"`

	// BaseURL overrides the API endpoint. Empty means production.
	BaseURL string `yaml:"base_url,omitempty"`

	// Retry tunes the client retry policy. Zero values use defaults.
	Retry RetryConfig `yaml:"retry,omitempty"`

	// Telemetry configures trace export. Disabled when absent.
	Telemetry *TelemetryConfig `yaml:"telemetry,omitempty"`

	// Archive configures the local message archive used by the export
	// command. Disabled when absent.
	Archive *ArchiveConfig `yaml:"archive,omitempty"`
}

// RetryConfig mirrors the client retry policy knobs.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts,omitempty"`
	InitialInterval time.Duration `yaml:"initial_interval,omitempty"`
	MaxInterval     time.Duration `yaml:"max_interval,omitempty"`
}

// TelemetryConfig controls OTLP trace export.
type TelemetryConfig struct {
	// Endpoint is the OTLP/HTTP collector endpoint, host:port.
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure,omitempty"`
}

// ArchiveConfig locates the local SQLite message archive.
type ArchiveConfig struct {
	// Path is the SQLite database file. Created on first use.
	Path string `yaml:"path"`
}
