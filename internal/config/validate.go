package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the structural validity of a Config. It verifies the
// version field and the optional sections, joining all problems into a
// single error.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	// Token is allowed to be absent: the CLI can take it from a flag or
	// from $CHATTER_TOKEN.

	if cfg.BaseURL != "" {
		if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("config: base_url %q is not an absolute URL", cfg.BaseURL))
		}
	}

	if cfg.Retry.MaxAttempts < 0 {
		errs = append(errs, errors.New("config: retry.max_attempts must not be negative"))
	}
	if cfg.Retry.InitialInterval < 0 || cfg.Retry.MaxInterval < 0 {
		errs = append(errs, errors.New("config: retry intervals must not be negative"))
	}
	if cfg.Retry.MaxInterval > 0 && cfg.Retry.InitialInterval > cfg.Retry.MaxInterval {
		errs = append(errs, errors.New("config: retry.initial_interval exceeds retry.max_interval"))
	}

	if cfg.Telemetry != nil && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, errors.New("config: telemetry.endpoint is required when telemetry is configured"))
	}
	if cfg.Archive != nil && cfg.Archive.Path == "" {
		errs = append(errs, errors.New("config: archive.path is required when archive is configured"))
	}

	return errors.Join(errs...)
}
