package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatterhq/chatter-go/internal/config"
	"github.com/chatterhq/chatter-go/internal/telemetry"
	"github.com/chatterhq/chatter-go/pkg/api"
)

// session bundles everything a command needs: the API client, the loaded
// config, and a telemetry shutdown hook.
type session struct {
	client   *api.Client
	cfg      *config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

// close flushes telemetry. Safe to call when telemetry is disabled.
func (s *session) close(ctx context.Context) {
	if s.shutdown == nil {
		return
	}
	if err := s.shutdown(ctx); err != nil {
		s.logger.Warn("telemetry shutdown failed", "error", err)
	}
}

// newSession builds a session from the persistent flags and the optional
// config file. Flags override the config; $CHATTER_TOKEN is the fallback
// for the token.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = cfg.Token
	}
	if token == "" {
		token = os.Getenv("CHATTER_TOKEN")
	}
	if token == "" {
		return nil, errors.New("no API token: use --token, the config file, or $CHATTER_TOKEN")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	s := &session{cfg: cfg, logger: logger}

	opts := []api.Option{
		api.WithLogger(logger),
		api.WithUserAgent("chatterctl/" + version),
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if baseURL != "" {
		opts = append(opts, api.WithBaseURL(baseURL))
	}

	if rc := retryConfig(cfg); rc != (api.RetryConfig{}) {
		opts = append(opts, api.WithRetryConfig(rc))
	}

	endpoint, _ := cmd.Flags().GetString("trace-endpoint")
	insecure := true
	if endpoint == "" && cfg.Telemetry != nil {
		endpoint = cfg.Telemetry.Endpoint
		insecure = cfg.Telemetry.Insecure
	}
	if endpoint != "" {
		tp, shutdown, err := telemetry.Setup(cmd.Context(), endpoint, insecure)
		if err != nil {
			return nil, err
		}
		s.shutdown = shutdown
		opts = append(opts, api.WithTracerProvider(tp))
	}

	s.client = api.New(token, opts...)
	return s, nil
}

// loadConfig loads the file named by --config, or the first file found in
// the standard locations. A missing file is not an error; commands can
// run on flags alone.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}

	for _, candidate := range configCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return config.Load(candidate)
		}
	}
	return &config.Config{Version: "1"}, nil
}

// configCandidates lists the default config search path:
// $XDG_CONFIG_HOME/chatterctl/chatterctl.yaml → ./chatterctl.yaml
func configCandidates() []string {
	var candidates []string
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "chatterctl", "chatterctl.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "chatterctl", "chatterctl.yaml"))
	}
	return append(candidates, "chatterctl.yaml")
}

func retryConfig(cfg *config.Config) api.RetryConfig {
	return api.RetryConfig{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}
}

// defaultArchivePath is used when the config has no archive section.
func defaultArchivePath() string {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok {
		return filepath.Join(dir, "chatterctl", "archive.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "chatterctl", "archive.db")
}

const commandTimeout = 5 * time.Minute
