package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	HTTPAddr          string
	AttachmentTimeout time.Duration
	MaxImageBytes     int64
	StagingDir        string
	StagingTTL        time.Duration
	JanitorSchedule   string
	DiscordWebhookURL string
	PresenterTimeout  time.Duration
	UserAgent         string
	LogLevel          string
	LogFormat         string
}

const (
	defaultHTTPAddr          = ":8080"
	defaultAttachmentTimeout = 8 * time.Second
	defaultMaxImageBytes     = 5 * 1024 * 1024
	defaultStagingTTL        = time.Hour
	defaultJanitorSchedule   = "@every 15m"
	defaultPresenterTimeout  = 15 * time.Second
	defaultUserAgent         = "push-attach/1.0"
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
)

// Load builds a Config from environment variables with sane defaults. A .env
// file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:          getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		AttachmentTimeout: parseDurationDefault("ATTACHMENT_TIMEOUT", defaultAttachmentTimeout),
		MaxImageBytes:     int64(parseIntDefault("MAX_IMAGE_BYTES", defaultMaxImageBytes)),
		StagingDir:        getenvDefault("STAGING_DIR", filepath.Join(os.TempDir(), "push-attach")),
		StagingTTL:        parseDurationDefault("STAGING_TTL", defaultStagingTTL),
		JanitorSchedule:   getenvDefault("JANITOR_SCHEDULE", defaultJanitorSchedule),
		DiscordWebhookURL: getenvDefault("DISCORD_WEBHOOK_URL", ""),
		PresenterTimeout:  parseDurationDefault("PRESENTER_TIMEOUT", defaultPresenterTimeout),
		UserAgent:         getenvDefault("USER_AGENT", defaultUserAgent),
		LogLevel:          getenvDefault("LOG_LEVEL", defaultLogLevel),
		LogFormat:         getenvDefault("LOG_FORMAT", defaultLogFormat),
	}

	if cfg.AttachmentTimeout <= 0 {
		cfg.AttachmentTimeout = defaultAttachmentTimeout
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = defaultMaxImageBytes
	}
	if cfg.StagingTTL <= 0 {
		cfg.StagingTTL = defaultStagingTTL
	}
	if cfg.PresenterTimeout <= 0 {
		cfg.PresenterTimeout = defaultPresenterTimeout
	}

	if cfg.StagingTTL < cfg.AttachmentTimeout {
		return nil, fmt.Errorf("STAGING_TTL (%s) must not be shorter than ATTACHMENT_TIMEOUT (%s)", cfg.StagingTTL, cfg.AttachmentTimeout)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
