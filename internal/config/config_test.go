package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"HTTP_ADDR", "ATTACHMENT_TIMEOUT", "MAX_IMAGE_BYTES", "STAGING_TTL", "DISCORD_WEBHOOK_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 8*time.Second, cfg.AttachmentTimeout)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxImageBytes)
	assert.Equal(t, time.Hour, cfg.StagingTTL)
	assert.Equal(t, "@every 15m", cfg.JanitorSchedule)
	assert.Empty(t, cfg.DiscordWebhookURL)
}

func TestLoadOverridesAndFallbacks(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ATTACHMENT_TIMEOUT", "5s")
	t.Setenv("MAX_IMAGE_BYTES", "not-a-number")
	t.Setenv("STAGING_TTL", "-1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.AttachmentTimeout)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxImageBytes)
	assert.Equal(t, time.Hour, cfg.StagingTTL)
}

func TestLoadRejectsTTLShorterThanTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ATTACHMENT_TIMEOUT", "10s")
	t.Setenv("STAGING_TTL", "5s")

	_, err := Load()
	assert.Error(t, err)
}
