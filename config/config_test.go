package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Review.GenerationTimeout)
	assert.Equal(t, 4, cfg.Review.BatchConcurrency)
	assert.True(t, cfg.Review.JobEnabled)
	assert.Equal(t, "59 23 28-31 * *", cfg.Review.JobSchedule)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REVIEW_GENERATION_TIMEOUT", "5s")
	t.Setenv("REVIEW_BATCH_CONCURRENCY", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("REVIEW_JOB_ENABLED", "false")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.Review.GenerationTimeout)
	assert.Equal(t, 8, cfg.Review.BatchConcurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Review.JobEnabled)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	t.Run("development fills a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ENV", "development")
		cfg := Load()
		require.NoError(t, cfg.Validate())
		assert.NotEmpty(t, cfg.JWT.Secret)
	})

	t.Run("production requires a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ENV", "production")
		cfg := Load()
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("non-positive concurrency", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("REVIEW_BATCH_CONCURRENCY", "0")
		cfg := Load()
		assert.ErrorContains(t, cfg.Validate(), "REVIEW_BATCH_CONCURRENCY")
	})
}
