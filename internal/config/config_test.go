package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "SERVER_ADDR", "MODEL_DIR", "BINARY_MODEL_DIR", "DATABASE_URL",
		"REDIS_URL", "CORS_ORIGINS", "RATE_LIMIT_PER_MINUTE", "MAX_TEXT_LENGTH",
		"LOG_LEVEL", "LOG_FORMAT", "SITE_TITLE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, "./models/liar", cfg.ModelDir)
	assert.Equal(t, "./models/binary", cfg.BinaryModelDir)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 0, cfg.MaxTextLength)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "TruthLens", cfg.SiteTitle)
	assert.False(t, cfg.StoreEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("MODEL_DIR", "/srv/models/liar")
	t.Setenv("DATABASE_URL", "postgres://localhost/newsverify")
	t.Setenv("MAX_TEXT_LENGTH", "280")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.Equal(t, "/srv/models/liar", cfg.ModelDir)
	assert.True(t, cfg.StoreEnabled())
	assert.Equal(t, 280, cfg.MaxTextLength)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"valid", "42", 42},
		{"padded", " 12 ", 12},
		{"malformed", "lots", 7},
		{"negative", "-3", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NEWSVERIFY_TEST_INT", tt.value)
			assert.Equal(t, tt.want, getEnvInt("NEWSVERIFY_TEST_INT", 7))
		})
	}
}
