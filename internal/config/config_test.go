package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 180*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, int64(10), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileBytes())
	assert.Equal(t, 50000, cfg.Upload.MaxTextChars)

	assert.Equal(t, "gemini", cfg.Generator.Provider)
	assert.Empty(t, cfg.Generator.APIKey)
	assert.Equal(t, 120, cfg.Generator.TimeoutSecs)
	assert.Equal(t, 16384, cfg.Generator.MaxOutputTokens)
	assert.InDelta(t, 0.2, cfg.Generator.Temperature, 1e-9)
	assert.Equal(t, 40, cfg.Generator.MaxLineItems)
	assert.Equal(t, "Thai", cfg.Generator.Language)

	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FINSI_SERVER_PORT", ":9090")
	t.Setenv("FINSI_UPLOAD_MAX_FILE_SIZE_MB", "25")
	t.Setenv("FINSI_GENERATOR_PROVIDER", "openai")
	t.Setenv("FINSI_GENERATOR_API_KEY", "sk-test")
	t.Setenv("FINSI_GENERATOR_MODEL", "gpt-4o")
	t.Setenv("FINSI_GENERATOR_LANGUAGE", "English")
	t.Setenv("FINSI_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, int64(25), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, "openai", cfg.Generator.Provider)
	assert.Equal(t, "sk-test", cfg.Generator.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Generator.Model)
	assert.Equal(t, "English", cfg.Generator.Language)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORS.AllowedOrigins)
}
