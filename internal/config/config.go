package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Generator GeneratorConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig bounds what the upload surface accepts.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	MaxTextChars  int   `mapstructure:"max_text_chars"`
}

// MaxFileBytes returns the file size ceiling in bytes.
func (u *UploadConfig) MaxFileBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// GeneratorConfig holds LLM generation provider settings.
type GeneratorConfig struct {
	Provider        string  `mapstructure:"provider"`
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	TimeoutSecs     int     `mapstructure:"timeout_secs"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxLineItems    int     `mapstructure:"max_line_items"`
	Language        string  `mapstructure:"language"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FINSI_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FINSI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)
	v.SetDefault("upload.max_text_chars", 50000)

	// Generator defaults
	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.timeout_secs", 120)
	v.SetDefault("generator.max_output_tokens", 16384)
	v.SetDefault("generator.temperature", 0.2)
	v.SetDefault("generator.max_line_items", 40)
	v.SetDefault("generator.language", "Thai")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "FINSI_SERVER_PORT",
		"server.read_timeout":         "FINSI_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "FINSI_SERVER_WRITE_TIMEOUT",
		"server.environment":          "FINSI_SERVER_ENVIRONMENT",
		"upload.max_file_size_mb":     "FINSI_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.max_text_chars":       "FINSI_UPLOAD_MAX_TEXT_CHARS",
		"generator.provider":          "FINSI_GENERATOR_PROVIDER",
		"generator.api_key":           "FINSI_GENERATOR_API_KEY",
		"generator.model":             "FINSI_GENERATOR_MODEL",
		"generator.timeout_secs":      "FINSI_GENERATOR_TIMEOUT_SECS",
		"generator.max_output_tokens": "FINSI_GENERATOR_MAX_OUTPUT_TOKENS",
		"generator.temperature":       "FINSI_GENERATOR_TEMPERATURE",
		"generator.max_line_items":    "FINSI_GENERATOR_MAX_LINE_ITEMS",
		"generator.language":          "FINSI_GENERATOR_LANGUAGE",
		"log.level":                   "FINSI_LOG_LEVEL",
		"log.format":                  "FINSI_LOG_FORMAT",
		"cors.allowed_origins":        "FINSI_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		MaxTextChars:  v.GetInt("upload.max_text_chars"),
	}
	cfg.Generator = GeneratorConfig{
		Provider:        v.GetString("generator.provider"),
		APIKey:          v.GetString("generator.api_key"),
		Model:           v.GetString("generator.model"),
		TimeoutSecs:     v.GetInt("generator.timeout_secs"),
		MaxOutputTokens: v.GetInt("generator.max_output_tokens"),
		Temperature:     v.GetFloat64("generator.temperature"),
		MaxLineItems:    v.GetInt("generator.max_line_items"),
		Language:        v.GetString("generator.language"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
