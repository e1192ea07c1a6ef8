package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.GeminiModel)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 240*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "15m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "10d")
	t.Setenv("CORS_ORIGINS", "http://a.test/, http://b.test")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
	t.Setenv("AI_PROVIDER", "OpenAI")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 10*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DSN())
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "soon")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTTL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBDriver: DriverSQLite, AI: AIConfig{Provider: ProviderOpenAI}}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	cfg.JWT = JWTConfig{AccessSecret: "a", RefreshSecret: "r"}
	cfg.AI.OpenAIAPIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.AI.Provider = "llama"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsSharedTokenSecret(t *testing.T) {
	cfg := &Config{
		DBDriver: DriverSQLite,
		JWT:      JWTConfig{AccessSecret: "same", RefreshSecret: "same"},
		AI:       AIConfig{Provider: ProviderGemini, GeminiAPIKey: "k"},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")

	cfg.JWT.RefreshSecret = "other"
	assert.NoError(t, cfg.Validate())
}
