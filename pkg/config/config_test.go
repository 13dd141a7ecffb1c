package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_DB", "gallery")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MEDIA_CDN_BASE_URL", "https://cdn.example.com/")
	t.Setenv("CORS_ORIGINS", "https://studio.example.com, https://admin.example.com")
	t.Setenv("MAX_PHOTO_MB", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, "gallery", cfg.MongoDB)
	assert.Equal(t, "cache", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "https://cdn.example.com", cfg.MediaCDNBaseURL)
	assert.Equal(t, []string{"https://studio.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 20, cfg.MaxPhotoMB)
	assert.False(t, cfg.HasDefaultJWTSecret())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MAX_VIDEO_MB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 200, cfg.MaxVideoMB)
	assert.Equal(t, 50, cfg.MaxImageMP)
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.True(t, cfg.HasDefaultJWTSecret())
}
