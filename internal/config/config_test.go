package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Gemini.Model)
	require.NotNil(t, cfg.Retry.MaxRetries)
	assert.Equal(t, 3, *cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 1536, cfg.Image.MaxDimension)
	assert.Equal(t, 1024, cfg.Image.SceneMaxDimension)
	assert.Equal(t, 98, cfg.Image.Quality)
	assert.Equal(t, 95, cfg.Image.SceneQuality)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 100, cfg.Favorites.Capacity)
	assert.Equal(t, 50, cfg.History.Capacity)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  cors_origins: ["http://localhost:5173"]
gemini:
  api_key: from-file
  model: custom-model
retry:
  base_delay: 250ms
storage:
  driver: sqlite
  quota_bytes: 1024
minio:
  endpoint: minio:9000
  presign_ttl: 1h
logging:
  level: debug
`)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ASTORIA_SERVER_PORT", "9100")
	t.Setenv("ASTORIA_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.Equal(t, "custom-model", cfg.Gemini.Model)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "data/astoria.db", cfg.Storage.Path)
	assert.Equal(t, int64(1024), cfg.Storage.QuotaBytes)
	assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
	assert.Equal(t, time.Hour, cfg.MinIO.PresignTTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RetryDisabled(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	t.Run("max_retries: 0 は既定値で上書きされないのだ", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "retry:\n  max_retries: 0\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.Retry.MaxRetries)
		assert.Equal(t, 0, *cfg.Retry.MaxRetries)
	})

	t.Run("環境変数で 0 を指定できるのだ", func(t *testing.T) {
		t.Setenv("ASTORIA_RETRY_MAX_RETRIES", "0")
		cfg, err := Load(writeConfig(t, "retry:\n  max_retries: 5\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, *cfg.Retry.MaxRetries)
	})

	t.Run("負の値は拒否するのだ", func(t *testing.T) {
		_, err := Load(writeConfig(t, "retry:\n  max_retries: -1\n"))
		assert.Error(t, err)
	})
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("API キーがなければエラーなのだ", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		_, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
		assert.Error(t, err)
	})

	t.Run("未知のストレージはエラーなのだ", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "k")
		_, err := Load(writeConfig(t, "storage:\n  driver: redis\n"))
		assert.Error(t, err)
	})

	t.Run("壊れた YAML はエラーなのだ", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "k")
		_, err := Load(writeConfig(t, "server: [oops"))
		assert.Error(t, err)
	})
}
