package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Retry     RetryConfig     `yaml:"retry"`
	Image     ImageConfig     `yaml:"image"`
	Storage   StorageConfig   `yaml:"storage"`
	Favorites FavoritesConfig `yaml:"favorites"`
	History   HistoryConfig   `yaml:"history"`
	Export    ExportConfig    `yaml:"export"`
	MinIO     MinIOConfig     `yaml:"minio"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type RetryConfig struct {
	// MaxRetries が未設定の場合は 3 回、0 を指定すると再試行しません。
	MaxRetries *int          `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
}

type ImageConfig struct {
	MaxDimension      int `yaml:"max_dimension"`
	SceneMaxDimension int `yaml:"scene_max_dimension"`
	Quality           int `yaml:"quality"`
	SceneQuality      int `yaml:"scene_quality"`
}

// StorageConfig はお気に入りの保存先です。Driver は file, sqlite, memory のいずれかです。
type StorageConfig struct {
	Driver     string `yaml:"driver"`
	Path       string `yaml:"path"`
	QuotaBytes int64  `yaml:"quota_bytes"`
}

type FavoritesConfig struct {
	Capacity int `yaml:"capacity"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// MinIOConfig は共有先の設定です。Endpoint が空の場合、共有はダウンロードに切り替わります。
type MinIOConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	AccessKey  string        `yaml:"access_key"`
	SecretKey  string        `yaml:"secret_key"`
	Bucket     string        `yaml:"bucket"`
	UseSSL     bool          `yaml:"use_ssl"`
	PresignTTL time.Duration `yaml:"presign_ttl"`
}

type FetchConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
// .env があれば先に環境変数として読み込みます。path が存在しない場合は既定値と環境変数だけで構成します。
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は起動に必要な値がそろっているかを確認します。
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return errors.New("gemini.api_key (GEMINI_API_KEY) is required")
	}
	if c.Retry.MaxRetries != nil && *c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative: %d", *c.Retry.MaxRetries)
	}
	switch c.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash-image"
	}
	if cfg.Retry.MaxRetries == nil {
		n := 3
		cfg.Retry.MaxRetries = &n
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = time.Second
	}
	if cfg.Image.MaxDimension == 0 {
		cfg.Image.MaxDimension = 1536
	}
	if cfg.Image.SceneMaxDimension == 0 {
		cfg.Image.SceneMaxDimension = 1024
	}
	if cfg.Image.Quality == 0 {
		cfg.Image.Quality = 98
	}
	if cfg.Image.SceneQuality == 0 {
		cfg.Image.SceneQuality = 95
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "file"
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Driver {
		case "sqlite":
			cfg.Storage.Path = "data/astoria.db"
		default:
			cfg.Storage.Path = "data"
		}
	}
	if cfg.Storage.QuotaBytes == 0 {
		cfg.Storage.QuotaBytes = 5 << 20
	}
	if cfg.Favorites.Capacity == 0 {
		cfg.Favorites.Capacity = 100
	}
	if cfg.History.Capacity == 0 {
		cfg.History.Capacity = 50
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = "astoria"
	}
	if cfg.MinIO.PresignTTL == 0 {
		cfg.MinIO.PresignTTL = 24 * time.Hour
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.CacheTTL == 0 {
		cfg.Fetch.CacheTTL = 10 * time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ASTORIA_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ASTORIA_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("ASTORIA_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("ASTORIA_RETRY_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retry.MaxRetries = &n
		}
	}
	if v := os.Getenv("ASTORIA_RETRY_BASE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Retry.BaseDelay = d
		}
	}
	if v := os.Getenv("ASTORIA_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("ASTORIA_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("ASTORIA_STORAGE_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Storage.QuotaBytes = n
		}
	}
	if v := os.Getenv("ASTORIA_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("ASTORIA_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("ASTORIA_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("ASTORIA_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("ASTORIA_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("ASTORIA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ASTORIA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
