package generator

import (
	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/retry"
)

const (
	DefaultModel             = "gemini-2.5-flash-image"
	DefaultMaxDimension      = 1536
	DefaultSceneMaxDimension = 1024
	DefaultQuality           = 98
	DefaultSceneQuality      = 95
	CharacterAspectRatio     = "1:1"
	SceneAspectRatio         = "16:9"
	MaxSourceBytes           = 20 << 20
	cacheKeySource           = "source:"
)

// 操作名。ログとメトリクスのラベルに使います。
const (
	OpEnhance   = "enhance"
	OpHairstyle = "hairstyle"
	OpCharacter = "character"
	OpScene     = "scene"
)

// Config は GeminiGenerator の設定です。
type Config struct {
	Model             string
	MaxDimension      int
	Quality           int
	SceneMaxDimension int
	SceneQuality      int
	Retry             retry.Policy
}

// DefaultConfig は既定の設定を返します。
func DefaultConfig() Config {
	return Config{
		Model:             DefaultModel,
		MaxDimension:      DefaultMaxDimension,
		Quality:           DefaultQuality,
		SceneMaxDimension: DefaultSceneMaxDimension,
		SceneQuality:      DefaultSceneQuality,
		Retry:             retry.DefaultPolicy(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.MaxDimension <= 0 {
		c.MaxDimension = d.MaxDimension
	}
	if c.Quality <= 0 {
		c.Quality = d.Quality
	}
	if c.SceneMaxDimension <= 0 {
		c.SceneMaxDimension = d.SceneMaxDimension
	}
	if c.SceneQuality <= 0 {
		c.SceneQuality = d.SceneQuality
	}
	if c.Retry.BaseDelay <= 0 {
		c.Retry.BaseDelay = d.Retry.BaseDelay
	}
	return c
}

// HairstyleOutput は GenerateHairstyle の結果です。
// Original は送信した正規化済み画像そのものなので、Generated と比較表示できます。
type HairstyleOutput struct {
	Generated domain.ImageData
	Original  domain.ImageData
}
