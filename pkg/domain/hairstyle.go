package domain

import (
	"fmt"
	"strings"
)

// Gender は被写体の性別指定です。
type Gender string

const (
	GenderUnspecified Gender = "unspecified"
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
)

// Volume は髪のボリューム指定です。
type Volume string

const (
	VolumeNatural Volume = "natural"
	VolumeMedium  Volume = "medium"
	VolumeHigh    Volume = "high"
)

// StyleID はヘアスタイルカタログのキーです。
type StyleID string

// ColorID はヘアカラーカタログのキーです。
type ColorID string

// HairstyleConfig は1回の生成リクエストに使う設定です。
// 生成結果にはこの値のコピーが保存されます。
type HairstyleConfig struct {
	Gender     Gender  `json:"gender"`
	Style      StyleID `json:"style"`
	Color      ColorID `json:"color"`
	Volume     Volume  `json:"volume"`
	Prompt     string  `json:"prompt,omitempty"` // 自由入力（最優先の上書き指示）
	Resolution string  `json:"resolution,omitempty"`
}

// Validate は必須項目が埋まっているかを確認します。
// カタログに存在するかどうかは prompt パッケージが判断します。
func (c HairstyleConfig) Validate() error {
	if c.Style == "" {
		return fmt.Errorf("style is required: %w", ErrInvalidInput)
	}
	if c.Color == "" {
		return fmt.Errorf("color is required: %w", ErrInvalidInput)
	}
	switch Gender(strings.ToLower(strings.TrimSpace(string(c.Gender)))) {
	case "", GenderUnspecified, GenderFemale, GenderMale:
	default:
		return fmt.Errorf("unknown gender %q: %w", c.Gender, ErrInvalidInput)
	}
	return nil
}

// WithDefaults は空のフィールドに既定値を入れたコピーを返します。
func (c HairstyleConfig) WithDefaults() HairstyleConfig {
	if c.Gender == "" {
		c.Gender = GenderUnspecified
	}
	if c.Volume == "" {
		c.Volume = VolumeMedium
	}
	if c.Resolution == "" {
		c.Resolution = "1k"
	}
	return c
}
