package domain

import "time"

// GenerationResult は1回の成功したヘアスタイル生成の記録です。
// OriginalImage は実際に送信した正規化済み画像で、生成画像とピクセル位置が揃います。
type GenerationResult struct {
	ID             string          `json:"id"`
	OriginalImage  ImageData       `json:"originalImage"`
	GeneratedImage ImageData       `json:"generatedImage"`
	Config         HairstyleConfig `json:"config"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Character はシーン生成に使い回すキャラクターの定義です。
// セッション中のみメモリ上に保持されます。
type Character struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Style       string    `json:"style"`
	BaseImage   ImageData `json:"baseImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Scene はキャラクターを配置して生成した1枚の画像です。
// CharacterID は作成時点で存在が検証された Character を指します。
type Scene struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"characterId"`
	Description string    `json:"description"`
	Image       ImageData `json:"image"`
	Timestamp   time.Time `json:"timestamp"`
}
