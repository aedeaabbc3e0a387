package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/imgutil"
	"github.com/shouni/astoria-image-kit/pkg/metrics"
	"github.com/shouni/astoria-image-kit/pkg/prompt"
)

// GeminiGenerator は、画質改善・ヘアスタイル変換・キャラクター作成・シーン生成の
// 4種類のリクエストを担当する統合ジェネレーターです。
// ネットワーク呼び出し以外に状態を変更しません。
type GeminiGenerator struct {
	core     *GeminiImageCore
	composer *prompt.Composer
	cfg      Config
}

// Option は GeminiGenerator の生成オプションです。
type Option func(*options)

type options struct {
	metrics *metrics.Recorder
}

// WithMetrics は生成結果と再試行を recorder に記録します。
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(o *options) { o.metrics = recorder }
}

// NewGeminiGenerator は GeminiGenerator を初期化するのだ。
func NewGeminiGenerator(aiClient GenerativeModel, composer *prompt.Composer, cfg Config, opts ...Option) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (GenerativeModel) is required")
	}
	if composer == nil {
		return nil, fmt.Errorf("composer (prompt.Composer) is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.withDefaults()
	core, err := NewGeminiImageCore(aiClient, cfg.Model, cfg.Retry, o.metrics)
	if err != nil {
		return nil, err
	}

	return &GeminiGenerator{
		core:     core,
		composer: composer,
		cfg:      cfg,
	}, nil
}

func (g *GeminiGenerator) normalize(ctx context.Context, img domain.ImageData, maxDimension, quality int) domain.ImageData {
	n := imgutil.Normalize(img.Data, maxDimension, quality)
	if n.Fallback != nil {
		slog.WarnContext(ctx, "画像の正規化に失敗したため元の画像をそのまま送信します", "error", n.Fallback)
		return n.ImageData
	}
	slog.DebugContext(ctx, "画像を正規化しました", "width", n.Width, "height", n.Height, "bytes", len(n.Data))
	return n.ImageData
}

// Enhance は画像を正規化して画質改善を依頼するのだ。
func (g *GeminiGenerator) Enhance(ctx context.Context, img domain.ImageData) (domain.ImageData, error) {
	if img.IsEmpty() {
		return domain.ImageData{}, fmt.Errorf("画像が空です: %w", domain.ErrInvalidInput)
	}

	normalized := g.normalize(ctx, img, g.cfg.MaxDimension, g.cfg.Quality)
	parts := []*genai.Part{toPart(normalized), {Text: g.composer.Enhance()}}

	resp, err := g.core.executeRequest(ctx, OpEnhance, parts, "")
	if err != nil {
		return domain.ImageData{}, fmt.Errorf("画像の画質改善に失敗しました: %w", err)
	}
	return resp.Image(), nil
}

// GenerateHairstyle は入力を一度だけ正規化し、その画像とプロンプトを送信するのだ。
func (g *GeminiGenerator) GenerateHairstyle(ctx context.Context, img domain.ImageData, cfg domain.HairstyleConfig) (*HairstyleOutput, error) {
	if img.IsEmpty() {
		return nil, fmt.Errorf("画像が空です: %w", domain.ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	text, err := g.composer.Hairstyle(cfg)
	if err != nil {
		return nil, fmt.Errorf("プロンプトの組み立てに失敗しました: %w", err)
	}

	normalized := g.normalize(ctx, img, g.cfg.MaxDimension, g.cfg.Quality)
	parts := []*genai.Part{toPart(normalized), {Text: text}}

	slog.InfoContext(ctx, "ヘアスタイル生成をリクエストします", "model", g.cfg.Model, "style", cfg.Style, "color", cfg.Color)
	resp, err := g.core.executeRequest(ctx, OpHairstyle, parts, "")
	if err != nil {
		return nil, fmt.Errorf("ヘアスタイル生成エラー: %w", err)
	}

	return &HairstyleOutput{
		Generated: resp.Image(),
		Original:  normalized,
	}, nil
}

// GenerateCharacter はテキストのみで正方形のキャラクター画像を生成するのだ。
func (g *GeminiGenerator) GenerateCharacter(ctx context.Context, description, style string) (domain.ImageData, error) {
	if strings.TrimSpace(description) == "" {
		return domain.ImageData{}, fmt.Errorf("キャラクターの説明が空です: %w", domain.ErrInvalidInput)
	}

	parts := []*genai.Part{{Text: g.composer.Character(description, style)}}
	resp, err := g.core.executeRequest(ctx, OpCharacter, parts, CharacterAspectRatio)
	if err != nil {
		return domain.ImageData{}, fmt.Errorf("キャラクター生成エラー: %w", err)
	}
	return resp.Image(), nil
}

// GenerateScene は参照画像と一貫性のあるキャラクターを横長のシーンに配置するのだ。
func (g *GeminiGenerator) GenerateScene(ctx context.Context, characterImage domain.ImageData, characterDescription, scenePrompt, style string) (domain.ImageData, error) {
	if characterImage.IsEmpty() {
		return domain.ImageData{}, fmt.Errorf("参照画像が空です: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(scenePrompt) == "" {
		return domain.ImageData{}, fmt.Errorf("シーンの説明が空です: %w", domain.ErrInvalidInput)
	}

	reference := g.normalize(ctx, characterImage, g.cfg.SceneMaxDimension, g.cfg.SceneQuality)
	parts := []*genai.Part{
		toPart(reference),
		{Text: g.composer.Scene(characterDescription, scenePrompt, style)},
	}

	resp, err := g.core.executeRequest(ctx, OpScene, parts, SceneAspectRatio)
	if err != nil {
		return domain.ImageData{}, fmt.Errorf("シーン生成エラー: %w", err)
	}
	return resp.Image(), nil
}

var _ ImageGenerator = (*GeminiGenerator)(nil)
