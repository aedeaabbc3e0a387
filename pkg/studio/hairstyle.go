package studio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/generator"
	"github.com/shouni/astoria-image-kit/pkg/store"
)

// GenerateOptions は1回のヘアスタイル生成に対する指定です。
type GenerateOptions struct {
	// AutoEnhance が true の場合、生成前に画質改善を行います。
	AutoEnhance bool
}

// HairstyleStudio はヘアスタイル変換の画面に対応するセッションです。
// 同時に実行できる生成は1つだけです。
type HairstyleStudio struct {
	mu        sync.Mutex
	gen       generator.ImageGenerator
	favorites *store.Favorites
	history   []domain.GenerationResult
	state     State
	opts      options
}

func NewHairstyleStudio(gen generator.ImageGenerator, favorites *store.Favorites, opts ...Option) *HairstyleStudio {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &HairstyleStudio{gen: gen, favorites: favorites, opts: o}
}

// State は現在の進行状況を返します。
func (s *HairstyleStudio) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *HairstyleStudio) begin(state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return domain.ErrBusy
	}
	s.state = state
	return nil
}

func (s *HairstyleStudio) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Enhance は画質改善だけを行います。結果は履歴に残りません。
func (s *HairstyleStudio) Enhance(ctx context.Context, img domain.ImageData) (domain.ImageData, error) {
	if err := s.begin(StateEnhancing); err != nil {
		return domain.ImageData{}, err
	}
	defer s.setState(StateIdle)
	return s.gen.Enhance(ctx, img)
}

// Generate は必要なら画質改善を行ってからヘアスタイルを生成し、結果を履歴の先頭に追加します。
// 失敗した場合、履歴は変更されません。
func (s *HairstyleStudio) Generate(ctx context.Context, img domain.ImageData, cfg domain.HairstyleConfig, opts GenerateOptions) (domain.GenerationResult, error) {
	if err := cfg.Validate(); err != nil {
		return domain.GenerationResult{}, err
	}

	first := StateGenerating
	if opts.AutoEnhance {
		first = StateEnhancing
	}
	if err := s.begin(first); err != nil {
		return domain.GenerationResult{}, err
	}
	defer s.setState(StateIdle)

	source := img
	if opts.AutoEnhance {
		enhanced, err := s.gen.Enhance(ctx, img)
		if err != nil {
			slog.WarnContext(ctx, "画質改善に失敗したため元の画像で続行します", "error", err)
		} else {
			source = enhanced
		}
		s.setState(StateGenerating)
	}

	out, err := s.gen.GenerateHairstyle(ctx, source, cfg)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	result := domain.GenerationResult{
		ID:             s.opts.newID(),
		OriginalImage:  out.Original,
		GeneratedImage: out.Generated,
		Config:         cfg.WithDefaults(),
		Timestamp:      s.opts.now(),
	}

	s.mu.Lock()
	s.history = append([]domain.GenerationResult{result}, s.history...)
	if len(s.history) > s.opts.historyCapacity {
		s.history = s.history[:s.opts.historyCapacity]
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "ヘアスタイルを生成しました", "id", result.ID, "style", cfg.Style, "color", cfg.Color)
	return result, nil
}

// History は履歴のコピーを新しい順に返します。
func (s *HairstyleStudio) History() []domain.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.GenerationResult(nil), s.history...)
}

// ClearHistory は履歴を空にします。お気に入りには影響しません。
func (s *HairstyleStudio) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

func (s *HairstyleStudio) find(id string) (domain.GenerationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.history {
		if r.ID == id {
			return r, true
		}
	}
	return domain.GenerationResult{}, false
}

// ToggleFavorite は id の結果をお気に入りに追加または削除します。
// 追加した場合は true を返します。保存に失敗した場合も、メモリ上の変更は反映されたまま error を返します。
func (s *HairstyleStudio) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	result, ok := s.find(id)
	if !ok {
		result, ok = s.favorites.Get(id)
	}
	if !ok {
		return false, fmt.Errorf("%s: %w", id, domain.ErrResultNotFound)
	}
	return s.favorites.Toggle(ctx, result)
}

// IsFavorite は id がお気に入りに含まれているかを返します。
func (s *HairstyleStudio) IsFavorite(id string) bool {
	return s.favorites.Contains(id)
}

// Favorites はお気に入りを新しい順に返します。
func (s *HairstyleStudio) Favorites() []domain.GenerationResult {
	return s.favorites.List()
}

// ClearFavorites はお気に入りをすべて削除します。
func (s *HairstyleStudio) ClearFavorites(ctx context.Context) error {
	return s.favorites.Clear(ctx)
}
