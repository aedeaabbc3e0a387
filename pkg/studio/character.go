package studio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/generator"
)

// CharacterStudio はキャラクター作成とシーン生成のセッションです。
// キャラクターとシーンはメモリ上にのみ保持され、Reset で破棄されます。
type CharacterStudio struct {
	mu         sync.Mutex
	gen        generator.ImageGenerator
	characters []domain.Character
	scenes     map[string][]domain.Scene
	state      State
	opts       options
}

func NewCharacterStudio(gen generator.ImageGenerator, opts ...Option) *CharacterStudio {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CharacterStudio{gen: gen, scenes: make(map[string][]domain.Scene), opts: o}
}

func (s *CharacterStudio) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return domain.ErrBusy
	}
	s.state = StateGenerating
	return nil
}

func (s *CharacterStudio) end() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

// State は現在の進行状況を返します。
func (s *CharacterStudio) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CreateCharacter はテキストからキャラクターの基準画像を生成して登録します。
func (s *CharacterStudio) CreateCharacter(ctx context.Context, name, description, style string) (domain.Character, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" || description == "" {
		return domain.Character{}, fmt.Errorf("名前と説明は必須です: %w", domain.ErrInvalidInput)
	}
	if err := s.begin(); err != nil {
		return domain.Character{}, err
	}
	defer s.end()

	img, err := s.gen.GenerateCharacter(ctx, description, style)
	if err != nil {
		return domain.Character{}, err
	}

	c := domain.Character{
		ID:          s.opts.newID(),
		Name:        name,
		Description: description,
		Style:       style,
		BaseImage:   img,
		CreatedAt:   s.opts.now(),
	}
	s.mu.Lock()
	s.characters = append(s.characters, c)
	s.mu.Unlock()
	return c, nil
}

func (s *CharacterStudio) lookup(id string) (domain.Character, bool) {
	for _, c := range s.characters {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Character{}, false
}

// Character は id のキャラクターを返します。
func (s *CharacterStudio) Character(id string) (domain.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

// Characters は登録順にキャラクターを返します。
func (s *CharacterStudio) Characters() []domain.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Character(nil), s.characters...)
}

// CreateScene はキャラクターを新しいシーンに配置した画像を生成し、そのキャラクターのシーン列の末尾に追加します。
// style が空の場合はキャラクター作成時の画風を使います。
// キャラクターが存在しない場合、または生成中に削除された場合は ErrCharacterNotFound を返します。
func (s *CharacterStudio) CreateScene(ctx context.Context, characterID, scenePrompt, style string) (domain.Scene, error) {
	scenePrompt = strings.TrimSpace(scenePrompt)
	if scenePrompt == "" {
		return domain.Scene{}, fmt.Errorf("シーンの説明は必須です: %w", domain.ErrInvalidInput)
	}

	c, ok := s.Character(characterID)
	if !ok {
		return domain.Scene{}, fmt.Errorf("%s: %w", characterID, domain.ErrCharacterNotFound)
	}
	if err := s.begin(); err != nil {
		return domain.Scene{}, err
	}
	defer s.end()

	if style = strings.TrimSpace(style); style == "" {
		style = c.Style
	}
	img, err := s.gen.GenerateScene(ctx, c.BaseImage, c.Description, scenePrompt, style)
	if err != nil {
		return domain.Scene{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(characterID); !ok {
		return domain.Scene{}, fmt.Errorf("%s: %w", characterID, domain.ErrCharacterNotFound)
	}
	scene := domain.Scene{
		ID:          s.opts.newID(),
		CharacterID: characterID,
		Description: scenePrompt,
		Image:       img,
		Timestamp:   s.opts.now(),
	}
	s.scenes[characterID] = append(s.scenes[characterID], scene)
	return scene, nil
}

// Scenes は作成順にシーンを返します。
func (s *CharacterStudio) Scenes(characterID string) ([]domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(characterID); !ok {
		return nil, fmt.Errorf("%s: %w", characterID, domain.ErrCharacterNotFound)
	}
	return append([]domain.Scene(nil), s.scenes[characterID]...), nil
}

// RemoveCharacter はキャラクターとそのシーンを削除します。
func (s *CharacterStudio) RemoveCharacter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.characters {
		if c.ID == id {
			s.characters = append(s.characters[:i:i], s.characters[i+1:]...)
			delete(s.scenes, id)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", id, domain.ErrCharacterNotFound)
}

// Reset はすべてのキャラクターとシーンを破棄します。
func (s *CharacterStudio) Reset() {
	s.mu.Lock()
	s.characters = nil
	s.scenes = make(map[string][]domain.Scene)
	s.mu.Unlock()
}
