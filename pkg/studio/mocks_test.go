package studio

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/generator"
)

// mockGenerator は generator.ImageGenerator のテスト用モックなのだ。
type mockGenerator struct {
	enhanceFunc   func(ctx context.Context, img domain.ImageData) (domain.ImageData, error)
	hairstyleFunc func(ctx context.Context, img domain.ImageData, cfg domain.HairstyleConfig) (*generator.HairstyleOutput, error)
	characterFunc func(ctx context.Context, description, style string) (domain.ImageData, error)
	sceneFunc     func(ctx context.Context, img domain.ImageData, desc, scene, style string) (domain.ImageData, error)

	hairstyleInputs []domain.ImageData
}

func (m *mockGenerator) Enhance(ctx context.Context, img domain.ImageData) (domain.ImageData, error) {
	if m.enhanceFunc != nil {
		return m.enhanceFunc(ctx, img)
	}
	return domain.ImageData{Data: []byte("enhanced"), MimeType: "image/png"}, nil
}

func (m *mockGenerator) GenerateHairstyle(ctx context.Context, img domain.ImageData, cfg domain.HairstyleConfig) (*generator.HairstyleOutput, error) {
	m.hairstyleInputs = append(m.hairstyleInputs, img)
	if m.hairstyleFunc != nil {
		return m.hairstyleFunc(ctx, img, cfg)
	}
	return &generator.HairstyleOutput{
		Generated: domain.ImageData{Data: []byte("generated"), MimeType: "image/png"},
		Original:  domain.ImageData{Data: append([]byte("normalized:"), img.Data...), MimeType: "image/jpeg"},
	}, nil
}

func (m *mockGenerator) GenerateCharacter(ctx context.Context, description, style string) (domain.ImageData, error) {
	if m.characterFunc != nil {
		return m.characterFunc(ctx, description, style)
	}
	return domain.ImageData{Data: []byte("character:" + description), MimeType: "image/png"}, nil
}

func (m *mockGenerator) GenerateScene(ctx context.Context, img domain.ImageData, desc, scene, style string) (domain.ImageData, error) {
	if m.sceneFunc != nil {
		return m.sceneFunc(ctx, img, desc, scene, style)
	}
	return domain.ImageData{Data: []byte("scene:" + scene), MimeType: "image/png"}, nil
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func fixedClock() Option {
	return WithClock(func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) })
}
