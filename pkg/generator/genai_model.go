package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenaiModel は genai SDK を直接使う GenerativeModel の実装です。
// gemini.Client は内部で再試行するため、retry.Do と重ならないようにこちらを使います。
type GenaiModel struct {
	client *genai.Client
}

// NewGenaiModel は Gemini API 用のクライアントを作成します。
func NewGenaiModel(ctx context.Context, apiKey string) (*GenaiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの作成に失敗しました: %w", err)
	}
	return &GenaiModel{client: client}, nil
}

// GenerateWithParts はパーツを1つのユーザーメッセージとして送信します。
func (m *GenaiModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := m.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

var _ GenerativeModel = (*GenaiModel)(nil)
