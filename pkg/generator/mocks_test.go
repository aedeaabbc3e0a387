package generator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// mockAIClient は GenerativeModel のテスト用モックなのだ。
type mockAIClient struct {
	mu           sync.Mutex
	calls        int
	lastParts    []*genai.Part
	lastOpts     gemini.GenerateOptions
	generateFunc func(call int, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.lastParts = parts
	m.lastOpts = opts
	m.mu.Unlock()

	if m.generateFunc != nil {
		return m.generateFunc(call, parts, opts)
	}
	return imageResponse([]byte("generated"), "image/png"), nil
}

type mockCache struct {
	items map[string]any
}

func newMockCache() *mockCache { return &mockCache{items: map[string]any{}} }

func (m *mockCache) Get(key string) (any, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) { m.items[key] = value }

type mockHTTPClient struct {
	calls int
	data  []byte
	err   error
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

type mockReader struct {
	uri  string
	data []byte
	err  error
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.uri = uri
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

// imageResponse は画像パーツを1つだけ持つ応答を作るヘルパーなのだ。
func imageResponse(data []byte, mimeType string) *gemini.Response {
	return &gemini.Response{RawResponse: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "here you go"},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
	}}
}

func textOnlyResponse(reason genai.FinishReason) *gemini.Response {
	return &gemini.Response{RawResponse: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: "I cannot do that"}}},
			FinishReason: reason,
		}},
	}}
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 7 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}
