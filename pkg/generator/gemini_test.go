package generator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/metrics"
	"github.com/shouni/astoria-image-kit/pkg/prompt"
	"github.com/shouni/astoria-image-kit/pkg/retry"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Retry = retry.Policy{MaxRetries: 3, BaseDelay: time.Millisecond}
	return cfg
}

func newTestGenerator(t *testing.T, ai *mockAIClient, opts ...Option) *GeminiGenerator {
	t.Helper()
	g, err := NewGeminiGenerator(ai, prompt.NewComposer(nil), testConfig(), opts...)
	require.NoError(t, err)
	return g
}

func TestNewGeminiGenerator(t *testing.T) {
	_, err := NewGeminiGenerator(nil, prompt.NewComposer(nil), testConfig())
	assert.Error(t, err)

	_, err = NewGeminiGenerator(&mockAIClient{}, nil, testConfig())
	assert.Error(t, err)
}

func TestGeminiGenerator_GenerateHairstyle(t *testing.T) {
	ctx := context.Background()
	// 画面から届く表示名そのままの値
	cfg := domain.HairstyleConfig{
		Gender: "unspecified",
		Style:  "Pixie",
		Color:  "Black",
		Volume: "high",
	}

	t.Run("大きな画像は正規化してから送信し、送信した画像を Original として返すのだ", func(t *testing.T) {
		ai := &mockAIClient{}
		g := newTestGenerator(t, ai)

		src := domain.ImageData{Data: makePNG(t, 2000, 3000), MimeType: "image/png"}
		out, err := g.GenerateHairstyle(ctx, src, cfg)
		require.NoError(t, err)

		require.Len(t, ai.lastParts, 2)
		sent := ai.lastParts[0].InlineData
		require.NotNil(t, sent)
		assert.Equal(t, sent.Data, out.Original.Data)
		assert.Equal(t, "image/jpeg", out.Original.MimeType)

		decoded, _, err := image.DecodeConfig(bytes.NewReader(out.Original.Data))
		require.NoError(t, err)
		assert.Equal(t, 1024, decoded.Width)
		assert.Equal(t, 1536, decoded.Height)

		text := ai.lastParts[1].Text
		assert.Contains(t, text, "Short Pixie Cut")
		assert.Contains(t, text, "Natural Soft Black")
		assert.Contains(t, text, "High volume")
		assert.Contains(t, text, "SUBJECT: Person.")
		assert.Less(t, strings.Index(text, "IDENTITY LOCK"), strings.Index(text, "STYLE"))

		assert.Equal(t, []byte("generated"), out.Generated.Data)
		assert.Equal(t, "", ai.lastOpts.AspectRatio)
	})

	t.Run("画像パーツのない応答は EmptyResponse なのだ", func(t *testing.T) {
		ai := &mockAIClient{generateFunc: func(int, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
			return textOnlyResponse(genai.FinishReasonStop), nil
		}}
		g := newTestGenerator(t, ai)

		_, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: makePNG(t, 20, 20)}, cfg)
		require.Error(t, err)
		assert.Equal(t, domain.KindEmptyResponse, domain.KindOf(err))
		assert.Equal(t, 1, ai.calls)
	})

	t.Run("安全フィルターで止まった応答は ServiceRejected なのだ", func(t *testing.T) {
		ai := &mockAIClient{generateFunc: func(int, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
			return textOnlyResponse(genai.FinishReasonSafety), nil
		}}
		g := newTestGenerator(t, ai)

		_, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: makePNG(t, 20, 20)}, cfg)
		assert.Equal(t, domain.KindServiceRejected, domain.KindOf(err))
	})

	t.Run("一時的な通信エラーは再試行されるのだ", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		recorder := metrics.NewRecorder(reg)
		ai := &mockAIClient{generateFunc: func(call int, _ []*genai.Part, _ gemini.GenerateOptions) (*gemini.Response, error) {
			if call < 3 {
				return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection reset")}
			}
			return imageResponse([]byte("ok"), "image/png"), nil
		}}
		cfg2 := testConfig()
		var delays []time.Duration
		cfg2.Retry.OnRetry = func(_ error, d time.Duration) { delays = append(delays, d) }
		g, err := NewGeminiGenerator(ai, prompt.NewComposer(nil), cfg2, WithMetrics(recorder))
		require.NoError(t, err)

		out, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: makePNG(t, 20, 20)}, cfg)
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), out.Generated.Data)
		assert.Equal(t, 3, ai.calls)
		assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)

		n, err := testutil.GatherAndCount(reg, "astoria_generation_retries_total")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("再試行を使い切ると Network エラーなのだ", func(t *testing.T) {
		ai := &mockAIClient{generateFunc: func(int, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
			return nil, genai.APIError{Code: 503, Message: "unavailable"}
		}}
		g := newTestGenerator(t, ai)

		_, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: makePNG(t, 20, 20)}, cfg)
		assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
		assert.Equal(t, 4, ai.calls)
	})

	t.Run("4xx は再試行せず ServiceRejected なのだ", func(t *testing.T) {
		ai := &mockAIClient{generateFunc: func(int, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
			return nil, genai.APIError{Code: 400, Message: "bad request"}
		}}
		g := newTestGenerator(t, ai)

		_, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: makePNG(t, 20, 20)}, cfg)
		assert.Equal(t, domain.KindServiceRejected, domain.KindOf(err))
		assert.Equal(t, 1, ai.calls)
	})

	t.Run("カタログにないスタイルは送信前にエラーなのだ", func(t *testing.T) {
		ai := &mockAIClient{}
		g := newTestGenerator(t, ai)

		bad := cfg
		bad.Style = "mohawk-deluxe"
		_, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: makePNG(t, 20, 20)}, bad)
		assert.ErrorIs(t, err, prompt.ErrUnmappedValue)
		assert.Equal(t, 0, ai.calls)
	})

	t.Run("デコードできない画像はそのまま送信するのだ", func(t *testing.T) {
		ai := &mockAIClient{}
		g := newTestGenerator(t, ai)

		raw := []byte("not really an image")
		out, err := g.GenerateHairstyle(ctx, domain.ImageData{Data: raw, MimeType: "image/png"}, cfg)
		require.NoError(t, err)
		assert.Equal(t, raw, out.Original.Data)
		assert.Equal(t, raw, ai.lastParts[0].InlineData.Data)
	})

	t.Run("空の画像は InvalidInput なのだ", func(t *testing.T) {
		g := newTestGenerator(t, &mockAIClient{})
		_, err := g.GenerateHairstyle(ctx, domain.ImageData{}, cfg)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGeminiGenerator_Enhance(t *testing.T) {
	ai := &mockAIClient{}
	g := newTestGenerator(t, ai)

	out, err := g.Enhance(context.Background(), domain.ImageData{Data: makePNG(t, 40, 30)})
	require.NoError(t, err)
	assert.Equal(t, []byte("generated"), out.Data)
	require.Len(t, ai.lastParts, 2)
	assert.NotNil(t, ai.lastParts[0].InlineData)
	assert.Contains(t, ai.lastParts[1].Text, "restoration")
}

func TestGeminiGenerator_GenerateCharacter(t *testing.T) {
	ai := &mockAIClient{}
	g := newTestGenerator(t, ai)

	_, err := g.GenerateCharacter(context.Background(), "  ", "anime")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := g.GenerateCharacter(context.Background(), "a red-haired knight", "anime")
	require.NoError(t, err)
	assert.False(t, out.IsEmpty())
	require.Len(t, ai.lastParts, 1)
	assert.Contains(t, ai.lastParts[0].Text, "a red-haired knight")
	assert.Equal(t, CharacterAspectRatio, ai.lastOpts.AspectRatio)
}

func TestGeminiGenerator_GenerateScene(t *testing.T) {
	ai := &mockAIClient{}
	g := newTestGenerator(t, ai)

	ref := domain.ImageData{Data: makePNG(t, 2048, 1024), MimeType: "image/png"}
	_, err := g.GenerateScene(context.Background(), ref, "knight", "", "anime")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.GenerateScene(context.Background(), ref, "knight", "on a beach", "anime")
	require.NoError(t, err)
	assert.Equal(t, SceneAspectRatio, ai.lastOpts.AspectRatio)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(ai.lastParts[0].InlineData.Data))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
	assert.Contains(t, ai.lastParts[1].Text, "on a beach")
}

func TestGeminiGenerator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ai := &mockAIClient{generateFunc: func(int, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
		cancel()
		return nil, context.Canceled
	}}
	g := newTestGenerator(t, ai)

	_, err := g.GenerateCharacter(ctx, "knight", "anime")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ai.calls)
}
