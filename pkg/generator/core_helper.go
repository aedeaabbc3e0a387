package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/metrics"
	"github.com/shouni/astoria-image-kit/pkg/retry"
)

// GeminiImageCore はモデルへのリクエスト送信と応答解析を担う基盤クラスです。
// すべてのリクエストは retry.Policy に従って再試行されます。
type GeminiImageCore struct {
	aiClient GenerativeModel
	model    string
	retry    retry.Policy
	metrics  *metrics.Recorder
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
func NewGeminiImageCore(aiClient GenerativeModel, model string, policy retry.Policy, recorder *metrics.Recorder) (*GeminiImageCore, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	return &GeminiImageCore{
		aiClient: aiClient,
		model:    model,
		retry:    policy,
		metrics:  recorder,
	}, nil
}

func (c *GeminiImageCore) executeRequest(ctx context.Context, op string, parts []*genai.Part, aspectRatio string) (*domain.ImageResponse, error) {
	start := time.Now()

	policy := c.retry
	hook := policy.OnRetry
	policy.OnRetry = func(err error, delay time.Duration) {
		slog.WarnContext(ctx, "一時的なエラーのため再試行します", "operation", op, "delay", delay, "error", err)
		c.metrics.IncRetry(op)
		if hook != nil {
			hook(err, delay)
		}
	}

	opts := gemini.GenerateOptions{AspectRatio: aspectRatio}
	resp, err := retry.Do(ctx, policy, func(ctx context.Context) (*domain.ImageResponse, error) {
		raw, err := c.aiClient.GenerateWithParts(ctx, c.model, parts, opts)
		if err != nil {
			return nil, err
		}
		return c.parseToResponse(op, raw)
	})
	if err != nil {
		err = classify(op, err)
		c.metrics.ObserveGeneration(op, outcomeOf(err), time.Since(start))
		return nil, err
	}

	c.metrics.ObserveGeneration(op, "success", time.Since(start))
	return resp, nil
}

// parseToResponse は最初の候補から最初のインライン画像を取り出します。
func (c *GeminiImageCore) parseToResponse(op string, resp *gemini.Response) (*domain.ImageResponse, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, domain.NewError(domain.KindEmptyResponse, op, errors.New("Geminiからの有効な応答がありませんでした"))
	}

	// 現在の仕様では、Geminiからの最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = domain.DefaultMimeType
			}
			return &domain.ImageResponse{Data: part.InlineData.Data, MimeType: mimeType}, nil
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, domain.NewError(domain.KindServiceRejected, op,
			fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason))
	}
	return nil, domain.NewError(domain.KindEmptyResponse, op, errors.New("画像データが見つかりませんでした"))
}

// classify は再試行を終えたエラーに分類を付けます。
func classify(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if retry.IsTransient(err) {
		return domain.NewError(domain.KindNetwork, op, err)
	}
	return domain.NewError(domain.KindServiceRejected, op, err)
}

func outcomeOf(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return domain.KindOf(err).String()
}

func toPart(img domain.ImageData) *genai.Part {
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = domain.DefaultMimeType
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: img.Data}}
}
