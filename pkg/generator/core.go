package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// SourceLoader はアップロード画像の取り込み口です。
// data URL、素の base64、http(s) URL、gs:// URI のいずれかから画像を読み込みます。
type SourceLoader struct {
	httpClient HTTPClient
	reader     ObjectReader
	cache      ImageCacher
	expiration time.Duration
}

// NewSourceLoader は依存関係を注入して SourceLoader を初期化します。
// httpClient と reader が nil の場合、対応するスキームは使えません。cache は nil を許容します。
func NewSourceLoader(httpClient HTTPClient, reader ObjectReader, cache ImageCacher, cacheTTL time.Duration) *SourceLoader {
	return &SourceLoader{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		expiration: cacheTTL,
	}
}

// Load は source を読み込み、画像であることを確認して返します。
func (l *SourceLoader) Load(ctx context.Context, source string) (domain.ImageData, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return domain.ImageData{}, fmt.Errorf("画像が指定されていません: %w", domain.ErrInvalidInput)
	}

	if strings.HasPrefix(source, "data:") {
		img, err := domain.ParseDataURL(source)
		if err != nil {
			return domain.ImageData{}, err
		}
		return img, nil
	}
	if !strings.Contains(source, "://") {
		img, err := domain.ParseDataURL(source)
		if err != nil {
			return domain.ImageData{}, err
		}
		return toImageData(img.Data)
	}

	if l.cache != nil {
		if cached, found := l.cache.Get(cacheKeySource + source); found {
			if data, ok := cached.([]byte); ok {
				return toImageData(data)
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "source", source, "type", fmt.Sprintf("%T", cached))
		}
	}

	data, err := l.fetch(ctx, source)
	if err != nil {
		return domain.ImageData{}, err
	}

	img, err := toImageData(data)
	if err != nil {
		return domain.ImageData{}, err
	}
	if l.cache != nil {
		l.cache.Set(cacheKeySource+source, data, l.expiration)
	}
	return img, nil
}

func (l *SourceLoader) fetch(ctx context.Context, source string) ([]byte, error) {
	if remoteio.IsGCSURI(source) {
		if _, object, err := remoteio.ParseGCSURI(source); err != nil || object == "" {
			return nil, fmt.Errorf("不正な gs:// URI です (%s): %w", source, domain.ErrInvalidInput)
		}
		if l.reader == nil {
			return nil, fmt.Errorf("gs:// の読み込みは設定されていません: %w", domain.ErrInvalidInput)
		}
		rc, err := l.reader.Open(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("オブジェクトの取得に失敗しました: %w", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, MaxSourceBytes+1))
		if err != nil {
			return nil, fmt.Errorf("オブジェクトの読み込みに失敗しました: %w", err)
		}
		return checkSize(data)
	}

	if safe, err := IsSafeURL(source); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w: %w", domain.ErrInvalidInput, err)
	}
	if l.httpClient == nil {
		return nil, fmt.Errorf("URL からの読み込みは設定されていません: %w", domain.ErrInvalidInput)
	}
	data, err := l.httpClient.FetchBytes(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	return checkSize(data)
}

func checkSize(data []byte) ([]byte, error) {
	if len(data) > MaxSourceBytes {
		return nil, fmt.Errorf("画像が大きすぎます (上限 %d バイト): %w", MaxSourceBytes, domain.ErrInvalidInput)
	}
	return data, nil
}

// toImageData は読み込んだバイト列の MIME タイプを判定し、画像以外を拒否します。
func toImageData(data []byte) (domain.ImageData, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ImageData{}, fmt.Errorf("MIMEタイプが画像ではありません (%s): %w", mimeType, domain.ErrInvalidInput)
	}
	return domain.ImageData{Data: data, MimeType: mimeType}, nil
}
