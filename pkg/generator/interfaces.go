package generator

import (
	"context"
	"io"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// GenerativeModel は画像生成モデルとの通信を抽象化するインターフェースです。
// go-gemini-client のクライアントと GenaiModel のどちらも満たします。
type GenerativeModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ImageGenerator はビジネスロジック層が利用する統合窓口です。
type ImageGenerator interface {
	// Enhance は画像のノイズや圧縮劣化を取り除いた画像を返します。
	Enhance(ctx context.Context, img domain.ImageData) (domain.ImageData, error)
	// GenerateHairstyle は髪型を置き換えた画像と、実際に送信した正規化済みの元画像を返します。
	GenerateHairstyle(ctx context.Context, img domain.ImageData, cfg domain.HairstyleConfig) (*HairstyleOutput, error)
	// GenerateCharacter はテキストのみからキャラクター画像を生成します。
	GenerateCharacter(ctx context.Context, description, style string) (domain.ImageData, error)
	// GenerateScene は参照画像のキャラクターを新しいシーンに配置した画像を生成します。
	GenerateScene(ctx context.Context, characterImage domain.ImageData, characterDescription, scenePrompt, style string) (domain.ImageData, error)
}

// ImageCacher は、画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// HTTPClient は、URLからデータを取得するためのインターフェースです。
// httpkit.ClientInterface のうち FetchBytes だけを使います。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

var _ HTTPClient = httpkit.ClientInterface(nil)

// ObjectReader は gs:// などのオブジェクトストレージから読み込むためのインターフェースです。
// remoteio.InputReader のうち Open だけを使います。
type ObjectReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

var _ ObjectReader = remoteio.InputReader(nil)
