// Package export は生成画像をファイルとして保存したり、共有用 URL を発行したりします。
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// DefaultPrefix はファイル名の既定の接頭辞です。
const DefaultPrefix = "astoria"

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// Extension は MIME タイプに対応する拡張子を返します。不明な場合は png です。
func Extension(mimeType string) string {
	if ext, ok := extensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return "png"
}

// FileName は "<prefix>-<unix-ms>.<ext>" 形式のファイル名を返します。
// prefix のディレクトリ部分と先頭のドットは取り除かれ、何も残らなければ DefaultPrefix を使います。
func FileName(prefix, mimeType string, t time.Time) string {
	return fmt.Sprintf("%s-%d.%s", sanitizePrefix(prefix), t.UnixMilli(), Extension(mimeType))
}

func sanitizePrefix(prefix string) string {
	prefix = strings.TrimSpace(strings.ReplaceAll(prefix, "\\", "/"))
	if prefix == "" {
		return DefaultPrefix
	}
	prefix = strings.TrimLeft(filepath.Base(prefix), ".")
	if prefix == "" || prefix == "/" {
		return DefaultPrefix
	}
	return prefix
}

// Downloader は画像をディレクトリに書き出します。
type Downloader struct {
	dir string
	now func() time.Time
}

func NewDownloader(dir string) *Downloader {
	return &Downloader{dir: dir, now: time.Now}
}

// Download は img を書き出し、作成したファイルのパスを返します。
func (d *Downloader) Download(img domain.ImageData, prefix string) (string, error) {
	if img.IsEmpty() {
		return "", fmt.Errorf("画像が空です: %w", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("出力先の作成に失敗しました: %w", err)
	}
	path := filepath.Join(d.dir, FileName(prefix, img.MimeType, d.now()))
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("ファイルの書き込みに失敗しました: %w", err)
	}
	return path, nil
}
