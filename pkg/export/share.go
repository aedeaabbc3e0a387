package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// DefaultPresignTTL は共有 URL の既定の有効期間です。
const DefaultPresignTTL = 24 * time.Hour

// Sharer は画像をアップロードし、共有用の URL を返します。
type Sharer interface {
	Share(ctx context.Context, name string, img domain.ImageData) (string, error)
}

// MinIOConfig は MinIOSharer の接続設定です。
type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PresignTTL time.Duration
}

// MinIOSharer は MinIO (S3 互換) に画像を置き、署名付き URL を発行します。
type MinIOSharer struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

func NewMinIOSharer(cfg MinIOConfig) (*MinIOSharer, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	return &MinIOSharer{client: client, bucket: cfg.Bucket, ttl: ttl}, nil
}

// EnsureBucket はバケットがなければ作成します。
func (s *MinIOSharer) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinIOSharer) Share(ctx context.Context, name string, img domain.ImageData) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(img.Data), int64(len(img.Data)), minio.PutObjectOptions{
		ContentType: img.MimeType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, s.ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", name, err)
	}
	return u.String(), nil
}

// Method は共有に使われた手段です。
type Method string

const (
	MethodShare    Method = "share"
	MethodDownload Method = "download"
)

// Result は Exporter.Share の結果です。URL と Path のどちらか一方が設定されます。
type Result struct {
	Method Method `json:"method"`
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Exporter は共有を試み、使えない場合はダウンロードに切り替えます。
type Exporter struct {
	sharer     Sharer
	downloader *Downloader
	now        func() time.Time
}

// NewExporter は Exporter を返します。sharer は nil を許容します。
func NewExporter(sharer Sharer, downloader *Downloader) *Exporter {
	return &Exporter{sharer: sharer, downloader: downloader, now: time.Now}
}

// Download は画像をファイルとして書き出します。
func (e *Exporter) Download(img domain.ImageData, prefix string) (Result, error) {
	path, err := e.downloader.Download(img, prefix)
	if err != nil {
		return Result{}, err
	}
	return Result{Method: MethodDownload, Path: path}, nil
}

// Share は画像を共有します。共有先が未設定か共有に失敗した場合はダウンロードします。
func (e *Exporter) Share(ctx context.Context, img domain.ImageData, prefix string) (Result, error) {
	if img.IsEmpty() {
		return Result{}, fmt.Errorf("画像が空です: %w", domain.ErrInvalidInput)
	}
	if e.sharer != nil {
		url, err := e.sharer.Share(ctx, FileName(prefix, img.MimeType, e.now()), img)
		if err == nil {
			return Result{Method: MethodShare, URL: url}, nil
		}
		slog.WarnContext(ctx, "共有に失敗したためダウンロードに切り替えます", "error", err)
	}
	return e.Download(img, prefix)
}
