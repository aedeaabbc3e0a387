package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

type mockSharer struct {
	name string
	url  string
	err  error
}

func (m *mockSharer) Share(ctx context.Context, name string, img domain.ImageData) (string, error) {
	m.name = name
	return m.url, m.err
}

var fixedTime = time.UnixMilli(1760500000123)

func TestFileName(t *testing.T) {
	assert.Equal(t, "astoria-1760500000123.jpg", FileName("", "image/jpeg", fixedTime))
	assert.Equal(t, "hair-1760500000123.png", FileName("hair", "image/png", fixedTime))
	assert.Equal(t, "hair-1760500000123.png", FileName("hair", "application/octet-stream", fixedTime))
	assert.Equal(t, "hair-1760500000123.webp", FileName("hair", "IMAGE/WEBP", fixedTime))

	for _, prefix := range []string{"", " ", ".", "..", "/", "./", "..\\"} {
		assert.Equal(t, "astoria-1760500000123.png", FileName(prefix, "image/png", fixedTime), "prefix %q", prefix)
	}
	assert.Equal(t, "etc-1760500000123.png", FileName("../../etc", "image/png", fixedTime))
	assert.Equal(t, "hidden-1760500000123.png", FileName(".hidden", "image/png", fixedTime))
}

func TestDownloader_Download(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := NewDownloader(dir)
	d.now = func() time.Time { return fixedTime }

	path, err := d.Download(domain.ImageData{Data: []byte("jpeg"), MimeType: "image/jpeg"}, "astoria-hair")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "astoria-hair-1760500000123.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)

	_, err = d.Download(domain.ImageData{}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	t.Run("接頭辞が空でも隠しファイルにならないのだ", func(t *testing.T) {
		path, err := d.Download(domain.ImageData{Data: []byte("png"), MimeType: "image/png"}, "")
		require.NoError(t, err)
		assert.Equal(t, "astoria-1760500000123.png", filepath.Base(path))
		assert.FileExists(t, path)
	})
}

func TestExporter_Share(t *testing.T) {
	ctx := context.Background()
	img := domain.ImageData{Data: []byte("png"), MimeType: "image/png"}

	newExporter := func(t *testing.T, sharer Sharer) *Exporter {
		d := NewDownloader(t.TempDir())
		d.now = func() time.Time { return fixedTime }
		e := NewExporter(sharer, d)
		e.now = func() time.Time { return fixedTime }
		return e
	}

	t.Run("共有できれば URL を返すのだ", func(t *testing.T) {
		sharer := &mockSharer{url: "https://minio.example/astoria/x.png?sig=1"}
		res, err := newExporter(t, sharer).Share(ctx, img, "scene")
		require.NoError(t, err)
		assert.Equal(t, MethodShare, res.Method)
		assert.Equal(t, sharer.url, res.URL)
		assert.Equal(t, "scene-1760500000123.png", sharer.name)
	})

	t.Run("共有に失敗したらダウンロードするのだ", func(t *testing.T) {
		res, err := newExporter(t, &mockSharer{err: errors.New("unreachable")}).Share(ctx, img, "scene")
		require.NoError(t, err)
		assert.Equal(t, MethodDownload, res.Method)
		assert.FileExists(t, res.Path)
	})

	t.Run("共有先がなければダウンロードするのだ", func(t *testing.T) {
		res, err := newExporter(t, nil).Share(ctx, img, "scene")
		require.NoError(t, err)
		assert.Equal(t, MethodDownload, res.Method)
	})
}
