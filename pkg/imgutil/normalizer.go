package imgutil

import (
	"bytes"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// Normalized は Normalize の結果です。
type Normalized struct {
	domain.ImageData
	Width  int
	Height int
	// Fallback はデコードに失敗して元のバイト列をそのまま返した場合に設定されます。
	// その場合でも ImageData は送信に使えます。
	Fallback error
}

// Normalize は任意の画像を、長辺が maxDimension 以下で幅・高さが偶数の JPEG に変換します。
// アスペクト比は保持されます。
// デコードできない入力は失敗させず、元のバイト列と既定の MIME タイプで返します。
func Normalize(data []byte, maxDimension, quality int) *Normalized {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fallback(data, err)
	}

	sb := src.Bounds()
	w, h := FitDimensions(sb.Dx(), sb.Dy(), maxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG はアルファを持たないため白で下地を塗る
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)

	encoded, err := encodeJPEG(dst, quality)
	if err != nil {
		return fallback(data, err)
	}

	return &Normalized{
		ImageData: domain.ImageData{Data: encoded, MimeType: "image/jpeg"},
		Width:     w,
		Height:    h,
	}
}

func fallback(data []byte, cause error) *Normalized {
	return &Normalized{
		ImageData: domain.ImageData{Data: data, MimeType: domain.DefaultMimeType},
		Fallback:  domain.NewError(domain.KindDecodeFailure, "normalize", cause),
	}
}

// FitDimensions は長辺を maxDimension に収め、両辺を偶数に切り下げた寸法を返します。
// maxDimension が 0 以下の場合は縮小しません。
func FitDimensions(width, height, maxDimension int) (int, int) {
	if maxDimension > 0 && (width > maxDimension || height > maxDimension) {
		if width > height {
			height = int(math.Round(float64(height) * float64(maxDimension) / float64(width)))
			width = maxDimension
		} else {
			width = int(math.Round(float64(width) * float64(maxDimension) / float64(height)))
			height = maxDimension
		}
	}

	width -= width % 2
	height -= height % 2
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	return width, height
}
