package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultMimeType は MIME タイプが不明な画像に割り当てる既定値です。
const DefaultMimeType = "image/png"

// ImageData はエンコード済みの画像バイト列と MIME タイプの組です。
// JSON 上では data URL 文字列として表現されます。
type ImageData struct {
	Data     []byte
	MimeType string
}

// IsEmpty は画像データが空かどうかを返します。
func (i ImageData) IsEmpty() bool {
	return len(i.Data) == 0
}

// DataURL は "data:<mime>;base64,<payload>" 形式の文字列に変換します。
func (i ImageData) DataURL() string {
	mime := i.MimeType
	if mime == "" {
		mime = DefaultMimeType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURL は data URL もしくは素の base64 文字列を ImageData に変換します。
// プレフィックスがない場合の MIME タイプは DefaultMimeType です。
func ParseDataURL(s string) (ImageData, error) {
	mime := DefaultMimeType
	payload := strings.TrimSpace(s)
	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok {
			return ImageData{}, fmt.Errorf("data URL にペイロードがありません: %w", ErrInvalidInput)
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return ImageData{}, fmt.Errorf("base64 以外の data URL は未対応です: %w", ErrInvalidInput)
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			mime = m
		}
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageData{}, fmt.Errorf("base64 のデコードに失敗しました: %w: %w", ErrInvalidInput, err)
	}
	return ImageData{Data: data, MimeType: mime}, nil
}

func (i ImageData) MarshalJSON() ([]byte, error) {
	if i.IsEmpty() {
		return []byte(`""`), nil
	}
	return json.Marshal(i.DataURL())
}

func (i *ImageData) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*i = ImageData{}
		return nil
	}
	parsed, err := ParseDataURL(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
}

// Image は ImageResponse を ImageData として返します。
func (r *ImageResponse) Image() ImageData {
	return ImageData{Data: r.Data, MimeType: r.MimeType}
}
