// Package store はお気に入りをセッションをまたいで保存するための永続化層です。
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound はキーに対応するエントリが存在しないことを示します。
	ErrNotFound = errors.New("store: entry not found")
	// ErrQuotaExceeded は書き込み後の合計サイズが容量を超えることを示します。
	ErrQuotaExceeded = errors.New("store: quota exceeded")
)

// Storage は名前付きエントリを丸ごと読み書きするキーバリューストアです。
// ブラウザの localStorage と同じく、1つのキーに1つの値を保持します。
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}
