// Package studio は画面の操作単位をまとめたセッションです。
// 生成中の状態管理、履歴、お気に入り、キャラクターとシーンの関連を扱います。
package studio

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryCapacity は履歴の既定の上限件数です。
const DefaultHistoryCapacity = 50

// State は生成処理の進行状況です。
type State int

const (
	StateIdle State = iota
	StateEnhancing
	StateGenerating
)

func (s State) String() string {
	switch s {
	case StateEnhancing:
		return "enhancing"
	case StateGenerating:
		return "generating"
	default:
		return "idle"
	}
}

// Option はスタジオの生成オプションです。
type Option func(*options)

type options struct {
	now             func() time.Time
	newID           func() string
	historyCapacity int
}

func defaultOptions() options {
	return options{
		now:             time.Now,
		newID:           uuid.NewString,
		historyCapacity: DefaultHistoryCapacity,
	}
}

// WithClock は時刻の取得方法を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator は ID の採番方法を差し替えます。
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithHistoryCapacity は履歴の上限件数を設定します。
func WithHistoryCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historyCapacity = n
		}
	}
}
