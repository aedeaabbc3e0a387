package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/metrics"
)

const (
	// FavoritesKey はお気に入りを保存するエントリ名です。
	FavoritesKey = "astoria_favorites"
	// DefaultFavoritesCapacity はお気に入りの既定の上限件数です。
	DefaultFavoritesCapacity = 100
)

// Favorites は ID をキーにした GenerationResult の集合です。新しいものが先頭に並びます。
// 変更のたびに全件を Storage に書き込みます。書き込みに失敗してもメモリ上の変更は保持します。
type Favorites struct {
	mu       sync.Mutex
	storage  Storage
	capacity int
	items    []domain.GenerationResult
	metrics  *metrics.Recorder
}

// FavoritesOption は Favorites の生成オプションです。
type FavoritesOption func(*Favorites)

// WithCapacity は上限件数を設定します。上限を超えた場合は最も古いものから削除されます。
func WithCapacity(n int) FavoritesOption {
	return func(f *Favorites) {
		if n > 0 {
			f.capacity = n
		}
	}
}

// WithMetrics は書き込み結果を recorder に記録します。
func WithMetrics(recorder *metrics.Recorder) FavoritesOption {
	return func(f *Favorites) { f.metrics = recorder }
}

// LoadFavorites は保存済みのお気に入りを読み込みます。
// エントリが存在しない場合や読み込みに失敗した場合は空の状態で開始します。
func LoadFavorites(ctx context.Context, storage Storage, opts ...FavoritesOption) *Favorites {
	f := &Favorites{storage: storage, capacity: DefaultFavoritesCapacity}
	for _, opt := range opts {
		opt(f)
	}

	data, err := storage.Get(ctx, FavoritesKey)
	switch {
	case errors.Is(err, ErrNotFound):
		return f
	case err != nil:
		slog.WarnContext(ctx, "お気に入りの読み込みに失敗したため空の状態で開始します", "error", err)
		return f
	}

	var items []domain.GenerationResult
	if err := json.Unmarshal(data, &items); err != nil {
		slog.WarnContext(ctx, "保存されたお気に入りが壊れているため空の状態で開始します", "error", err)
		return f
	}
	f.items = dedupe(items)
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
	return f
}

func dedupe(items []domain.GenerationResult) []domain.GenerationResult {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// List はお気に入りのコピーを新しい順に返します。
func (f *Favorites) List() []domain.GenerationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.GenerationResult(nil), f.items...)
}

// Contains は id がお気に入りに含まれているかを返します。
func (f *Favorites) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexOf(id) >= 0
}

// Get は id のお気に入りを返します。
func (f *Favorites) Get(id string) (domain.GenerationResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.indexOf(id); i >= 0 {
		return f.items[i], true
	}
	return domain.GenerationResult{}, false
}

func (f *Favorites) indexOf(id string) int {
	for i, it := range f.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Toggle は result がお気に入りになければ先頭に追加し、あれば削除します。
// 追加した場合は true を返します。err が nil でなくても、メモリ上の変更は反映済みです。
func (f *Favorites) Toggle(ctx context.Context, result domain.GenerationResult) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := false
	if i := f.indexOf(result.ID); i >= 0 {
		f.items = append(f.items[:i:i], f.items[i+1:]...)
	} else {
		f.items = append([]domain.GenerationResult{result}, f.items...)
		if len(f.items) > f.capacity {
			evicted := len(f.items) - f.capacity
			f.items = f.items[:f.capacity]
			slog.InfoContext(ctx, "上限を超えたため古いお気に入りを削除しました", "evicted", evicted, "capacity", f.capacity)
		}
		added = true
	}
	return added, f.persist(ctx)
}

// Remove は id をお気に入りから削除します。存在しない場合は何もしません。
func (f *Favorites) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return nil
	}
	f.items = append(f.items[:i:i], f.items[i+1:]...)
	return f.persist(ctx)
}

// Clear はすべてのお気に入りを削除し、保存済みのエントリも削除します。
func (f *Favorites) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = nil
	return f.persist(ctx)
}

// persist は全件を書き込みます。空の場合はエントリ自体を削除します。
func (f *Favorites) persist(ctx context.Context) error {
	if len(f.items) == 0 {
		if err := f.storage.Delete(ctx, FavoritesKey); err != nil && !errors.Is(err, ErrNotFound) {
			f.metrics.IncStorageWrite("error")
			return fmt.Errorf("お気に入りの削除に失敗しました: %w", err)
		}
		f.metrics.IncStorageWrite("deleted")
		return nil
	}

	data, err := json.Marshal(f.items)
	if err != nil {
		return fmt.Errorf("お気に入りのシリアライズに失敗しました: %w", err)
	}

	if err := f.storage.Put(ctx, FavoritesKey, data); err != nil {
		slog.WarnContext(ctx, "お気に入りの保存に失敗しました。変更はこのセッションの間だけ保持されます",
			"count", len(f.items), "bytes", len(data), "error", err)
		if errors.Is(err, ErrQuotaExceeded) {
			f.metrics.IncStorageWrite("quota_exceeded")
			return domain.NewError(domain.KindStorageQuota, "favorites.save", err)
		}
		f.metrics.IncStorageWrite("error")
		return fmt.Errorf("お気に入りの保存に失敗しました: %w", err)
	}
	f.metrics.IncStorageWrite("success")
	return nil
}
