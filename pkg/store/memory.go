package store

import (
	"context"
	"sync"
)

// MemoryStorage はプロセス内のマップに保存する Storage です。
// quota が 0 より大きい場合、値の合計バイト数がそれを超える書き込みを拒否します。
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
	quota int64
}

func NewMemoryStorage(quota int64) *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte), quota: quota}
}

func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStorage) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := int64(len(value))
		for k, v := range s.items {
			if k != key {
				used += int64(len(v))
			}
		}
		if used > s.quota {
			return ErrQuotaExceeded
		}
	}
	s.items[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
