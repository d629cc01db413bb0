package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/thedomainai/pl-sanky-diagram/internal/model"
	"github.com/thedomainai/pl-sanky-diagram/internal/sankey"
)

// ErrNotFound 指定IDの抽出結果が存在しない
var ErrNotFound = errors.New("指定された抽出結果が見つかりません")

// Entry 1回の抽出で得られた一式。StatementとRowsは格納後は読み取り専用
type Entry struct {
	ID        string           `json:"id"`
	FileName  string           `json:"file_name"`
	Statement *model.Statement `json:"statement"`
	Rows      []sankey.Row     `json:"rows"`
	CreatedAt time.Time        `json:"created_at"`
}

// MemoryStore 抽出結果をメモリ上に保管する。永続化はしない
type MemoryStore struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewMemoryStore ストアを作成する
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
	}
}

// Put 抽出結果を登録する
func (s *MemoryStore) Put(entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries[entry.ID] = entry
}

// Get IDで抽出結果を取得する
func (s *MemoryStore) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Delete 抽出結果を削除する
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// List 抽出結果を新しい順に返す
func (s *MemoryStore) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Count 保管件数
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear 全件削除
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry)
}
