package store

import (
	"context"
	"sync"

	"github.com/serroba/shorturl/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
// Like the Postgres table it does not enforce hash uniqueness.
type MemoryStore struct {
	mu      sync.RWMutex
	records []shortener.ShortURL
}

// NewMemoryStore creates a new in-memory durable store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) FindByHash(_ context.Context, hash shortener.Hash) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if rec.Hash == hash {
			return &rec, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *MemoryStore) ExistsByHash(ctx context.Context, hash shortener.Hash) (bool, error) {
	_, err := m.FindByHash(ctx, hash)

	return err == nil, nil
}

func (m *MemoryStore) Insert(_ context.Context, hash shortener.Hash, target string) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := shortener.ShortURL{
		ID:     int64(len(m.records) + 1),
		Hash:   hash,
		Target: target,
	}
	m.records = append(m.records, rec)

	return &rec, nil
}

// Count returns the number of records stored for hash.
func (m *MemoryStore) Count(hash shortener.Hash) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0

	for _, rec := range m.records {
		if rec.Hash == hash {
			n++
		}
	}

	return n
}

// MemoryCache is an in-memory implementation of shortener.Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[shortener.Hash]string
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[shortener.Hash]string),
	}
}

func (c *MemoryCache) Set(_ context.Context, hash shortener.Hash, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[hash] = target

	return nil
}

func (c *MemoryCache) Get(_ context.Context, hash shortener.Hash) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	target, ok := c.entries[hash]
	if !ok {
		return "", shortener.ErrNotFound
	}

	return target, nil
}

// Delete drops the entry for hash, as an eviction would.
func (c *MemoryCache) Delete(hash shortener.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, hash)
}

var (
	_ shortener.Repository = (*MemoryStore)(nil)
	_ shortener.Cache      = (*MemoryCache)(nil)
)
