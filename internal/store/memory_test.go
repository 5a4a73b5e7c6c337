package store_test

import (
	"context"
	"testing"

	"github.com/serroba/shorturl/internal/shortener"
	"github.com/serroba/shorturl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Insert(t *testing.T) {
	t.Run("assigns increasing ids", func(t *testing.T) {
		s := store.NewMemoryStore()

		first, err := s.Insert(context.Background(), "D701DEAC", "http://example.com")
		require.NoError(t, err)

		second, err := s.Insert(context.Background(), "46824CE5", "https://openai.com")
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("keeps duplicate hashes", func(t *testing.T) {
		s := store.NewMemoryStore()

		_, _ = s.Insert(context.Background(), "D701DEAC", "http://example.com")
		_, _ = s.Insert(context.Background(), "D701DEAC", "http://example.com")

		assert.Equal(t, 2, s.Count("D701DEAC"))
	})
}

func TestMemoryStore_FindByHash(t *testing.T) {
	t.Run("returns record when found", func(t *testing.T) {
		s := store.NewMemoryStore()
		_, _ = s.Insert(context.Background(), "D701DEAC", "http://example.com")

		rec, err := s.FindByHash(context.Background(), "D701DEAC")

		require.NoError(t, err)
		assert.Equal(t, "http://example.com", rec.Target)
		assert.Equal(t, shortener.Hash("D701DEAC"), rec.Hash)
	})

	t.Run("returns oldest of duplicates", func(t *testing.T) {
		s := store.NewMemoryStore()
		_, _ = s.Insert(context.Background(), "D701DEAC", "http://example.com")
		_, _ = s.Insert(context.Background(), "D701DEAC", "http://example.com")

		rec, err := s.FindByHash(context.Background(), "D701DEAC")

		require.NoError(t, err)
		assert.Equal(t, int64(1), rec.ID)
	})

	t.Run("returns ErrNotFound when hash does not exist", func(t *testing.T) {
		s := store.NewMemoryStore()

		rec, err := s.FindByHash(context.Background(), "notfound")

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestMemoryStore_ExistsByHash(t *testing.T) {
	s := store.NewMemoryStore()

	exists, err := s.ExistsByHash(context.Background(), "D701DEAC")
	require.NoError(t, err)
	assert.False(t, exists)

	_, _ = s.Insert(context.Background(), "D701DEAC", "http://example.com")

	exists, err = s.ExistsByHash(context.Background(), "D701DEAC")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache(t *testing.T) {
	t.Run("set then get", func(t *testing.T) {
		c := store.NewMemoryCache()

		require.NoError(t, c.Set(context.Background(), "D701DEAC", "http://example.com"))

		target, err := c.Get(context.Background(), "D701DEAC")

		require.NoError(t, err)
		assert.Equal(t, "http://example.com", target)
	})

	t.Run("overwrites existing entry", func(t *testing.T) {
		c := store.NewMemoryCache()
		_ = c.Set(context.Background(), "D701DEAC", "https://old.com")
		_ = c.Set(context.Background(), "D701DEAC", "https://new.com")

		target, _ := c.Get(context.Background(), "D701DEAC")

		assert.Equal(t, "https://new.com", target)
	})

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		c := store.NewMemoryCache()

		target, err := c.Get(context.Background(), "D701DEAC")

		assert.Empty(t, target)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("delete evicts entry", func(t *testing.T) {
		c := store.NewMemoryCache()
		_ = c.Set(context.Background(), "D701DEAC", "http://example.com")

		c.Delete("D701DEAC")

		_, err := c.Get(context.Background(), "D701DEAC")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}
