package shortener

import "context"

// Cache is the fast, disposable hash -> target layer.
type Cache interface {
	// Set overwrites the entry for hash unconditionally.
	Set(ctx context.Context, hash Hash, target string) error
	// Get returns ErrNotFound when no entry exists.
	Get(ctx context.Context, hash Hash) (string, error)
}

// Repository is the durable source of truth for short URLs.
type Repository interface {
	// FindByHash returns ErrNotFound when no record exists. When several
	// records share a hash, any one of them may be returned.
	FindByHash(ctx context.Context, hash Hash) (*ShortURL, error)
	ExistsByHash(ctx context.Context, hash Hash) (bool, error)
	// Insert stores a new record and assigns its ID.
	Insert(ctx context.Context, hash Hash, target string) (*ShortURL, error)
}
