package shortener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// CreatedHook is notified after a durable record has been inserted.
type CreatedHook func(ctx context.Context, record *ShortURL) error

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to trace shorten and resolve steps.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCreatedHook registers a hook called once per inserted record.
// Hook failures are logged and do not fail the shorten call.
func WithCreatedHook(hook CreatedHook) Option {
	return func(s *Service) {
		s.onCreated = hook
	}
}

// Service orchestrates shorten and resolve over a cache and a durable store.
//
// Shorten writes the cache first and then inserts into the durable store only
// when no record exists for the hash. The existence check and the insert are
// not atomic: concurrent first-time shortens of one URL may insert duplicate
// rows, which resolve tolerates.
//
// Resolve reads the cache and falls back to the durable store on a miss. A
// durable hit is not written back into the cache.
type Service struct {
	cache     Cache
	repo      Repository
	logger    *zap.Logger
	onCreated CreatedHook
}

// NewService creates a resolution service over the given stores.
func NewService(cache Cache, repo Repository, opts ...Option) *Service {
	s := &Service{
		cache:  cache,
		repo:   repo,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shorten derives the hash for rawURL, refreshes the cache and creates the
// durable record if it does not exist yet. The URL is not validated.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*Shortened, error) {
	hash := HashURL(rawURL)
	log := s.logger.With(zap.String("hash", string(hash)))

	log.Debug("updating cache", zap.String("url", rawURL))

	if err := s.cache.Set(ctx, hash, rawURL); err != nil {
		return nil, fmt.Errorf("cache set %s: %w", hash, err)
	}

	exists, err := s.repo.ExistsByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", hash, err)
	}

	result := &Shortened{URL: rawURL, Hash: hash}

	if exists {
		log.Debug("record already stored")

		return result, nil
	}

	log.Debug("writing record", zap.String("target", rawURL))

	record, err := s.repo.Insert(ctx, hash, rawURL)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", hash, err)
	}

	result.Created = true

	if s.onCreated != nil {
		if err := s.onCreated(ctx, record); err != nil {
			log.Error("created hook failed", zap.Int64("id", record.ID), zap.Error(err))
		}
	}

	return result, nil
}

// Resolve returns the target URL for hash. An empty hash and an unknown hash
// both yield ErrNotFound.
func (s *Service) Resolve(ctx context.Context, hash Hash) (string, error) {
	if hash == "" {
		return "", ErrNotFound
	}

	log := s.logger.With(zap.String("hash", string(hash)))

	target, err := s.cache.Get(ctx, hash)
	if err == nil {
		log.Debug("cache hit", zap.String("target", target))

		return target, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("cache get %s: %w", hash, err)
	}

	log.Debug("cache miss, reading durable store")

	record, err := s.repo.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug("hash not found")

			return "", ErrNotFound
		}

		return "", fmt.Errorf("find %s: %w", hash, err)
	}

	log.Debug("durable hit", zap.String("target", record.Target))

	return record.Target, nil
}
