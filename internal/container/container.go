package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shorturl/internal/config"
	"github.com/serroba/shorturl/internal/events"
	"github.com/serroba/shorturl/internal/handlers"
	"github.com/serroba/shorturl/internal/health"
	"github.com/serroba/shorturl/internal/messaging"
	"github.com/serroba/shorturl/internal/middleware"
	"github.com/serroba/shorturl/internal/shortener"
	"github.com/serroba/shorturl/internal/store"
	"go.uber.org/zap"
)

const (
	requestIDLength = 16
	auditGroup      = "shorturl-audit"
	startupTimeout  = 10 * time.Second
)

// Options are the server command line flags. Empty connection settings fall
// back to PUBLIC_HOST, REDIS_ADDR and DATABASE_URL.
type Options struct {
	Port        int    `default:"8888" help:"Port to listen on"                                  short:"p"`
	PublicHost  string `               help:"Prefix prepended to hashes, e.g. https://sho.rt/"`
	RedisAddr   string `               help:"Redis server address"                               short:"r"`
	DatabaseURL string `               help:"PostgreSQL connection URL"                          short:"d"`
	LogFormat   string `               help:"Log format: console or json"`
}

// RedisConnection owns the Redis client shared by the cache, health checks and event streams.
type RedisConnection struct {
	*redis.Client
}

// Shutdown closes the client.
func (c *RedisConnection) Shutdown() error {
	return c.Close()
}

// PostgresConnection owns the pgx pool.
type PostgresConnection struct {
	*pgxpool.Pool
}

// Shutdown closes the pool.
func (c *PostgresConnection) Shutdown() error {
	c.Close()

	return nil
}

// SettingsPackage provides settings read from the environment, overridden by
// non-empty Options when they are registered.
func SettingsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*config.Settings, error) {
		settings, err := config.FromEnv()
		if err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}

		if opts, err := do.Invoke[*Options](i); err == nil {
			settings.Merge(config.Settings{
				PublicHost:  opts.PublicHost,
				RedisAddr:   opts.RedisAddr,
				DatabaseURL: opts.DatabaseURL,
				LogFormat:   opts.LogFormat,
			})
		}

		return settings, nil
	})
}

// LoggerPackage provides the application logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		settings := do.MustInvoke[*config.Settings](i)

		if settings.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis connection.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisConnection, error) {
		settings := do.MustInvoke[*config.Settings](i)

		client := redis.NewClient(&redis.Options{
			Addr: settings.RedisAddr,
		})

		return &RedisConnection{Client: client}, nil
	})
}

// PostgresPackage provides the pgx pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*PostgresConnection, error) {
		settings := do.MustInvoke[*config.Settings](i)

		pool, err := pgxpool.New(context.Background(), settings.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}

		return &PostgresConnection{Pool: pool}, nil
	})
}

// RepositoryPackage provides the cache and durable store adapters. The
// durable schema is created on first use.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.RedisCache, error) {
		conn := do.MustInvoke[*RedisConnection](i)

		return store.NewRedisCache(conn.Client), nil
	})

	do.Provide(injector, func(i *do.Injector) (*store.PostgresStore, error) {
		conn := do.MustInvoke[*PostgresConnection](i)
		s := store.NewPostgresStore(conn.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		if err := s.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		return s, nil
	})
}

// PublisherGroupPackage provides the Redis stream publisher.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		conn := do.MustInvoke[*RedisConnection](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client:     conn.Client,
				Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ServicePackage provides the resolution service.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		settings := do.MustInvoke[*config.Settings](i)
		logger := do.MustInvoke[*zap.Logger](i)
		cache := do.MustInvoke[*store.RedisCache](i)
		durable := do.MustInvoke[*store.PostgresStore](i)
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		publish := messaging.NewPublishFunc[events.URLShortened](group.Publisher(), events.TopicURLShortened)

		return shortener.NewService(cache, durable,
			shortener.WithLogger(logger.Named("shortener")),
			shortener.WithCreatedHook(events.NewCreatedHook(publish, settings.PublicHost, time.Now)),
		), nil
	})
}

// HTTPPackage provides the router and the huma API with all routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		settings := do.MustInvoke[*config.Settings](i)
		logger := do.MustInvoke[*zap.Logger](i)
		service := do.MustInvoke[*shortener.Service](i)
		redisConn := do.MustInvoke[*RedisConnection](i)
		pgConn := do.MustInvoke[*PostgresConnection](i)

		newID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, fmt.Errorf("create request id generator: %w", err)
		}

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(logger.Named("http"), newID))

		handlers.RegisterRoutes(api, handlers.NewURLHandler(service, settings.PublicHost, logger.Named("http")))
		health.RegisterRoutes(api, health.NewHandler(
			health.NewRedisChecker(redisConn.Client),
			health.NewPostgresChecker(pgConn.Pool),
		))

		return api, nil
	})
}

// ConsumerGroupPackage provides the consumer group writing the audit log of
// created short URLs.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		conn := do.MustInvoke[*RedisConnection](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        conn.Client,
				Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
				ConsumerGroup: auditGroup,
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicURLShortened,
			events.NewAuditHandler(logger.Named("audit")),
			logger,
		))

		return group, nil
	})
}
