package health_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error {
	return m.err
}

func TestNewHandler(t *testing.T) {
	handler := health.NewHandler(&mockChecker{}, &mockChecker{})

	assert.NotNil(t, handler)
}

func TestHandler_Check(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name        string
		redisErr    error
		postgresErr error
		status      string
		redis       string
		postgres    string
	}{
		{name: "all healthy", status: "ok", redis: "healthy", postgres: "healthy"},
		{name: "redis down", redisErr: down, status: "degraded", redis: "unhealthy", postgres: "healthy"},
		{name: "postgres down", postgresErr: down, status: "degraded", redis: "healthy", postgres: "unhealthy"},
		{
			name: "both down", redisErr: down, postgresErr: down,
			status: "degraded", redis: "unhealthy", postgres: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.NewHandler(&mockChecker{err: tt.redisErr}, &mockChecker{err: tt.postgresErr})

			resp, err := handler.Check(context.Background(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Body.Status)
			assert.Equal(t, tt.redis, resp.Body.Redis)
			assert.Equal(t, tt.postgres, resp.Body.Postgres)
		})
	}
}

func TestRedisChecker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	t.Run("Ping returns nil when redis is available", func(t *testing.T) {
		checker := health.NewRedisChecker(client)

		err := checker.Ping(context.Background())

		assert.NoError(t, err)
	})
}
