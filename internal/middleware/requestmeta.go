package middleware

import (
	"net"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl/internal/handlers"
	"github.com/serroba/shorturl/internal/messaging"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// IDGenerator returns a new unique request id.
type IDGenerator func() string

// RequestMeta is a middleware that tags each request with an id, stores client
// metadata in the context and writes one access log line per request.
// An incoming X-Request-ID header is reused.
func RequestMeta(logger *zap.Logger, newID IDGenerator) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		requestID := ctx.Header(HeaderRequestID)
		if requestID == "" {
			requestID = newID()
		}

		meta := handlers.RequestMeta{
			RequestID: requestID,
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		newCtx = messaging.ContextWithCorrelationID(newCtx, requestID)
		ctx = huma.WithContext(ctx, newCtx)

		ctx.SetHeader(HeaderRequestID, requestID)

		next(ctx)

		logger.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.URL().Path),
			zap.Int("status", ctx.Status()),
			zap.String("client_ip", meta.ClientIP),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may hold a chain; the first entry is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
