package events

import (
	"context"

	"github.com/serroba/shorturl/internal/messaging"
	"go.uber.org/zap"
)

// NewAuditHandler returns a handler that writes one audit line per new mapping.
func NewAuditHandler(logger *zap.Logger) messaging.Handler[URLShortened] {
	return func(ctx context.Context, event *URLShortened) error {
		logger.Info("short url created",
			zap.Int64("id", event.ID),
			zap.String("hash", event.Hash),
			zap.String("target", event.Target),
			zap.String("shortUrl", event.ShortURL),
			zap.Time("createdAt", event.CreatedAt),
			zap.String("correlation_id", messaging.CorrelationIDFromContext(ctx)),
		)

		return nil
	}
}
