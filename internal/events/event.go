package events

import (
	"context"
	"time"

	"github.com/serroba/shorturl/internal/messaging"
	"github.com/serroba/shorturl/internal/shortener"
)

// TopicURLShortened carries one event per newly stored short URL.
const TopicURLShortened = "shorturl.created"

// URLShortened is emitted after a durable record is inserted.
type URLShortened struct {
	ID        int64     `json:"id"`
	Hash      string    `json:"hash"`
	Target    string    `json:"target"`
	ShortURL  string    `json:"shortUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCreatedHook adapts a publish function to a shortener.CreatedHook.
// publicHost is prepended to the hash to fill ShortURL.
func NewCreatedHook(
	publish messaging.Publish[URLShortened],
	publicHost string,
	now func() time.Time,
) shortener.CreatedHook {
	return func(ctx context.Context, record *shortener.ShortURL) error {
		return publish(ctx, &URLShortened{
			ID:        record.ID,
			Hash:      string(record.Hash),
			Target:    record.Target,
			ShortURL:  publicHost + string(record.Hash),
			CreatedAt: now().UTC(),
		})
	}
}
