package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl/internal/shortener"
	"go.uber.org/zap"
)

// URLService is the shorten/resolve core consumed by the HTTP layer.
type URLService interface {
	Shorten(ctx context.Context, rawURL string) (*shortener.Shortened, error)
	Resolve(ctx context.Context, hash shortener.Hash) (string, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service    URLService
	publicHost string
	logger     *zap.Logger
}

// NewURLHandler creates a new URL handler. publicHost is prepended verbatim
// to the hash to build the short URL.
func NewURLHandler(service URLService, publicHost string, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service:    service,
		publicHost: publicHost,
		logger:     logger,
	}
}

func (h *URLHandler) ShortenURL(ctx context.Context, req *ShortenURLRequest) (*ShortenURLResponse, error) {
	log := h.requestLogger(ctx)
	log.Info("shorten request received", zap.String("url", req.Body.URL))

	result, err := h.service.Shorten(ctx, req.Body.URL)
	if err != nil {
		log.Error("failed to shorten url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to shorten url")
	}

	resp := &ShortenURLResponse{}
	resp.Body.URL = result.URL
	resp.Body.ShortURL = h.publicHost + string(result.Hash)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	return h.resolve(ctx, shortener.Hash(req.Hash))
}

// RedirectRoot serves a resolve request without a hash segment.
func (h *URLHandler) RedirectRoot(ctx context.Context, _ *struct{}) (*RedirectResponse, error) {
	return h.resolve(ctx, "")
}

func (h *URLHandler) resolve(ctx context.Context, hash shortener.Hash) (*RedirectResponse, error) {
	log := h.requestLogger(ctx).With(zap.String("hash", string(hash)))
	log.Info("resolve request received")

	target, err := h.service.Resolve(ctx, hash)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			log.Info("hash not found", zap.Bool("well_formed", hash.Valid()))

			return &RedirectResponse{Status: http.StatusOK}, nil
		}

		log.Error("failed to resolve hash", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to resolve url")
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = target

	return resp, nil
}

func (h *URLHandler) requestLogger(ctx context.Context) *zap.Logger {
	meta := RequestMetaFromContext(ctx)
	if meta.RequestID == "" {
		return h.logger
	}

	return h.logger.With(zap.String("request_id", meta.RequestID))
}
