package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the shorten and resolve routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "shorten-url",
		Method:      http.MethodPost,
		Path:        "/shorten/url",
		Summary:     "Shorten URL",
		Description: "Derives the CRC-32 hash of the URL, stores the mapping and returns the short URL. " +
			"Repeated calls with the same URL return the same short URL.",
		Tags: []string{"URLs"},
	}, urlHandler.ShortenURL)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/{hash}",
		Summary:       "Redirect to original URL",
		Description:   "Permanently redirects to the URL stored for the hash, or returns an empty response.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusMovedPermanently,
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Resolve without hash",
		Description: "Always returns an empty response.",
		Tags:        []string{"URLs"},
		Hidden:      true,
	}, urlHandler.RedirectRoot)
}
