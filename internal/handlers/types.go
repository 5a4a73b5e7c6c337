package handlers

// ShortenURLRequest is the request body for shortening a URL.
type ShortenURLRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// ShortenURLResponse echoes the request with the computed short URL.
type ShortenURLResponse struct {
	Body struct {
		URL      string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"url"`
		ShortURL string `doc:"The full short URL" example:"http://localhost:8888/D701DEAC"     json:"shortUrl"`
	}
}

// RedirectRequest is the request for resolving a hash.
type RedirectRequest struct {
	Hash string `doc:"The short URL hash" example:"D701DEAC" path:"hash"`
}

// RedirectResponse is either a permanent redirect or an empty 200.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
