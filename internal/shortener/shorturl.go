package shortener

import "errors"

// ErrNotFound is returned when a hash has no mapping in a store.
var ErrNotFound = errors.New("short url not found")

// Hash is the 8-character short identifier derived from a target URL.
type Hash string

// ShortURL is the durable hash -> target record.
type ShortURL struct {
	ID     int64
	Hash   Hash
	Target string
}

// Shortened is the outcome of a shorten call.
type Shortened struct {
	URL     string
	Hash    Hash
	Created bool // a durable record was inserted by this call
}
