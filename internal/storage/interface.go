package storage

import "context"

// AudioStore durably stores raw audio and hands out time-limited URLs.
type AudioStore interface {
	// Upload writes audio bytes under the given bucket path.
	Upload(ctx context.Context, data []byte, path string, contentType string) error

	// CreateSignedURL returns a retrievable URL for a stored object,
	// valid for ttlSeconds.
	CreateSignedURL(ctx context.Context, path string, ttlSeconds int) (string, error)
}
