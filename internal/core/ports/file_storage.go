package ports

import "context"

// FileStorage is object storage addressed by slash-separated keys.
type FileStorage interface {
	// Download returns the object body. Missing keys yield an ObjectNotFoundError.
	Download(ctx context.Context, key string) ([]byte, error)

	// Upload creates or replaces the object at key.
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

// RateLimiter admits or rejects one unit of work for a caller key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
