package storage

import (
	"context"
	"io"
)

// ObjectStorage keeps uploaded news images. Keys are opaque to callers;
// URL must return a link a browser can fetch the object from.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
