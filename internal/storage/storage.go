package storage

import (
	"context"
	"io"
)

// ObjectStore holds uploaded image bytes under a key and resolves keys to
// client-usable URLs. Keys, once written, are never modified in place unless
// the store was configured to allow overwrites.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	ResolveURL(ctx context.Context, key string) (string, error)
}
