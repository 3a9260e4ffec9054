// Package blob moves file content in and out of object storage. The
// database owns the metadata; a Store only ever sees opaque keys.
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error

	// PresignGet returns a short-lived URL that serves the blob as an
	// attachment named filename.
	PresignGet(ctx context.Context, key, filename string) (string, error)
}
