package service

import (
	"context"
	"io"
)

// ImageStore persists uploaded salon/service images and returns a public URL.
type ImageStore interface {
	// Save writes the image under the given key and returns its URL.
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
}
