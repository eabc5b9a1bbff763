// Package storage persists uploaded images in a blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"lamsa/config"
	"lamsa/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selected by the bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// blobImageStore implements the ImageStore interface on a gocloud bucket.
type blobImageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// ImageStoreParams holds dependencies for the image store, injected by Fx.
type ImageStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStore opens the configured bucket. Without configuration it falls
// back to an in-memory bucket, good enough for development and tests.
func NewImageStore(params ImageStoreParams) (service.ImageStore, error) {
	bucketURL := "mem://"
	publicBaseURL := ""
	if cfg := params.Config.Images; cfg != nil {
		if cfg.BucketURL != "" {
			bucketURL = cfg.BucketURL
		}
		publicBaseURL = cfg.PublicBaseURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Image bucket opened", slog.String("bucket", bucketURL))

	return &blobImageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Save writes the image under the key and returns the URL it is served from.
func (s *blobImageStore) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()

		return "", errors.Wrap(err, "failed to write image")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish image write")
	}

	s.logger.Debug("Image stored", slog.String("key", key))

	return s.publicBaseURL + "/" + key, nil
}
