// Package blobstore abstracts durable storage for rendered portfolio
// pages. Two implementations exist: an S3-compatible object store and a
// local filesystem store, selected by configuration. Both expose the
// same overwrite-on-put contract and report missing keys with
// common.ErrNotFound.
package blobstore

import (
	"context"
	"fmt"

	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/config"
)

// Store is the blob store gateway. Put fully replaces any prior content
// under the key and returns the externally reachable URL of the blob.
// Get and Delete fail with common.ErrNotFound when the key is absent.
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

func notFound(key string) error {
	return fmt.Errorf("%s: %w", key, common.ErrNotFound)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
