package previews

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/princinho/sahoadmin/config"
	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("preview not found")

// Store holds image bytes that were attached to a form but not uploaded to
// the catalog yet. Every Put must be matched by a Delete once the image is
// discarded or submitted.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh preview key.
func NewKey() string { return uuid.NewString() }

// ValidKey guards against keys that were not produced by NewKey, so they
// are safe to use as object or file names.
func ValidKey(key string) bool {
	_, err := uuid.Parse(key)
	return err == nil
}

// URL is where the dashboard serves a preview back to its owner.
func URL(key string) string { return "/previews/" + key }

// New picks the backend named by cfg.PreviewStorage.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	fields := logrus.Fields{"previewStorage": cfg.PreviewStorage}
	var (
		store Store
		err   error
	)
	switch cfg.PreviewStorage {
	case "filesystem":
		fields["dir"] = cfg.PreviewDir
		store, err = NewFilesystemStore(cfg.PreviewDir)
	case "gcs":
		fields["bucket"] = cfg.GCSBucket
		store, err = NewGCSStore(ctx, cfg.GCSBucket, cfg.CredentialsFile)
	case "r2":
		fields["bucket"] = cfg.R2Bucket
		store, err = NewR2Store(ctx, cfg.R2Bucket, cfg.R2AccessKey, cfg.R2SecretKey, cfg.R2Endpoint)
	case "", "memory":
		fields["previewStorage"] = "in-memory"
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown PREVIEW_STORAGE %q", cfg.PreviewStorage)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(fields).Info("Use preview storage")
	return store, nil
}
