package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"giggles/internal/platform/config"
)

// MediaPathPrefix is where the HTTP server exposes locally stored objects.
const MediaPathPrefix = "/media/"

var ErrInvalidKey = errors.New("invalid object key")

// ObjectStore writes one media object and returns the URL clients fetch it from.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Buckets groups the two media buckets the contest writes to.
type Buckets struct {
	Submissions ObjectStore
	Captions    ObjectStore
}

// NewBuckets builds the configured backend for both buckets.
func NewBuckets(ctx context.Context, cfg config.Config, logger *slog.Logger) (Buckets, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Storage.Backend {
	case "s3":
		submissions, err := NewS3Store(ctx, cfg.Storage, cfg.Storage.SubmissionsBucket, logger)
		if err != nil {
			return Buckets{}, err
		}
		captions, err := NewS3Store(ctx, cfg.Storage, cfg.Storage.CaptionsBucket, logger)
		if err != nil {
			return Buckets{}, err
		}
		return Buckets{Submissions: submissions, Captions: captions}, nil
	case "", "local":
		submissions, err := NewLocalStore(cfg.Storage.LocalPath, "submissions", cfg.BaseURL)
		if err != nil {
			return Buckets{}, err
		}
		captions, err := NewLocalStore(cfg.Storage.LocalPath, "captions", cfg.BaseURL)
		if err != nil {
			return Buckets{}, err
		}
		logger.Info("local media storage enabled",
			"event", "storage_local_enabled",
			"module", "internal/platform/storage",
			"layer", "platform",
			"path", cfg.Storage.LocalPath,
		)
		return Buckets{Submissions: submissions, Captions: captions}, nil
	default:
		return Buckets{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func validateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	return nil
}
