package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps objects on disk under root/bucket. The HTTP server serves
// root at MediaPathPrefix.
type LocalStore struct {
	root    string
	bucket  string
	baseURL string
}

func NewLocalStore(root string, bucket string, baseURL string) (*LocalStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local storage path is required")
	}
	if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
		return nil, fmt.Errorf("create local bucket %s: %w", bucket, err)
	}
	return &LocalStore{
		root:    root,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, body []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}
	target := filepath.Join(s.root, s.bucket, key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit object %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *LocalStore) URL(key string) string {
	return s.baseURL + MediaPathPrefix + s.bucket + "/" + key
}

// Root is the directory served at MediaPathPrefix.
func (s *LocalStore) Root() string {
	return s.root
}
