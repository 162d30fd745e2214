package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giggles/internal/platform/config"
)

func TestLocalStorePutWritesObjectAndReturnsMediaURL(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "submissions", "http://localhost:3000/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "abc.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/media/submissions/abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(root, "submissions", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLocalStoreRejectsTraversalKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "captions", "http://localhost:3000")
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.aac", "/abs.aac", `dir\file.aac`} {
		_, err := store.Put(context.Background(), key, []byte("x"), "audio/aac")
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestLocalStoreHonoursCancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "captions", "http://localhost:3000")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Put(ctx, "a.aac", []byte("x"), "audio/aac")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBucketsLocalBackend(t *testing.T) {
	cfg := config.Config{
		BaseURL: "http://localhost:3000",
		Storage: config.StorageConfig{Backend: "local", LocalPath: t.TempDir()},
	}
	buckets, err := NewBuckets(context.Background(), cfg, nil)
	require.NoError(t, err)

	url, err := buckets.Captions.Put(context.Background(), "c.aac", []byte("aac"), "audio/aac")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/media/captions/c.aac", url)
}

func TestPublicBucketURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "aws virtual host",
			cfg:  config.StorageConfig{Region: "us-west-2"},
			want: "https://giggles-submissions.s3.us-west-2.amazonaws.com",
		},
		{
			name: "path style endpoint",
			cfg:  config.StorageConfig{Region: "eu-west-1", S3Endpoint: "http://minio:9000/", S3UsePathStyle: true},
			want: "http://minio:9000/giggles-submissions",
		},
		{
			name: "explicit public endpoint",
			cfg:  config.StorageConfig{Region: "eu-west-1", S3PublicEndpoint: "https://cdn.example.com"},
			want: "https://cdn.example.com/giggles-submissions",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBucketURL(tt.cfg, "giggles-submissions"))
		})
	}
}
