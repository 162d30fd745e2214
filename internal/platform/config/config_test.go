package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "giggles", cfg.ServiceName)
	assert.Equal(t, EnvironmentDevelopment, cfg.Environment)
	assert.Equal(t, "submissionsStaging", cfg.Tables.Submissions)
	assert.Equal(t, "captionsStaging", cfg.Tables.Captions)
	assert.Equal(t, "usersStaging", cfg.Tables.Devices)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "com.superserious.giggles.now", cfg.Receipts.SkipProductID)
	assert.Equal(t, 5*time.Second, cfg.Receipts.Timeout)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.False(t, cfg.IsProduction())
}

func TestParseProductionTableNames(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("BASE_URL", "https://giggles.superserious.co/")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://giggles.superserious.co", cfg.BaseURL)
	assert.Equal(t, "submissions", cfg.Tables.Submissions)
	assert.Equal(t, "captions", cfg.Tables.Captions)
	assert.Equal(t, "users", cfg.Tables.Devices)
}

func TestParseExplicitTableNamesWin(t *testing.T) {
	t.Setenv("TABLE_SUBMISSIONS", "subs_custom")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "subs_custom", cfg.Tables.Submissions)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown environment", "ENVIRONMENT", "moon"},
		{"bad base url", "BASE_URL", "not a url"},
		{"unknown storage backend", "STORAGE_BACKEND", "ftp"},
		{"zero upload limit", "MAX_UPLOAD_BYTES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestParseS3RequiresBuckets(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")
	_, err := Parse()
	require.Error(t, err)

	t.Setenv("STORAGE_SUBMISSIONS_BUCKET", "giggles-submissions")
	t.Setenv("STORAGE_CAPTIONS_BUCKET", "giggles-captions")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "giggles-submissions", cfg.Storage.SubmissionsBucket)
}
