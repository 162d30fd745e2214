package bootstrap

import (
	"context"
	"testing"

	"giggles/internal/platform/config"
)

func TestNormalizeAddr(t *testing.T) {
	tests := map[string]string{
		"":      ":3000",
		"8080":  ":8080",
		":9000": ":9000",
		" 80 ":  ":80",
	}
	for in, want := range tests {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenPersistenceFallsBackToMemory(t *testing.T) {
	cfg := config.Config{ServiceName: "giggles", Environment: config.EnvironmentDevelopment, LogLevel: "debug"}

	stores, pg, err := openPersistence(context.Background(), cfg, NewLogger(cfg, "test"))
	if err != nil {
		t.Fatalf("expected memory stores, got %v", err)
	}
	if pg != nil {
		t.Fatal("expected no postgres handle without a DSN")
	}
	if stores.submissions == nil || stores.captions == nil || stores.devices == nil {
		t.Fatalf("expected every repository to be set: %+v", stores)
	}
	if len(stores.migrators) != 0 {
		t.Fatalf("memory stores need no migrations, got %d", len(stores.migrators))
	}
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	logger := NewLogger(config.Config{LogLevel: "warn", Environment: config.EnvironmentProduction}, "api")
	if logger.Enabled(context.Background(), -4) {
		t.Fatal("debug should be disabled at warn level")
	}
	if !logger.Enabled(context.Background(), 8) {
		t.Fatal("error should be enabled at warn level")
	}
}
