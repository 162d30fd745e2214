package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	captionranking "giggles/contexts/contest/caption-ranking"
	captionmemory "giggles/contexts/contest/caption-ranking/adapters/memory"
	captionpostgres "giggles/contexts/contest/caption-ranking/adapters/postgres"
	captionworkers "giggles/contexts/contest/caption-ranking/application/workers"
	captionports "giggles/contexts/contest/caption-ranking/ports"
	deviceregistry "giggles/contexts/contest/device-registry"
	devicememory "giggles/contexts/contest/device-registry/adapters/memory"
	devicepostgres "giggles/contexts/contest/device-registry/adapters/postgres"
	deviceports "giggles/contexts/contest/device-registry/ports"
	submissionqueue "giggles/contexts/contest/submission-queue"
	cacheadapter "giggles/contexts/contest/submission-queue/adapters/cache"
	submissionmemory "giggles/contexts/contest/submission-queue/adapters/memory"
	submissionpostgres "giggles/contexts/contest/submission-queue/adapters/postgres"
	"giggles/contexts/contest/submission-queue/adapters/receipts"
	submissionworkers "giggles/contexts/contest/submission-queue/application/workers"
	"giggles/contexts/contest/submission-queue/domain/entities"
	submissionports "giggles/contexts/contest/submission-queue/ports"
	"giggles/internal/app/bridges"
	"giggles/internal/platform/cache"
	"giggles/internal/platform/config"
	"giggles/internal/platform/db"
	"giggles/internal/platform/httpserver"
	"giggles/internal/platform/messaging"
	"giggles/internal/platform/push"
	"giggles/internal/platform/storage"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const queueSizeCacheTTL = 30 * time.Second

type backgroundWorker interface {
	Start(ctx context.Context) error
}

type APIApp struct {
	server   *httpserver.Server
	bus      *messaging.Bus
	workers  []backgroundWorker
	postgres *db.Postgres
	redis    redis.UniversalClient
	logger   *slog.Logger
}

// persistence holds one repository per context plus the shared clock and id
// source for the selected backend.
type persistence struct {
	submissions    submissionports.Repository
	submissionTime submissionports.Clock
	submissionIDs  submissionports.IDGenerator
	captions       captionports.Repository
	captionTime    captionports.Clock
	captionIDs     captionports.IDGenerator
	devices        deviceports.Repository
	deviceTime     deviceports.Clock
	deviceIDs      deviceports.IDGenerator
	migrators      []db.Migrator
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func NewLogger(cfg config.Config, process string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", cfg.ServiceName, "process", process)
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, "api")
	slog.SetDefault(logger)

	app := &APIApp{logger: logger}
	if err := app.build(ctx, cfg); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *APIApp) build(ctx context.Context, cfg config.Config) error {
	logger := a.logger

	stores, pg, err := openPersistence(ctx, cfg, logger)
	if err != nil {
		return err
	}
	a.postgres = pg

	if strings.TrimSpace(cfg.RedisURL) != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		a.redis = client
		prefix := cfg.ServiceName + ":" + cfg.Environment
		stores.submissions = cacheadapter.NewRepository(stores.submissions, cache.NewCountCache(client, prefix, queueSizeCacheTTL, logger))
	}

	buckets, err := storage.NewBuckets(ctx, cfg, logger)
	if err != nil {
		return err
	}

	a.bus = messaging.NewBus(logger)
	observer := bridges.MetricsObserver{}

	submissions := submissionqueue.NewModule(submissionqueue.Dependencies{
		Repository: stores.submissions,
		Images:     bridges.ImageIntake{Store: buckets.Submissions, Logger: logger},
		Verifiers: map[entities.ReceiptPlatform]submissionports.ReceiptVerifier{
			entities.ReceiptPlatformIOS:     receipts.NewAppleVerifier(cfg.Receipts, logger),
			entities.ReceiptPlatformAndroid: receipts.NewGoogleVerifier(cfg.Receipts, logger),
		},
		Clock:         stores.submissionTime,
		IDGen:         stores.submissionIDs,
		Publisher:     a.bus,
		Observer:      observer,
		SkipProductID: cfg.Receipts.SkipProductID,
		VerifyTimeout: cfg.Receipts.Timeout,
		ListLimit:     cfg.ListPublishedLimit,
		Logger:        logger,
	})
	captions := captionranking.NewModule(captionranking.Dependencies{
		Repository:  stores.captions,
		Submissions: submissions.Handler.Queries,
		Audio:       bridges.AudioIntake{Store: buckets.Captions, Logger: logger},
		Clock:       stores.captionTime,
		IDGen:       stores.captionIDs,
		Publisher:   a.bus,
		Observer:    observer,
		ListLimit:   cfg.ListCaptionsLimit,
		Logger:      logger,
	})
	devices := deviceregistry.NewModule(deviceregistry.Dependencies{
		Repository: stores.devices,
		Clock:      stores.deviceTime,
		IDGen:      stores.deviceIDs,
		Logger:     logger,
	})

	notifier := push.NewFCMClient(cfg.Push, logger)
	a.workers = []backgroundWorker{
		submissionworkers.PromotionNotifier{
			Subscriber:  a.bus,
			Notifier:    notifier,
			Topic:       cfg.Push.PromotionTopic,
			PushTimeout: cfg.Push.Timeout,
			Logger:      logger,
		},
		captionworkers.LikeNotifier{
			Subscriber:  a.bus,
			Devices:     devices.Handler.Queries,
			Notifier:    notifier,
			PushTimeout: cfg.Push.Timeout,
			Logger:      logger,
		},
	}

	opts := httpserver.Options{
		Environment:    cfg.Environment,
		KillSwitch:     cfg.KillSwitch,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	if cfg.Storage.Backend == "local" {
		opts.MediaRoot = cfg.Storage.LocalPath
	}
	a.server = httpserver.New(httpserver.Modules{
		Submissions: submissions,
		Captions:    captions,
		Devices:     devices,
	}, opts, logger, normalizeAddr(cfg.HTTPPort))
	return nil
}

// openPersistence picks Postgres when a DSN is configured and in-memory
// stores otherwise.
func openPersistence(ctx context.Context, cfg config.Config, logger *slog.Logger) (persistence, *db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("POSTGRES_DSN is empty, using in-memory stores",
			"event", "bootstrap_memory_stores",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		submissions := submissionmemory.NewStore(nil)
		captions := captionmemory.NewStore(nil)
		devices := devicememory.NewStore(nil)
		return persistence{
			submissions:    submissions,
			submissionTime: submissions,
			submissionIDs:  submissions,
			captions:       captions,
			captionTime:    captions,
			captionIDs:     captions,
			devices:        devices,
			deviceTime:     devices,
			deviceIDs:      devices,
		}, nil, nil
	}

	pg, err := db.Connect(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return persistence{}, nil, err
	}
	submissions := submissionpostgres.NewRepository(pg.DB, cfg.Tables.Submissions, logger)
	captions := captionpostgres.NewRepository(pg.DB, cfg.Tables.Captions, logger)
	devices := devicepostgres.NewRepository(pg.DB, cfg.Tables.Devices, logger)
	return persistence{
		submissions:    submissions,
		submissionTime: submissionpostgres.SystemClock{},
		submissionIDs:  submissionpostgres.UUIDGenerator{},
		captions:       captions,
		captionTime:    captionpostgres.SystemClock{},
		captionIDs:     captionpostgres.UUIDGenerator{},
		devices:        devices,
		deviceTime:     devicepostgres.SystemClock{},
		deviceIDs:      devicepostgres.UUIDGenerator{},
		migrators:      []db.Migrator{submissions, captions, devices},
	}, pg, nil
}

// Run starts the notifiers and serves HTTP until ctx is cancelled.
func (a *APIApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, worker := range a.workers {
		if err := worker.Start(ctx); err != nil {
			return err
		}
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"workers", len(a.workers),
	)

	err := a.server.Run(ctx)
	cancel()
	a.bus.Wait()
	return err
}

func (a *APIApp) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	return errors.Join(errs...)
}

// RunMigrations creates or updates every table the contest stores in Postgres.
func RunMigrations(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg, "migrate")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return errors.New("POSTGRES_DSN is required")
	}

	stores, pg, err := openPersistence(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.Migrate(ctx, stores.migrators...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("migrations applied",
		"event", "bootstrap_migrations_applied",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"submissions_table", cfg.Tables.Submissions,
		"captions_table", cfg.Tables.Captions,
		"devices_table", cfg.Tables.Devices,
	)
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":3000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
