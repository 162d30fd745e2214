package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentStaging     = "staging"
	EnvironmentProduction  = "production"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"giggles"`
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"3000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:3000" validate:"required,url"`

	PostgresDSN string `env:"POSTGRES_DSN"`
	RedisURL    string `env:"REDIS_URL"`

	Tables  TableNames    `envPrefix:"TABLE_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`

	MaxUploadBytes     int64 `env:"MAX_UPLOAD_BYTES" envDefault:"2097152" validate:"gt=0"`
	ListPublishedLimit int   `env:"LIST_PUBLISHED_LIMIT" envDefault:"365" validate:"gt=0"`
	ListCaptionsLimit  int   `env:"LIST_CAPTIONS_LIMIT" envDefault:"1000" validate:"gt=0"`
	KillSwitch         bool  `env:"KILL_SWITCH" envDefault:"false"`

	Receipts ReceiptConfig `envPrefix:"RECEIPTS_"`
	Push     PushConfig    `envPrefix:"PUSH_"`
}

// TableNames are resolved per environment when left empty.
type TableNames struct {
	Submissions string `env:"SUBMISSIONS"`
	Captions    string `env:"CAPTIONS"`
	Devices     string `env:"DEVICES"`
}

type StorageConfig struct {
	Backend           string `env:"BACKEND" envDefault:"local" validate:"oneof=local s3"`
	Region            string `env:"REGION" envDefault:"eu-west-1" validate:"required"`
	SubmissionsBucket string `env:"SUBMISSIONS_BUCKET"`
	CaptionsBucket    string `env:"CAPTIONS_BUCKET"`
	LocalPath         string `env:"LOCAL_PATH" envDefault:"./media-data" validate:"required_if=Backend local"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3PublicEndpoint  string `env:"S3_PUBLIC_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey       string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}

type ReceiptConfig struct {
	SkipProductID      string        `env:"SKIP_PRODUCT_ID" envDefault:"com.superserious.giggles.now" validate:"required"`
	AndroidPackage     string        `env:"ANDROID_PACKAGE" envDefault:"com.superserious.giggles" validate:"required"`
	AppleSharedSecret  string        `env:"APPLE_SHARED_SECRET"`
	AppleVerifyURL     string        `env:"APPLE_VERIFY_URL" envDefault:"https://buy.itunes.apple.com/verifyReceipt" validate:"required,url"`
	AppleSandboxURL    string        `env:"APPLE_SANDBOX_URL" envDefault:"https://sandbox.itunes.apple.com/verifyReceipt" validate:"required,url"`
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string        `env:"GOOGLE_REFRESH_TOKEN"`
	GoogleTokenURL     string        `env:"GOOGLE_TOKEN_URL" envDefault:"https://oauth2.googleapis.com/token" validate:"required,url"`
	GoogleAPIBaseURL   string        `env:"GOOGLE_API_BASE_URL" envDefault:"https://androidpublisher.googleapis.com" validate:"required,url"`
	Timeout            time.Duration `env:"TIMEOUT" envDefault:"5s" validate:"gt=0"`
}

type PushConfig struct {
	FCMServerKey   string        `env:"FCM_SERVER_KEY"`
	FCMEndpoint    string        `env:"FCM_ENDPOINT" envDefault:"https://fcm.googleapis.com/fcm/send" validate:"required,url"`
	PromotionTopic string        `env:"PROMOTION_TOPIC" envDefault:"all" validate:"required"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"5s" validate:"gt=0"`
}

// Load reads an optional .env file, parses the environment and validates the
// result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	cfg.applyDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Storage.Backend == "s3" &&
		(cfg.Storage.SubmissionsBucket == "" || cfg.Storage.CaptionsBucket == "") {
		return Config{}, errors.New("invalid config: STORAGE_SUBMISSIONS_BUCKET and STORAGE_CAPTIONS_BUCKET are required for the s3 backend")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	suffix := "Staging"
	if c.IsProduction() {
		suffix = ""
	}
	if strings.TrimSpace(c.Tables.Submissions) == "" {
		c.Tables.Submissions = "submissions" + suffix
	}
	if strings.TrimSpace(c.Tables.Captions) == "" {
		c.Tables.Captions = "captions" + suffix
	}
	if strings.TrimSpace(c.Tables.Devices) == "" {
		c.Tables.Devices = "users" + suffix
	}
	c.Storage.S3AccessKeyID = strings.TrimSpace(c.Storage.S3AccessKeyID)
	c.Storage.S3SecretKey = strings.TrimSpace(c.Storage.S3SecretKey)
}
