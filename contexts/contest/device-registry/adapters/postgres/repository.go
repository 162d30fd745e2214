package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"giggles/contexts/contest/device-registry/domain/entities"
	domainerrors "giggles/contexts/contest/device-registry/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	table  string
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, table string, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	table = strings.TrimSpace(table)
	if table == "" {
		table = "users"
	}
	return &Repository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

func (r *Repository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Migrate creates the devices table with a partial unique index on
// device_id; anonymous registrations are allowed to repeat.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.query(ctx).AutoMigrate(&deviceModel{}); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS ? ON ? (device_id) WHERE device_id <> ''",
		clause.Table{Name: "uq_" + r.table + "_device_id"},
		clause.Table{Name: r.table},
	).Error
}

func (r *Repository) Upsert(ctx context.Context, device entities.Device) (entities.Device, error) {
	row := deviceModelFromEntity(device)
	if row.DeviceID == "" {
		if err := r.query(ctx).Create(&row).Error; err != nil {
			return entities.Device{}, err
		}
		return row.toEntity(), nil
	}

	err := r.query(ctx).
		Clauses(
			clause.OnConflict{
				Columns:     []clause.Column{{Name: "device_id"}},
				TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "device_id <> ''"}}},
				DoUpdates:   clause.AssignmentColumns([]string{"token", "platform", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("device upsert hit a duplicate record id",
				"event", "device_upsert_duplicate",
				"module", "contest/device-registry",
				"layer", "adapter",
				"device_id", row.DeviceID,
			)
			return entities.Device{}, domainerrors.ErrInvalidDeviceInput
		}
		return entities.Device{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindByDeviceID(ctx context.Context, deviceID string) (entities.Device, error) {
	var row deviceModel
	err := r.query(ctx).
		Where("device_id = ?", strings.TrimSpace(deviceID)).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Device{}, domainerrors.ErrDeviceNotRegistered
		}
		return entities.Device{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.query(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&deviceModel{}).
		Error
}

type deviceModel struct {
	DeviceRecordID string    `gorm:"column:id;primaryKey"`
	DeviceID       string    `gorm:"column:device_id;not null"`
	Token          string    `gorm:"column:token;not null"`
	Platform       string    `gorm:"column:platform;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (deviceModel) TableName() string {
	return "users"
}

func deviceModelFromEntity(device entities.Device) deviceModel {
	row := deviceModel{
		DeviceRecordID: strings.TrimSpace(device.DeviceRecordID),
		DeviceID:       strings.TrimSpace(device.DeviceID),
		Token:          strings.TrimSpace(device.Token),
		Platform:       string(device.Platform),
		CreatedAt:      device.CreatedAt.UTC(),
		UpdatedAt:      device.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m deviceModel) toEntity() entities.Device {
	return entities.Device{
		DeviceRecordID: m.DeviceRecordID,
		DeviceID:       m.DeviceID,
		Token:          m.Token,
		Platform:       entities.Platform(m.Platform),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
