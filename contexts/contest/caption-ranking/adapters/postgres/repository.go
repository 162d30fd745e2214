package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"giggles/contexts/contest/caption-ranking/domain/entities"
	domainerrors "giggles/contexts/contest/caption-ranking/domain/errors"

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
		table = "captions"
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

// Migrate creates the captions table and the ranking index.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.query(ctx).AutoMigrate(&captionModel{}); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		"CREATE INDEX IF NOT EXISTS ? ON ? (submission_id, score DESC, created_at ASC)",
		clause.Table{Name: "idx_" + r.table + "_submission_score"},
		clause.Table{Name: r.table},
	).Error
}

func (r *Repository) CreateCaption(ctx context.Context, caption entities.Caption) error {
	row := captionModelFromEntity(caption)
	row.Likes, row.Hates, row.Score = 0, 0, 0
	if err := r.query(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("duplicate caption id rejected",
				"event", "caption_insert_duplicate",
				"module", "contest/caption-ranking",
				"layer", "adapter",
				"caption_id", row.CaptionID,
			)
			return domainerrors.ErrInvalidCaptionInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetCaption(ctx context.Context, captionID string) (entities.Caption, error) {
	var row captionModel
	err := r.query(ctx).
		Where("caption_id = ?", strings.TrimSpace(captionID)).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Caption{}, domainerrors.ErrCaptionNotFound
		}
		return entities.Caption{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListForSubmission(ctx context.Context, submissionID string, limit int) ([]entities.Caption, error) {
	tx := r.query(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Order("score DESC").
		Order("created_at ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []captionModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Caption, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// Rate increments the counter and score in one UPDATE ... RETURNING, so
// concurrent ratings serialize on the row lock and none are lost.
func (r *Repository) Rate(ctx context.Context, captionID string, kind entities.RatingKind) (entities.Caption, error) {
	var updates map[string]any
	switch kind {
	case entities.RatingLike:
		updates = map[string]any{
			"likes": gorm.Expr("likes + ?", 1),
			"score": gorm.Expr("score + ?", 1),
		}
	case entities.RatingHate:
		updates = map[string]any{
			"hates": gorm.Expr("hates + ?", 1),
			"score": gorm.Expr("score - ?", 1),
		}
	default:
		return entities.Caption{}, domainerrors.ErrInvalidRating
	}

	var row captionModel
	result := r.query(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("caption_id = ?", strings.TrimSpace(captionID)).
		Updates(updates)
	if result.Error != nil {
		return entities.Caption{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Caption{}, domainerrors.ErrCaptionNotFound
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.query(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&captionModel{}).
		Error
}

type captionModel struct {
	CaptionID    string    `gorm:"column:caption_id;primaryKey"`
	SubmissionID string    `gorm:"column:submission_id;not null"`
	DeviceID     string    `gorm:"column:device_id"`
	Filename     string    `gorm:"column:filename"`
	AudioURL     string    `gorm:"column:audio_url"`
	Duration     float64   `gorm:"column:duration"`
	Likes        int       `gorm:"column:likes;not null"`
	Hates        int       `gorm:"column:hates;not null"`
	Score        int       `gorm:"column:score;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (captionModel) TableName() string {
	return "captions"
}

func captionModelFromEntity(caption entities.Caption) captionModel {
	row := captionModel{
		CaptionID:    strings.TrimSpace(caption.CaptionID),
		SubmissionID: strings.TrimSpace(caption.SubmissionID),
		DeviceID:     strings.TrimSpace(caption.DeviceID),
		Filename:     caption.Filename,
		AudioURL:     caption.AudioURL,
		Duration:     caption.Duration,
		Likes:        caption.Likes,
		Hates:        caption.Hates,
		Score:        caption.Score,
		CreatedAt:    caption.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m captionModel) toEntity() entities.Caption {
	return entities.Caption{
		CaptionID:    m.CaptionID,
		SubmissionID: m.SubmissionID,
		DeviceID:     m.DeviceID,
		Filename:     m.Filename,
		AudioURL:     m.AudioURL,
		Duration:     m.Duration,
		Likes:        m.Likes,
		Hates:        m.Hates,
		Score:        m.Score,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
