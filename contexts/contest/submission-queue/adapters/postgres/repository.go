package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	isPublishedNo  = "no"
	isPublishedYes = "yes"
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
		table = "submissions"
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

// Migrate creates the submissions table and its publish-order index.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.query(ctx).AutoMigrate(&submissionModel{}); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		"CREATE INDEX IF NOT EXISTS ? ON ? (is_published, published_at DESC)",
		clause.Table{Name: "idx_" + r.table + "_published"},
		clause.Table{Name: r.table},
	).Error
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	if err := r.query(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidSubmissionInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.query(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) PickQueued(ctx context.Context) (string, error) {
	var ids []string
	err := r.query(ctx).
		Where("is_published = ?", isPublishedNo).
		Order("random()").
		Limit(1).
		Pluck("submission_id", &ids).
		Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", domainerrors.ErrQueueEmpty
	}
	return ids[0], nil
}

// PromoteSubmission flips is_published only while the row is still queued;
// RowsAffected decides which concurrent caller won.
func (r *Repository) PromoteSubmission(ctx context.Context, submissionID string, publishedAt time.Time) (entities.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	publishedAt = publishedAt.UTC()
	result := r.query(ctx).
		Where("submission_id = ?", submissionID).
		Where("is_published = ?", isPublishedNo).
		Updates(map[string]any{
			"is_published": isPublishedYes,
			"published_at": publishedAt,
		})
	if result.Error != nil {
		return entities.Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Submission{}, domainerrors.ErrSubmissionNotQueued
	}

	submission, err := r.GetSubmission(ctx, submissionID)
	if err != nil {
		r.logger.Error("promoted submission reload failed",
			"event", "submission_promote_reload_failed",
			"module", "contest/submission-queue",
			"layer", "adapter",
			"submission_id", submissionID,
			"error", err.Error(),
		)
		return entities.Submission{
			SubmissionID: submissionID,
			PublishState: entities.PublishStatePublished,
			PublishedAt:  publishedAt,
		}, nil
	}
	return submission, nil
}

func (r *Repository) ListPublished(ctx context.Context, limit int) ([]entities.Submission, error) {
	tx := r.query(ctx).
		Where("is_published = ?", isPublishedYes).
		Order("published_at DESC").
		Order("submission_id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []submissionModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CurrentSubmission(ctx context.Context) (entities.Submission, error) {
	items, err := r.ListPublished(ctx, 1)
	if err != nil {
		return entities.Submission{}, err
	}
	if len(items) == 0 {
		return entities.Submission{}, domainerrors.ErrNoCurrentSubmission
	}
	return items[0], nil
}

func (r *Repository) CountSubmissions(ctx context.Context) (int, error) {
	var count int64
	if err := r.query(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.query(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&submissionModel{}).
		Error
}

type submissionModel struct {
	SubmissionID string     `gorm:"column:submission_id;primaryKey"`
	Filename     string     `gorm:"column:filename"`
	ImageURL     string     `gorm:"column:image_url"`
	Width        int        `gorm:"column:width"`
	Height       int        `gorm:"column:height"`
	IsPublished  string     `gorm:"column:is_published;not null"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func submissionModelFromEntity(submission entities.Submission) submissionModel {
	row := submissionModel{
		SubmissionID: strings.TrimSpace(submission.SubmissionID),
		Filename:     submission.Filename,
		ImageURL:     submission.ImageURL,
		Width:        submission.Width,
		Height:       submission.Height,
		IsPublished:  isPublishedNo,
		CreatedAt:    submission.CreatedAt.UTC(),
	}
	if submission.IsPublished() {
		row.IsPublished = isPublishedYes
		publishedAt := submission.PublishedAt.UTC()
		row.PublishedAt = &publishedAt
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m submissionModel) toEntity() entities.Submission {
	submission := entities.Submission{
		SubmissionID: m.SubmissionID,
		Filename:     m.Filename,
		ImageURL:     m.ImageURL,
		Width:        m.Width,
		Height:       m.Height,
		PublishState: entities.PublishStateQueued,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.IsPublished == isPublishedYes {
		submission.PublishState = entities.PublishStatePublished
		if m.PublishedAt != nil {
			submission.PublishedAt = m.PublishedAt.UTC()
		}
	}
	return submission
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
