package postgresadapter

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"giggles/contexts/contest/submission-queue/domain/entities"
)

func TestSubmissionModelStoresPublishFlagAsYesNo(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	queued := entities.Submission{
		SubmissionID: " sub_1 ",
		ImageURL:     "http://localhost:3000/media/submissions/sub_1.jpg",
		Width:        800,
		Height:       600,
		PublishState: entities.PublishStateQueued,
		CreatedAt:    created,
	}

	row := submissionModelFromEntity(queued)
	if row.IsPublished != "no" || row.PublishedAt != nil {
		t.Fatalf("expected queued row, got %+v", row)
	}
	if row.SubmissionID != "sub_1" {
		t.Fatalf("expected trimmed id, got %q", row.SubmissionID)
	}

	publishedAt := created.Add(time.Hour)
	row = submissionModelFromEntity(queued.Promote(publishedAt))
	if row.IsPublished != "yes" || row.PublishedAt == nil || !row.PublishedAt.Equal(publishedAt) {
		t.Fatalf("expected published row, got %+v", row)
	}

	back := row.toEntity()
	if !back.IsPublished() || !back.PublishedAt.Equal(publishedAt) || back.Width != 800 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatal("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("plain errors are not unique violations")
	}
}
