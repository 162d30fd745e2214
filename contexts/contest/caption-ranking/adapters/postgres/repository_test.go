package postgresadapter

import (
	"testing"
	"time"

	"giggles/contexts/contest/caption-ranking/domain/entities"
)

func TestCaptionModelConversion(t *testing.T) {
	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	caption := entities.Caption{
		CaptionID:    " cap_1 ",
		SubmissionID: "sub_1",
		DeviceID:     "device-abc",
		Filename:     "cap_1.aac",
		AudioURL:     "http://localhost:3000/media/captions/cap_1.aac",
		Duration:     12.5,
		Likes:        3,
		Hates:        1,
		Score:        2,
		CreatedAt:    created,
	}

	row := captionModelFromEntity(caption)
	if row.CaptionID != "cap_1" {
		t.Fatalf("expected trimmed id, got %q", row.CaptionID)
	}
	back := row.toEntity()
	if back.Score != back.Likes-back.Hates || back.Duration != 12.5 || !back.CreatedAt.Equal(created) {
		t.Fatalf("unexpected round trip %+v", back)
	}
}

func TestCaptionModelDefaultsCreatedAt(t *testing.T) {
	row := captionModelFromEntity(entities.Caption{CaptionID: "cap_1"})
	if row.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be stamped")
	}
}
