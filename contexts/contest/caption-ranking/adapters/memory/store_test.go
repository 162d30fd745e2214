package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"giggles/contexts/contest/caption-ranking/domain/entities"
	domainerrors "giggles/contexts/contest/caption-ranking/domain/errors"
)

func caption(id string, submissionID string, created time.Time) entities.Caption {
	return entities.Caption{CaptionID: id, SubmissionID: submissionID, CreatedAt: created}
}

func TestRateKeepsScoreEqualToLikesMinusHates(t *testing.T) {
	store := NewStore([]entities.Caption{caption("cap_1", "sub_1", time.Now())})
	sequence := []entities.RatingKind{
		entities.RatingLike, entities.RatingHate, entities.RatingLike,
		entities.RatingLike, entities.RatingHate, entities.RatingHate, entities.RatingHate,
	}

	for _, kind := range sequence {
		item, err := store.Rate(context.Background(), "cap_1", kind)
		if err != nil {
			t.Fatalf("rate %s failed: %v", kind, err)
		}
		if item.Score != item.Likes-item.Hates {
			t.Fatalf("score drifted: %+v", item)
		}
	}
	item, _ := store.GetCaption(context.Background(), "cap_1")
	if item.Likes != 3 || item.Hates != 4 || item.Score != -1 {
		t.Fatalf("unexpected counters %+v", item)
	}
}

func TestConcurrentRatingsAreNotLost(t *testing.T) {
	store := NewStore([]entities.Caption{caption("cap_1", "sub_1", time.Now())})

	const likes, hates = 100, 40
	var wg sync.WaitGroup
	for i := 0; i < likes+hates; i++ {
		kind := entities.RatingLike
		if i >= likes {
			kind = entities.RatingHate
		}
		wg.Add(1)
		go func(kind entities.RatingKind) {
			defer wg.Done()
			if _, err := store.Rate(context.Background(), "cap_1", kind); err != nil {
				t.Errorf("rate failed: %v", err)
			}
		}(kind)
	}
	wg.Wait()

	item, _ := store.GetCaption(context.Background(), "cap_1")
	if item.Likes != likes || item.Hates != hates || item.Score != likes-hates {
		t.Fatalf("lost updates: %+v", item)
	}
}

func TestRateUnknownCaption(t *testing.T) {
	store := NewStore(nil)

	_, err := store.Rate(context.Background(), "nope", entities.RatingLike)
	if !errors.Is(err, domainerrors.ErrCaptionNotFound) {
		t.Fatalf("expected caption not found, got %v", err)
	}
}

func TestListForSubmissionRanksByScore(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore([]entities.Caption{
		caption("down", "sub_1", base),
		caption("flat", "sub_1", base.Add(time.Second)),
		caption("up", "sub_1", base.Add(2*time.Second)),
		caption("other", "sub_2", base),
	})
	if _, err := store.Rate(context.Background(), "up", entities.RatingLike); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Rate(context.Background(), "down", entities.RatingHate); err != nil {
		t.Fatal(err)
	}

	items, err := store.ListForSubmission(context.Background(), "sub_1", 1000)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := []string{}
	for _, item := range items {
		got = append(got, item.CaptionID)
	}
	want := []string{"up", "flat", "down"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCreateCaptionStartsAtZero(t *testing.T) {
	store := NewStore(nil)

	err := store.CreateCaption(context.Background(), entities.Caption{CaptionID: "cap_1", SubmissionID: "sub_1", Likes: 9, Score: 9})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	item, _ := store.GetCaption(context.Background(), "cap_1")
	if item.Likes != 0 || item.Hates != 0 || item.Score != 0 {
		t.Fatalf("expected zero counters, got %+v", item)
	}
	if err := store.CreateCaption(context.Background(), entities.Caption{CaptionID: "cap_1"}); !errors.Is(err, domainerrors.ErrInvalidCaptionInput) {
		t.Fatalf("expected duplicate to be rejected, got %v", err)
	}
}
