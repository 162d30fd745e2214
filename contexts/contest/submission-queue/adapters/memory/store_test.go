package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
)

func queued(id string) entities.Submission {
	return entities.Submission{
		SubmissionID: id,
		ImageURL:     "http://localhost/media/submissions/" + id + ".jpg",
		PublishState: entities.PublishStateQueued,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPromoteSubmissionSucceedsOnce(t *testing.T) {
	store := NewStore([]entities.Submission{queued("sub_1")})
	publishedAt := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	item, err := store.PromoteSubmission(context.Background(), "sub_1", publishedAt)
	if err != nil {
		t.Fatalf("expected promotion, got error: %v", err)
	}
	if !item.IsPublished() || !item.PublishedAt.Equal(publishedAt) {
		t.Fatalf("expected published at %s, got %+v", publishedAt, item)
	}

	_, err = store.PromoteSubmission(context.Background(), "sub_1", publishedAt.Add(time.Hour))
	if !errors.Is(err, domainerrors.ErrSubmissionNotQueued) {
		t.Fatalf("expected not queued on re-promotion, got %v", err)
	}
	current, err := store.CurrentSubmission(context.Background())
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if !current.PublishedAt.Equal(publishedAt) {
		t.Fatalf("expected original publish time to be kept, got %s", current.PublishedAt)
	}
}

func TestPromoteSubmissionUnknownID(t *testing.T) {
	store := NewStore(nil)

	_, err := store.PromoteSubmission(context.Background(), "missing", time.Now())
	if !errors.Is(err, domainerrors.ErrSubmissionNotQueued) {
		t.Fatalf("expected not queued, got %v", err)
	}
}

func TestConcurrentPromotionHasOneWinner(t *testing.T) {
	store := NewStore([]entities.Submission{queued("sub_race")})

	const callers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			<-start
			_, err := store.PromoteSubmission(context.Background(), "sub_race", time.Now().Add(time.Duration(offset)*time.Millisecond))
			if err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domainerrors.ErrSubmissionNotQueued) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestPickQueuedSkipsPublishedAndReportsEmpty(t *testing.T) {
	store := NewStore([]entities.Submission{queued("sub_a"), queued("sub_b")})
	if _, err := store.PromoteSubmission(context.Background(), "sub_a", time.Now()); err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		id, err := store.PickQueued(context.Background())
		if err != nil {
			t.Fatalf("pick failed: %v", err)
		}
		if id != "sub_b" {
			t.Fatalf("expected only queued submission sub_b, got %s", id)
		}
	}

	if _, err := store.PromoteSubmission(context.Background(), "sub_b", time.Now()); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if _, err := store.PickQueued(context.Background()); !errors.Is(err, domainerrors.ErrQueueEmpty) {
		t.Fatalf("expected queue empty, got %v", err)
	}
}

func TestPickQueuedIsRoughlyUniform(t *testing.T) {
	const (
		size   = 4
		trials = 8000
	)
	seed := make([]entities.Submission, 0, size)
	for i := 0; i < size; i++ {
		seed = append(seed, queued(fmt.Sprintf("sub_%d", i)))
	}
	store := NewStore(seed)

	counts := make(map[string]int, size)
	for i := 0; i < trials; i++ {
		id, err := store.PickQueued(context.Background())
		if err != nil {
			t.Fatalf("pick failed: %v", err)
		}
		counts[id]++
	}

	expected := float64(trials) / size
	chiSquare := 0.0
	for i := 0; i < size; i++ {
		diff := float64(counts[fmt.Sprintf("sub_%d", i)]) - expected
		chiSquare += diff * diff / expected
	}
	// 3 degrees of freedom; 16.27 is the p=0.001 critical value.
	if chiSquare > 16.27 {
		t.Fatalf("pick distribution looks biased: chi-square %.2f, counts %v", chiSquare, counts)
	}
}

func TestListPublishedOrdersNewestFirstWithLimit(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore([]entities.Submission{queued("old"), queued("mid"), queued("new"), queued("waiting")})
	for i, id := range []string{"old", "mid", "new"} {
		if _, err := store.PromoteSubmission(context.Background(), id, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("promote %s failed: %v", id, err)
		}
	}

	items, err := store.ListPublished(context.Background(), 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].SubmissionID != "new" || items[1].SubmissionID != "mid" {
		t.Fatalf("unexpected order: %+v", items)
	}

	current, err := store.CurrentSubmission(context.Background())
	if err != nil || current.SubmissionID != "new" {
		t.Fatalf("expected current to be newest, got %+v (%v)", current, err)
	}
}

func TestCurrentSubmissionWithNothingPublished(t *testing.T) {
	store := NewStore([]entities.Submission{queued("sub_1")})

	_, err := store.CurrentSubmission(context.Background())
	if !errors.Is(err, domainerrors.ErrNoCurrentSubmission) {
		t.Fatalf("expected no current submission, got %v", err)
	}
}

func TestDeleteAllClearsSubmissions(t *testing.T) {
	store := NewStore([]entities.Submission{queued("sub_1"), queued("sub_2")})

	if err := store.DeleteAll(context.Background()); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	count, err := store.CountSubmissions(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("expected empty store, got %d (%v)", count, err)
	}
}
