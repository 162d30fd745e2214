package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	submissions map[string]entities.Submission
	// pick returns an index in [0, n); swapped in tests for determinism.
	pick func(n int) int
}

func NewStore(seed []entities.Submission) *Store {
	submissions := make(map[string]entities.Submission, len(seed))
	for _, item := range seed {
		submissions[item.SubmissionID] = item
	}
	return &Store{
		submissions: submissions,
		pick:        rand.IntN,
	}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrInvalidSubmissionInput
	}
	if submission.PublishState == "" {
		submission.PublishState = entities.PublishStateQueued
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

// PickQueued chooses uniformly among the queued submissions at call time.
func (s *Store) PickQueued(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queued := make([]string, 0, len(s.submissions))
	for id, item := range s.submissions {
		if item.IsQueued() {
			queued = append(queued, id)
		}
	}
	if len(queued) == 0 {
		return "", domainerrors.ErrQueueEmpty
	}
	sort.Strings(queued)
	return queued[s.pick(len(queued))], nil
}

func (s *Store) PromoteSubmission(_ context.Context, submissionID string, publishedAt time.Time) (entities.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists || !item.IsQueued() {
		return entities.Submission{}, domainerrors.ErrSubmissionNotQueued
	}
	item = item.Promote(publishedAt)
	s.submissions[item.SubmissionID] = item
	return item, nil
}

func (s *Store) ListPublished(_ context.Context, limit int) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0, len(s.submissions))
	for _, item := range s.submissions {
		if item.IsPublished() {
			items = append(items, item)
		}
	}
	sortByPublishedDesc(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) CurrentSubmission(ctx context.Context) (entities.Submission, error) {
	items, err := s.ListPublished(ctx, 1)
	if err != nil {
		return entities.Submission{}, err
	}
	if len(items) == 0 {
		return entities.Submission{}, domainerrors.ErrNoCurrentSubmission
	}
	return items[0], nil
}

func (s *Store) CountSubmissions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions), nil
}

func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = make(map[string]entities.Submission)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortByPublishedDesc(items []entities.Submission) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].SubmissionID > items[j].SubmissionID
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
