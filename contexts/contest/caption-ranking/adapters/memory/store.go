package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"giggles/contexts/contest/caption-ranking/domain/entities"
	domainerrors "giggles/contexts/contest/caption-ranking/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	captions map[string]entities.Caption
}

func NewStore(seed []entities.Caption) *Store {
	captions := make(map[string]entities.Caption, len(seed))
	for _, item := range seed {
		captions[item.CaptionID] = item
	}
	return &Store{captions: captions}
}

func (s *Store) CreateCaption(_ context.Context, caption entities.Caption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.captions[caption.CaptionID]; exists {
		return domainerrors.ErrInvalidCaptionInput
	}
	caption.Likes, caption.Hates, caption.Score = 0, 0, 0
	s.captions[caption.CaptionID] = caption
	return nil
}

func (s *Store) GetCaption(_ context.Context, captionID string) (entities.Caption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.captions[strings.TrimSpace(captionID)]
	if !exists {
		return entities.Caption{}, domainerrors.ErrCaptionNotFound
	}
	return item, nil
}

// ListForSubmission orders by score descending, then oldest first.
func (s *Store) ListForSubmission(_ context.Context, submissionID string, limit int) ([]entities.Caption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Caption, 0)
	for _, item := range s.captions {
		if item.SubmissionID == submissionID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].CaptionID < items[j].CaptionID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) Rate(_ context.Context, captionID string, kind entities.RatingKind) (entities.Caption, error) {
	if !kind.Valid() {
		return entities.Caption{}, domainerrors.ErrInvalidRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.captions[strings.TrimSpace(captionID)]
	if !exists {
		return entities.Caption{}, domainerrors.ErrCaptionNotFound
	}
	item = item.Apply(kind)
	s.captions[item.CaptionID] = item
	return item, nil
}

func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captions = make(map[string]entities.Caption)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
