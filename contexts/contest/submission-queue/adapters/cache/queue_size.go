package cacheadapter

import (
	"context"

	"giggles/contexts/contest/submission-queue/domain/entities"
	"giggles/contexts/contest/submission-queue/ports"
	"giggles/internal/platform/cache"
)

const submissionCountKey = "submission_count"

// Repository serves CountSubmissions from Redis and delegates everything else.
type Repository struct {
	ports.Repository
	counts *cache.CountCache
}

func NewRepository(next ports.Repository, counts *cache.CountCache) *Repository {
	return &Repository{Repository: next, counts: counts}
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	if err := r.Repository.CreateSubmission(ctx, submission); err != nil {
		return err
	}
	r.counts.Invalidate(ctx, submissionCountKey)
	return nil
}

func (r *Repository) CountSubmissions(ctx context.Context) (int, error) {
	return r.counts.Get(ctx, submissionCountKey, r.Repository.CountSubmissions)
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.Repository.DeleteAll(ctx); err != nil {
		return err
	}
	r.counts.Invalidate(ctx, submissionCountKey)
	return nil
}
