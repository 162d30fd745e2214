package queries

import (
	"context"
	"errors"
	"strings"

	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
)

const defaultListPublishedLimit = 365

type SubmissionQueryUseCase struct {
	Repository ports.Repository
	Limit      int
}

// ListPublished returns published submissions, most recently published first.
func (uc SubmissionQueryUseCase) ListPublished(ctx context.Context) ([]entities.Submission, error) {
	limit := uc.Limit
	if limit <= 0 {
		limit = defaultListPublishedLimit
	}
	return uc.Repository.ListPublished(ctx, limit)
}

func (uc SubmissionQueryUseCase) Current(ctx context.Context) (entities.Submission, error) {
	return uc.Repository.CurrentSubmission(ctx)
}

// CurrentID returns the id of the current submission, or "" when nothing has
// been published yet.
func (uc SubmissionQueryUseCase) CurrentID(ctx context.Context) (string, error) {
	submission, err := uc.Repository.CurrentSubmission(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNoCurrentSubmission) {
			return "", nil
		}
		return "", err
	}
	return submission.SubmissionID, nil
}

// Exists reports whether a submission with submissionID was ever created.
func (uc SubmissionQueryUseCase) Exists(ctx context.Context, submissionID string) (bool, error) {
	_, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrSubmissionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (uc SubmissionQueryUseCase) QueueSize(ctx context.Context) (int, error) {
	return uc.Repository.CountSubmissions(ctx)
}
