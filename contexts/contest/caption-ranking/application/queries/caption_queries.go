package queries

import (
	"context"
	"strings"

	"giggles/contexts/contest/caption-ranking/domain/entities"
	"giggles/contexts/contest/caption-ranking/ports"
)

const defaultListCaptionsLimit = 1000

type CaptionQueryUseCase struct {
	Repository  ports.Repository
	Submissions ports.SubmissionLookup
	Limit       int
}

// ListForSubmission returns captions ranked by score, highest first. Unknown
// submissions simply have no captions.
func (uc CaptionQueryUseCase) ListForSubmission(ctx context.Context, submissionID string) ([]entities.Caption, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return []entities.Caption{}, nil
	}
	limit := uc.Limit
	if limit <= 0 {
		limit = defaultListCaptionsLimit
	}
	return uc.Repository.ListForSubmission(ctx, submissionID, limit)
}

func (uc CaptionQueryUseCase) ListCurrent(ctx context.Context) ([]entities.Caption, error) {
	currentID, err := uc.Submissions.CurrentID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.ListForSubmission(ctx, currentID)
}
