package commands

import (
	"context"
	"log/slog"

	contractsv1 "giggles/contracts/gen/events/v1"
	application "giggles/contexts/contest/submission-queue/application"
	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
)

type CreateSubmissionCommand struct {
	Photo []byte
}

type CreateSubmissionResult struct {
	Submission entities.Submission
	QueueSize  int
}

type CreateSubmissionUseCase struct {
	Repository ports.Repository
	Images     ports.ImageIntake
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Publisher  ports.EventPublisher
	Logger     *slog.Logger
}

// Execute stores the photo and enqueues a new submission. The returned queue
// size is a hint and may be stale.
func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (CreateSubmissionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if len(cmd.Photo) == 0 {
		return CreateSubmissionResult{}, domainerrors.ErrInvalidSubmissionInput
	}

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreateSubmissionResult{}, err
	}
	stored, err := uc.Images.StoreImage(ctx, submissionID, cmd.Photo)
	if err != nil {
		logger.Warn("submission photo rejected",
			"event", "submission_photo_rejected",
			"module", "contest/submission-queue",
			"layer", "application",
			"submission_id", submissionID,
			"error", err.Error(),
		)
		return CreateSubmissionResult{}, err
	}

	now := uc.Clock.Now().UTC()
	submission := entities.Submission{
		SubmissionID: submissionID,
		Filename:     stored.Filename,
		ImageURL:     stored.URL,
		Width:        stored.Width,
		Height:       stored.Height,
		PublishState: entities.PublishStateQueued,
		CreatedAt:    now,
	}
	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return CreateSubmissionResult{}, err
	}

	queueSize, err := uc.Repository.CountSubmissions(ctx)
	if err != nil {
		logger.Warn("queue size hint unavailable",
			"event", "submission_queue_size_failed",
			"module", "contest/submission-queue",
			"layer", "application",
			"submission_id", submissionID,
			"error", err.Error(),
		)
		queueSize = 0
	}

	publishEvent(ctx, uc.Publisher, uc.IDGen, logger, contractsv1.TopicSubmissionCreated, submissionID, now,
		contractsv1.SubmissionCreated{SubmissionID: submissionID, ImageURL: submission.ImageURL})

	logger.Info("submission queued",
		"event", "submission_queued",
		"module", "contest/submission-queue",
		"layer", "application",
		"submission_id", submissionID,
		"width", submission.Width,
		"height", submission.Height,
		"queue_size", queueSize,
	)
	return CreateSubmissionResult{Submission: submission, QueueSize: queueSize}, nil
}
