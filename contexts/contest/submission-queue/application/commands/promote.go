package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	contractsv1 "giggles/contracts/gen/events/v1"
	application "giggles/contexts/contest/submission-queue/application"
	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
)

const maxRandomPromotionAttempts = 3

type PromoteCommand struct {
	// SubmissionID is optional; empty promotes a random queued submission.
	SubmissionID string
}

// PromoteUseCase owns the queued -> published transition. Every path ends in
// Repository.PromoteSubmission, whose conditional update decides the winner
// when callers race for the same submission.
type PromoteUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Publisher  ports.EventPublisher
	Observer   ports.PromotionObserver
	Logger     *slog.Logger
}

func (uc PromoteUseCase) Next(ctx context.Context, cmd PromoteCommand) (entities.Submission, error) {
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	if submissionID == "" {
		return uc.promoteRandom(ctx)
	}
	return uc.commit(ctx, submissionID, entities.PromotionTriggerByID)
}

func (uc PromoteUseCase) promoteRandom(ctx context.Context) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	for attempt := 1; attempt <= maxRandomPromotionAttempts; attempt++ {
		submissionID, err := uc.Repository.PickQueued(ctx)
		if err != nil {
			if errors.Is(err, domainerrors.ErrQueueEmpty) {
				uc.observe(entities.PromotionTriggerRandom, "queue_empty")
			}
			return entities.Submission{}, err
		}
		submission, err := uc.commit(ctx, submissionID, entities.PromotionTriggerRandom)
		if err == nil {
			return submission, nil
		}
		if !errors.Is(err, domainerrors.ErrSubmissionNotQueued) {
			return entities.Submission{}, err
		}
		logger.Info("random promotion lost race, re-picking",
			"event", "submission_promotion_repick",
			"module", "contest/submission-queue",
			"layer", "application",
			"submission_id", submissionID,
			"attempt", attempt,
		)
	}
	return entities.Submission{}, fmt.Errorf("%w: lost %d promotion races", domainerrors.ErrQueueEmpty, maxRandomPromotionAttempts)
}

// commit performs the single conditional promotion and emits its side effects.
func (uc PromoteUseCase) commit(ctx context.Context, submissionID string, trigger entities.PromotionTrigger) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.PromoteSubmission(ctx, submissionID, uc.Clock.Now().UTC())
	if err != nil {
		outcome := "error"
		if errors.Is(err, domainerrors.ErrSubmissionNotQueued) {
			outcome = "not_queued"
		}
		uc.observe(trigger, outcome)
		logger.Warn("submission promotion rejected",
			"event", "submission_promotion_rejected",
			"module", "contest/submission-queue",
			"layer", "application",
			"submission_id", submissionID,
			"trigger", string(trigger),
			"error", err.Error(),
		)
		return entities.Submission{}, err
	}

	uc.observe(trigger, "promoted")
	publishEvent(ctx, uc.Publisher, uc.IDGen, logger, contractsv1.TopicSubmissionPromoted, submission.SubmissionID, submission.PublishedAt,
		contractsv1.SubmissionPromoted{
			SubmissionID: submission.SubmissionID,
			Trigger:      string(trigger),
			PublishedAt:  submission.PublishedAt,
		})

	logger.Info("submission promoted",
		"event", "submission_promoted",
		"module", "contest/submission-queue",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"trigger", string(trigger),
		"published_at", submission.PublishedAt,
	)
	return submission, nil
}

func (uc PromoteUseCase) observe(trigger entities.PromotionTrigger, outcome string) {
	if uc.Observer != nil {
		uc.Observer.ObservePromotion(string(trigger), outcome)
	}
}
