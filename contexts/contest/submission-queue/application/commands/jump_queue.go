package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "giggles/contexts/contest/submission-queue/application"
	"giggles/contexts/contest/submission-queue/domain/entities"
	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
)

const defaultVerifyTimeout = 5 * time.Second

type JumpQueueCommand struct {
	SubmissionID string
	Platform     entities.ReceiptPlatform
	Receipt      string
}

// JumpQueueUseCase promotes a queued submission once the buyer's store
// receipt proves a purchase of the skip product.
type JumpQueueUseCase struct {
	Repository    ports.Repository
	Verifiers     map[entities.ReceiptPlatform]ports.ReceiptVerifier
	SkipProductID string
	VerifyTimeout time.Duration
	Promoter      PromoteUseCase
	Logger        *slog.Logger
}

func (uc JumpQueueUseCase) Execute(ctx context.Context, cmd JumpQueueCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	receipt := strings.TrimSpace(cmd.Receipt)
	if receipt == "" {
		return entities.Submission{}, domainerrors.ErrReceiptRequired
	}
	if submissionID == "" {
		return entities.Submission{}, domainerrors.ErrSubmissionGone
	}
	verifier, ok := uc.Verifiers[cmd.Platform]
	if !ok || verifier == nil {
		return entities.Submission{}, domainerrors.ErrUnsupportedPlatform
	}

	submission, err := uc.Repository.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSubmissionNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionGone
		}
		return entities.Submission{}, err
	}
	if !submission.IsQueued() {
		return entities.Submission{}, domainerrors.ErrSubmissionGone
	}

	if err := uc.verify(ctx, verifier, cmd.Platform, receipt); err != nil {
		uc.Promoter.observe(entities.PromotionTriggerPaidSkip, "receipt_failed")
		logger.Warn("paid skip receipt not accepted",
			"event", "submission_jump_queue_receipt_failed",
			"module", "contest/submission-queue",
			"layer", "application",
			"submission_id", submissionID,
			"platform", string(cmd.Platform),
			"error", err.Error(),
		)
		return entities.Submission{}, err
	}

	promoted, err := uc.Promoter.commit(ctx, submissionID, entities.PromotionTriggerPaidSkip)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSubmissionNotQueued) {
			return entities.Submission{}, domainerrors.ErrSubmissionGone
		}
		return entities.Submission{}, err
	}
	return promoted, nil
}

func (uc JumpQueueUseCase) verify(
	ctx context.Context,
	verifier ports.ReceiptVerifier,
	platform entities.ReceiptPlatform,
	receipt string,
) error {
	timeout := uc.VerifyTimeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := verifier.Verify(verifyCtx, receipt)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrMalformedReceiptPayload),
			errors.Is(err, domainerrors.ErrVerifierUnavailable):
			return err
		default:
			return fmt.Errorf("%w: %s: %v", domainerrors.ErrVerifierUnavailable, platform, err)
		}
	}
	if !result.Valid {
		reason := strings.TrimSpace(result.Reason)
		if reason == "" {
			reason = "purchase is not valid"
		}
		return fmt.Errorf("%w: %s", domainerrors.ErrReceiptRejected, reason)
	}
	if result.ProductID != uc.SkipProductID {
		return fmt.Errorf("%w: got %q", domainerrors.ErrWrongProduct, result.ProductID)
	}
	return nil
}
