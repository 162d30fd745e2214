package commands

import (
	"context"
	"log/slog"
	"strings"

	contractsv1 "giggles/contracts/gen/events/v1"
	application "giggles/contexts/contest/caption-ranking/application"
	"giggles/contexts/contest/caption-ranking/domain/entities"
	domainerrors "giggles/contexts/contest/caption-ranking/domain/errors"
	"giggles/contexts/contest/caption-ranking/ports"
)

type CreateCaptionCommand struct {
	SubmissionID string
	DeviceID     string
	Audio        []byte
}

type CreateCaptionUseCase struct {
	Repository  ports.Repository
	Submissions ports.SubmissionLookup
	Audio       ports.AudioIntake
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Publisher   ports.EventPublisher
	Logger      *slog.Logger
}

// Execute attaches an audio caption to an existing submission. The
// submission is checked once, here; captions are not revalidated later.
func (uc CreateCaptionUseCase) Execute(ctx context.Context, cmd CreateCaptionCommand) (entities.Caption, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	if submissionID == "" || len(cmd.Audio) == 0 {
		return entities.Caption{}, domainerrors.ErrInvalidCaptionInput
	}

	exists, err := uc.Submissions.Exists(ctx, submissionID)
	if err != nil {
		return entities.Caption{}, err
	}
	if !exists {
		return entities.Caption{}, domainerrors.ErrSubmissionNotFound
	}

	captionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Caption{}, err
	}
	stored, err := uc.Audio.StoreAudio(ctx, captionID, cmd.Audio)
	if err != nil {
		logger.Warn("caption audio rejected",
			"event", "caption_audio_rejected",
			"module", "contest/caption-ranking",
			"layer", "application",
			"submission_id", submissionID,
			"caption_id", captionID,
			"error", err.Error(),
		)
		return entities.Caption{}, err
	}

	now := uc.Clock.Now().UTC()
	caption := entities.Caption{
		CaptionID:    captionID,
		SubmissionID: submissionID,
		DeviceID:     strings.TrimSpace(cmd.DeviceID),
		Filename:     stored.Filename,
		AudioURL:     stored.URL,
		Duration:     stored.Duration,
		CreatedAt:    now,
	}
	if err := uc.Repository.CreateCaption(ctx, caption); err != nil {
		return entities.Caption{}, err
	}

	publishEvent(ctx, uc.Publisher, uc.IDGen, logger, contractsv1.TopicCaptionCreated, captionID, now,
		contractsv1.CaptionCreated{CaptionID: captionID, SubmissionID: submissionID, DeviceID: caption.DeviceID})

	logger.Info("caption created",
		"event", "caption_created",
		"module", "contest/caption-ranking",
		"layer", "application",
		"caption_id", captionID,
		"submission_id", submissionID,
		"duration", caption.Duration,
	)
	return caption, nil
}
