package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	contractsv1 "giggles/contracts/gen/events/v1"
	application "giggles/contexts/contest/caption-ranking/application"
	"giggles/contexts/contest/caption-ranking/domain/entities"
	domainerrors "giggles/contexts/contest/caption-ranking/domain/errors"
	"giggles/contexts/contest/caption-ranking/ports"
)

type RateCaptionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Publisher  ports.EventPublisher
	Observer   ports.RatingObserver
	Logger     *slog.Logger
}

func (uc RateCaptionUseCase) Like(ctx context.Context, captionID string) (entities.Caption, error) {
	return uc.rate(ctx, captionID, entities.RatingLike)
}

func (uc RateCaptionUseCase) Hate(ctx context.Context, captionID string) (entities.Caption, error) {
	return uc.rate(ctx, captionID, entities.RatingHate)
}

func (uc RateCaptionUseCase) rate(ctx context.Context, captionID string, kind entities.RatingKind) (entities.Caption, error) {
	logger := application.ResolveLogger(uc.Logger)
	captionID = strings.TrimSpace(captionID)
	if captionID == "" {
		uc.observe(kind, "not_found")
		return entities.Caption{}, domainerrors.ErrCaptionNotFound
	}

	caption, err := uc.Repository.Rate(ctx, captionID, kind)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domainerrors.ErrCaptionNotFound) {
			outcome = "not_found"
		}
		uc.observe(kind, outcome)
		return entities.Caption{}, err
	}
	uc.observe(kind, "applied")

	if kind == entities.RatingLike {
		publishEvent(ctx, uc.Publisher, uc.IDGen, logger, contractsv1.TopicCaptionLiked, caption.CaptionID, uc.Clock.Now().UTC(),
			contractsv1.CaptionLiked{
				CaptionID:    caption.CaptionID,
				SubmissionID: caption.SubmissionID,
				DeviceID:     caption.DeviceID,
				Likes:        caption.Likes,
				Score:        caption.Score,
			})
	}

	logger.Debug("caption rated",
		"event", "caption_rated",
		"module", "contest/caption-ranking",
		"layer", "application",
		"caption_id", caption.CaptionID,
		"kind", string(kind),
		"score", caption.Score,
	)
	return caption, nil
}

func (uc RateCaptionUseCase) observe(kind entities.RatingKind, outcome string) {
	if uc.Observer != nil {
		uc.Observer.ObserveRating(string(kind), outcome)
	}
}
