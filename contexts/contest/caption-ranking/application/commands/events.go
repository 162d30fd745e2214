package commands

import (
	"context"
	"log/slog"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	"giggles/contexts/contest/caption-ranking/ports"
)

const sourceService = "caption-ranking"

func publishEvent(
	ctx context.Context,
	publisher ports.EventPublisher,
	idGen ports.IDGenerator,
	logger *slog.Logger,
	topic string,
	captionID string,
	occurredAt time.Time,
	data any,
) {
	if publisher == nil {
		return
	}
	eventID, err := idGen.NewID(ctx)
	if err == nil {
		var envelope ports.EventEnvelope
		envelope, err = contractsv1.NewEnvelope(eventID, topic, sourceService, captionID, occurredAt, data)
		if err == nil {
			err = publisher.Publish(ctx, topic, envelope)
		}
	}
	if err != nil {
		logger.Warn("caption event publish failed",
			"event", "caption_event_publish_failed",
			"module", "contest/caption-ranking",
			"layer", "application",
			"topic", topic,
			"caption_id", captionID,
			"error", err.Error(),
		)
	}
}
