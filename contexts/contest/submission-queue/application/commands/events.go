package commands

import (
	"context"
	"log/slog"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	"giggles/contexts/contest/submission-queue/ports"
)

const sourceService = "submission-queue"

// publishEvent is best-effort: the write already committed, so a failed
// publish is logged and dropped.
func publishEvent(
	ctx context.Context,
	publisher ports.EventPublisher,
	idGen ports.IDGenerator,
	logger *slog.Logger,
	topic string,
	submissionID string,
	occurredAt time.Time,
	data any,
) {
	if publisher == nil {
		return
	}
	eventID, err := idGen.NewID(ctx)
	if err == nil {
		var envelope ports.EventEnvelope
		envelope, err = contractsv1.NewEnvelope(eventID, topic, sourceService, submissionID, occurredAt, data)
		if err == nil {
			err = publisher.Publish(ctx, topic, envelope)
		}
	}
	if err != nil {
		logger.Warn("submission event publish failed",
			"event", "submission_event_publish_failed",
			"module", "contest/submission-queue",
			"layer", "application",
			"topic", topic,
			"submission_id", submissionID,
			"error", err.Error(),
		)
	}
}
