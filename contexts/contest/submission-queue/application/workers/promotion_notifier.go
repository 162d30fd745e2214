package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	application "giggles/contexts/contest/submission-queue/application"
	"giggles/contexts/contest/submission-queue/ports"
)

const (
	defaultPromotionCG      = "submission-queue-promotion-notifier-cg"
	defaultPromotionTopic   = "all"
	defaultPromotionMessage = "A new photo is up. Get captioning!"
	defaultPushTimeout      = 5 * time.Second
)

// PromotionNotifier tells every device subscribed to Topic that a new
// submission became current. Delivery failures are logged and dropped.
type PromotionNotifier struct {
	Subscriber    ports.EventSubscriber
	Notifier      ports.TopicNotifier
	Topic         string
	Message       string
	PushTimeout   time.Duration
	ConsumerGroup string
	Logger        *slog.Logger
}

func (w PromotionNotifier) Start(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	group := strings.TrimSpace(w.ConsumerGroup)
	if group == "" {
		group = defaultPromotionCG
	}
	if err := w.Subscriber.Subscribe(ctx, contractsv1.TopicSubmissionPromoted, group, w.handlePromoted); err != nil {
		logger.Error("promotion notifier subscribe failed",
			"event", "submission_promotion_notifier_subscribe_failed",
			"module", "contest/submission-queue",
			"layer", "worker",
			"topic", contractsv1.TopicSubmissionPromoted,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("promotion notifier subscribed",
		"event", "submission_promotion_notifier_started",
		"module", "contest/submission-queue",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (w PromotionNotifier) handlePromoted(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(w.Logger)
	var payload contractsv1.SubmissionPromoted
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("submission.promoted payload decode failed",
			"event", "submission_promoted_decode_failed",
			"module", "contest/submission-queue",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return nil
	}

	topic := strings.TrimSpace(w.Topic)
	if topic == "" {
		topic = defaultPromotionTopic
	}
	message := strings.TrimSpace(w.Message)
	if message == "" {
		message = defaultPromotionMessage
	}
	timeout := w.PushTimeout
	if timeout <= 0 {
		timeout = defaultPushTimeout
	}

	pushCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Notifier.PushTopic(pushCtx, topic, message); err != nil {
		logger.Warn("promotion push failed",
			"event", "submission_promotion_push_failed",
			"module", "contest/submission-queue",
			"layer", "worker",
			"event_id", event.EventID,
			"submission_id", payload.SubmissionID,
			"topic", topic,
			"error", err.Error(),
		)
		return nil
	}
	logger.Info("promotion push sent",
		"event", "submission_promotion_push_sent",
		"module", "contest/submission-queue",
		"layer", "worker",
		"event_id", event.EventID,
		"submission_id", payload.SubmissionID,
		"topic", topic,
	)
	return nil
}
