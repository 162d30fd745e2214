package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	application "giggles/contexts/contest/caption-ranking/application"
	"giggles/contexts/contest/caption-ranking/ports"
)

const (
	defaultLikeCG      = "caption-ranking-like-notifier-cg"
	defaultLikeMessage = "Someone liked your caption. You have value."
	defaultPushTimeout = 5 * time.Second
)

// LikeNotifier pushes to the author's device when a caption gets a like.
// Captions without a device, or devices without a token, are skipped.
type LikeNotifier struct {
	Subscriber    ports.EventSubscriber
	Devices       ports.DeviceTokens
	Notifier      ports.DeviceNotifier
	Message       string
	PushTimeout   time.Duration
	ConsumerGroup string
	Logger        *slog.Logger
}

func (w LikeNotifier) Start(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	group := strings.TrimSpace(w.ConsumerGroup)
	if group == "" {
		group = defaultLikeCG
	}
	if err := w.Subscriber.Subscribe(ctx, contractsv1.TopicCaptionLiked, group, w.handleLiked); err != nil {
		logger.Error("like notifier subscribe failed",
			"event", "caption_like_notifier_subscribe_failed",
			"module", "contest/caption-ranking",
			"layer", "worker",
			"topic", contractsv1.TopicCaptionLiked,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("like notifier subscribed",
		"event", "caption_like_notifier_started",
		"module", "contest/caption-ranking",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (w LikeNotifier) handleLiked(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(w.Logger)
	var payload contractsv1.CaptionLiked
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("caption.liked payload decode failed",
			"event", "caption_liked_decode_failed",
			"module", "contest/caption-ranking",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return nil
	}
	deviceID := strings.TrimSpace(payload.DeviceID)
	if deviceID == "" {
		return nil
	}

	token, found, err := w.Devices.TokenForDevice(ctx, deviceID)
	if err != nil {
		logger.Warn("device token lookup failed",
			"event", "caption_like_token_lookup_failed",
			"module", "contest/caption-ranking",
			"layer", "worker",
			"caption_id", payload.CaptionID,
			"device_id", deviceID,
			"error", err.Error(),
		)
		return nil
	}
	if !found {
		return nil
	}

	message := strings.TrimSpace(w.Message)
	if message == "" {
		message = defaultLikeMessage
	}
	timeout := w.PushTimeout
	if timeout <= 0 {
		timeout = defaultPushTimeout
	}
	pushCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Notifier.PushDevice(pushCtx, token, message); err != nil {
		logger.Warn("like push failed",
			"event", "caption_like_push_failed",
			"module", "contest/caption-ranking",
			"layer", "worker",
			"caption_id", payload.CaptionID,
			"device_id", deviceID,
			"error", err.Error(),
		)
		return nil
	}
	logger.Info("like push sent",
		"event", "caption_like_push_sent",
		"module", "contest/caption-ranking",
		"layer", "worker",
		"caption_id", payload.CaptionID,
		"device_id", deviceID,
	)
	return nil
}
