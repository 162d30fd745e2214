package ports

import (
	"context"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	"giggles/contexts/contest/caption-ranking/domain/entities"
)

// Repository persists captions. Rate must apply the counter and score change
// in one atomic step so concurrent ratings are never lost.
type Repository interface {
	CreateCaption(ctx context.Context, caption entities.Caption) error
	GetCaption(ctx context.Context, captionID string) (entities.Caption, error)
	ListForSubmission(ctx context.Context, submissionID string, limit int) ([]entities.Caption, error)
	Rate(ctx context.Context, captionID string, kind entities.RatingKind) (entities.Caption, error)
	DeleteAll(ctx context.Context) error
}

// SubmissionLookup is the caption context's read-only view of the queue.
type SubmissionLookup interface {
	Exists(ctx context.Context, submissionID string) (bool, error)
	// CurrentID returns "" when nothing has been published.
	CurrentID(ctx context.Context) (string, error)
}

type StoredAudio struct {
	Filename string
	URL      string
	Duration float64
}

type AudioIntake interface {
	StoreAudio(ctx context.Context, name string, data []byte) (StoredAudio, error)
}

// DeviceTokens resolves the push token registered for a device.
type DeviceTokens interface {
	TokenForDevice(ctx context.Context, deviceID string) (string, bool, error)
}

type DeviceNotifier interface {
	PushDevice(ctx context.Context, token string, body string) error
}

type RatingObserver interface {
	ObserveRating(kind string, outcome string)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
