package ports

import (
	"context"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	"giggles/contexts/contest/submission-queue/domain/entities"
)

// Repository persists submissions. PromoteSubmission is the only state
// transition and must succeed for at most one caller per submission.
type Repository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	PickQueued(ctx context.Context) (string, error)
	PromoteSubmission(ctx context.Context, submissionID string, publishedAt time.Time) (entities.Submission, error)
	ListPublished(ctx context.Context, limit int) ([]entities.Submission, error)
	CurrentSubmission(ctx context.Context) (entities.Submission, error)
	CountSubmissions(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type StoredImage struct {
	Filename string
	URL      string
	Width    int
	Height   int
}

// ImageIntake validates and stores an uploaded photo under name.
type ImageIntake interface {
	StoreImage(ctx context.Context, name string, data []byte) (StoredImage, error)
}

type ReceiptResult struct {
	Valid     bool
	ProductID string
	Reason    string
}

// ReceiptVerifier asks a store whether a purchase token is valid.
type ReceiptVerifier interface {
	Verify(ctx context.Context, receipt string) (ReceiptResult, error)
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

type TopicNotifier interface {
	PushTopic(ctx context.Context, topic string, body string) error
}

// PromotionObserver records promotion outcomes. Nil observers are skipped.
type PromotionObserver interface {
	ObservePromotion(trigger string, outcome string)
}
