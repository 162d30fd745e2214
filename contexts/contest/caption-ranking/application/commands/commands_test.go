package commands

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractsv1 "giggles/contracts/gen/events/v1"
	"giggles/contexts/contest/caption-ranking/adapters/memory"
	"giggles/contexts/contest/caption-ranking/domain/entities"
	domainerrors "giggles/contexts/contest/caption-ranking/domain/errors"
	"giggles/contexts/contest/caption-ranking/ports"
)

type fakeSubmissions struct {
	known   map[string]bool
	current string
}

func (f fakeSubmissions) Exists(_ context.Context, id string) (bool, error) {
	return f.known[id], nil
}

func (f fakeSubmissions) CurrentID(context.Context) (string, error) {
	return f.current, nil
}

type fakeAudio struct{}

func (fakeAudio) StoreAudio(_ context.Context, name string, _ []byte) (ports.StoredAudio, error) {
	return ports.StoredAudio{Filename: name + ".aac", URL: "http://localhost:3000/media/captions/" + name + ".aac", Duration: 3.5}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) ObserveRating(kind string, outcome string) {
	o.outcomes = append(o.outcomes, kind+":"+outcome)
}

func newCreate(store *memory.Store, publisher ports.EventPublisher) CreateCaptionUseCase {
	return CreateCaptionUseCase{
		Repository:  store,
		Submissions: fakeSubmissions{known: map[string]bool{"sub_1": true}},
		Audio:       fakeAudio{},
		Clock:       store,
		IDGen:       store,
		Publisher:   publisher,
	}
}

func TestCreateCaptionForExistingSubmission(t *testing.T) {
	store := memory.NewStore(nil)
	publisher := &recordingPublisher{}

	caption, err := newCreate(store, publisher).Execute(context.Background(), CreateCaptionCommand{
		SubmissionID: "sub_1",
		DeviceID:     "device-abc",
		Audio:        []byte("aac"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3.5, caption.Duration)
	assert.Equal(t, "device-abc", caption.DeviceID)
	assert.Equal(t, []string{contractsv1.TopicCaptionCreated}, publisher.topics)

	items, err := store.ListForSubmission(context.Background(), "sub_1", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Zero(t, items[0].Score)
}

func TestCreateCaptionForMissingSubmissionStoresNothing(t *testing.T) {
	store := memory.NewStore(nil)

	_, err := newCreate(store, nil).Execute(context.Background(), CreateCaptionCommand{
		SubmissionID: "sub_missing",
		Audio:        []byte("aac"),
	})
	require.ErrorIs(t, err, domainerrors.ErrSubmissionNotFound)

	items, err := store.ListForSubmission(context.Background(), "sub_missing", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateCaptionRequiresAudio(t *testing.T) {
	store := memory.NewStore(nil)

	_, err := newCreate(store, nil).Execute(context.Background(), CreateCaptionCommand{SubmissionID: "sub_1"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCaptionInput)
}

func TestRateCaptionPublishesOnlyLikes(t *testing.T) {
	store := memory.NewStore([]entities.Caption{{CaptionID: "cap_1", SubmissionID: "sub_1", DeviceID: "device-abc"}})
	publisher := &recordingPublisher{}
	observer := &recordingObserver{}
	uc := RateCaptionUseCase{Repository: store, Clock: store, IDGen: store, Publisher: publisher, Observer: observer}

	liked, err := uc.Like(context.Background(), "cap_1")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Score)

	hated, err := uc.Hate(context.Background(), "cap_1")
	require.NoError(t, err)
	assert.Equal(t, 0, hated.Score)
	assert.Equal(t, 1, hated.Hates)

	_, err = uc.Like(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrCaptionNotFound)

	assert.Equal(t, []string{contractsv1.TopicCaptionLiked}, publisher.topics)
	assert.Equal(t, []string{"like:applied", "hate:applied", "like:not_found"}, observer.outcomes)
}
