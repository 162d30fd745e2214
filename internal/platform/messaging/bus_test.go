package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
)

func TestPublishDeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan string, 1)
	second := make(chan string, 1)
	if err := bus.Subscribe(ctx, "submission.promoted", "cg-a", func(_ context.Context, event contractsv1.Envelope) error {
		first <- event.EventID
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := bus.Subscribe(ctx, "submission.promoted", "cg-b", func(_ context.Context, event contractsv1.Envelope) error {
		second <- event.EventID
		return errors.New("handler errors are logged, not returned")
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(ctx, "submission.promoted", contractsv1.Envelope{EventID: "evt-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	for _, ch := range []chan string{first, second} {
		select {
		case got := <-ch:
			if got != "evt-1" {
				t.Fatalf("expected evt-1, got %s", got)
			}
		case <-time.After(time.Second):
			t.Fatal("event was not delivered")
		}
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus(nil)
	if err := bus.Publish(context.Background(), "caption.liked", contractsv1.Envelope{EventID: "evt-2"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestSubscriberRemovedWhenContextEnds(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	if err := bus.Subscribe(ctx, "caption.liked", "cg", func(context.Context, contractsv1.Envelope) error { return nil }); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()
	bus.Wait()

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if len(bus.subscribers["caption.liked"]) != 0 {
		t.Fatalf("expected subscriber to be removed, got %d", len(bus.subscribers["caption.liked"]))
	}
}
