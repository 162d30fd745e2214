package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	contractsv1 "giggles/contracts/gen/events/v1"
	"giggles/contexts/contest/caption-ranking/ports"
)

type tokenTable map[string]string

func (t tokenTable) TokenForDevice(_ context.Context, deviceID string) (string, bool, error) {
	token, ok := t[deviceID]
	return token, ok, nil
}

type failingTokens struct{}

func (failingTokens) TokenForDevice(context.Context, string) (string, bool, error) {
	return "", false, errors.New("db down")
}

type deviceNotifier struct {
	tokens []string
	bodies []string
}

func (n *deviceNotifier) PushDevice(_ context.Context, token string, body string) error {
	n.tokens = append(n.tokens, token)
	n.bodies = append(n.bodies, body)
	return nil
}

func likedEnvelope(t *testing.T, deviceID string) ports.EventEnvelope {
	t.Helper()
	envelope, err := contractsv1.NewEnvelope("evt_1", contractsv1.TopicCaptionLiked, "caption-ranking", "cap_1", time.Now().UTC(),
		contractsv1.CaptionLiked{CaptionID: "cap_1", SubmissionID: "sub_1", DeviceID: deviceID, Likes: 1, Score: 1})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	return envelope
}

func TestLikeNotifierPushesToAuthorDevice(t *testing.T) {
	notifier := &deviceNotifier{}
	worker := LikeNotifier{Devices: tokenTable{"abc": "fcm-token-abc"}, Notifier: notifier}

	if err := worker.handleLiked(context.Background(), likedEnvelope(t, "abc")); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(notifier.tokens) != 1 || notifier.tokens[0] != "fcm-token-abc" {
		t.Fatalf("expected push to fcm-token-abc, got %v", notifier.tokens)
	}
	if notifier.bodies[0] != "Someone liked your caption. You have value." {
		t.Fatalf("unexpected body %q", notifier.bodies[0])
	}
}

func TestLikeNotifierSkipsUnknownDevices(t *testing.T) {
	notifier := &deviceNotifier{}
	tests := []struct {
		name     string
		devices  ports.DeviceTokens
		deviceID string
	}{
		{"anonymous caption", tokenTable{}, ""},
		{"unregistered device", tokenTable{"abc": "t"}, "xyz"},
		{"lookup failure", failingTokens{}, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := LikeNotifier{Devices: tt.devices, Notifier: notifier}
			if err := worker.handleLiked(context.Background(), likedEnvelope(t, tt.deviceID)); err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
		})
	}
	if len(notifier.tokens) != 0 {
		t.Fatalf("expected no pushes, got %v", notifier.tokens)
	}
}
