package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"

	"giggles/internal/platform/config"
	"giggles/internal/platform/metrics"
)

var ErrPushRejected = errors.New("push provider rejected the message")

type notification struct {
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

type fcmMessage struct {
	To           string       `json:"to"`
	Notification notification `json:"notification"`
	Priority     string       `json:"priority,omitempty"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// FCMClient sends notifications through the FCM HTTP endpoint. Without a
// server key it only logs what it would have sent.
type FCMClient struct {
	endpoint   string
	serverKey  string
	httpClient *resty.Client
	logger     *slog.Logger
}

func NewFCMClient(cfg config.PushConfig, logger *slog.Logger) *FCMClient {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	return &FCMClient{
		endpoint:   strings.TrimSpace(cfg.FCMEndpoint),
		serverKey:  strings.TrimSpace(cfg.FCMServerKey),
		httpClient: client,
		logger:     logger,
	}
}

func (c *FCMClient) IsEnabled() bool {
	return c != nil && c.serverKey != ""
}

func (c *FCMClient) PushTopic(ctx context.Context, topic string, body string) error {
	err := c.send(ctx, "/topics/"+strings.TrimPrefix(strings.TrimSpace(topic), "/topics/"), body)
	c.observe("topic", err)
	return err
}

func (c *FCMClient) PushDevice(ctx context.Context, token string, body string) error {
	err := c.send(ctx, strings.TrimSpace(token), body)
	c.observe("device", err)
	return err
}

func (c *FCMClient) observe(target string, err error) {
	outcome := metrics.Outcome(err)
	if err == nil && !c.IsEnabled() {
		outcome = "disabled"
	}
	metrics.PushDeliveriesTotal.WithLabelValues(target, outcome).Inc()
}

func (c *FCMClient) send(ctx context.Context, to string, body string) error {
	if !c.IsEnabled() {
		c.logger.Info("push skipped, fcm disabled",
			"event", "push_fcm_disabled",
			"module", "internal/platform/push",
			"layer", "platform",
			"to", to,
			"body", body,
		)
		return nil
	}

	var result fcmResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+c.serverKey).
		SetBody(fcmMessage{
			To:           to,
			Notification: notification{Body: body, Sound: "default"},
			Priority:     "high",
		}).
		SetResult(&result).
		ForceContentType("application/json").
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("fcm request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d: %s", ErrPushRejected, resp.StatusCode(), resp.String())
	}
	if result.Failure > 0 {
		reason := "unknown"
		if len(result.Results) > 0 && result.Results[0].Error != "" {
			reason = result.Results[0].Error
		}
		return fmt.Errorf("%w: %s", ErrPushRejected, reason)
	}

	c.logger.Debug("push delivered",
		"event", "push_fcm_delivered",
		"module", "internal/platform/push",
		"layer", "platform",
		"to", to,
	)
	return nil
}
