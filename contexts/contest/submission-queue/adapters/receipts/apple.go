package receipts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
	"giggles/internal/platform/config"
)

const (
	appleStatusOK              = 0
	appleStatusServerDown      = 21005
	appleStatusSandboxReceipt  = 21007
	appleStatusInternalFailure = 21100
)

var appleStatusMessages = map[int]string{
	21000: "The App Store could not read the JSON object you provided.",
	21002: "The data in the receipt-data property was malformed.",
	21003: "The receipt could not be authenticated.",
	21004: "The shared secret you provided does not match the shared secret on file for your account.",
	21005: "The receipt server is not currently available.",
	21006: "This receipt is valid but the subscription has expired.",
	21007: "This receipt is a sandbox receipt, but it was sent to the production service for verification.",
	21008: "This receipt is a production receipt, but it was sent to the sandbox service for verification.",
	21010: "This receipt could not be authorized.",
}

type appleVerifyRequest struct {
	ReceiptData string `json:"receipt-data"`
	Password    string `json:"password,omitempty"`
}

type appleVerifyResponse struct {
	Status  *int `json:"status"`
	Receipt *struct {
		InApp []struct {
			ProductID     string `json:"product_id"`
			TransactionID string `json:"transaction_id"`
		} `json:"in_app"`
	} `json:"receipt"`
}

// AppleVerifier checks App Store receipts with the verifyReceipt endpoint,
// falling back to the sandbox for receipts issued to TestFlight builds.
type AppleVerifier struct {
	productionURL string
	sandboxURL    string
	sharedSecret  string
	httpClient    *resty.Client
	logger        *slog.Logger
}

var _ ports.ReceiptVerifier = (*AppleVerifier)(nil)

func NewAppleVerifier(cfg config.ReceiptConfig, logger *slog.Logger) *AppleVerifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &AppleVerifier{
		productionURL: strings.TrimSpace(cfg.AppleVerifyURL),
		sandboxURL:    strings.TrimSpace(cfg.AppleSandboxURL),
		sharedSecret:  strings.TrimSpace(cfg.AppleSharedSecret),
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.Timeout),
		logger: logger,
	}
}

func (v *AppleVerifier) Verify(ctx context.Context, receipt string) (ports.ReceiptResult, error) {
	started := time.Now()
	result, err := v.verify(ctx, receipt)
	observeVerification("ios", started, result, err)
	return result, err
}

func (v *AppleVerifier) verify(ctx context.Context, receipt string) (ports.ReceiptResult, error) {
	payload, err := v.post(ctx, v.productionURL, receipt)
	if err != nil {
		return ports.ReceiptResult{}, err
	}
	if *payload.Status == appleStatusSandboxReceipt {
		v.logger.Info("apple receipt is from sandbox, retrying",
			"event", "receipt_apple_sandbox_retry",
			"module", "contest/submission-queue",
			"layer", "adapter",
		)
		payload, err = v.post(ctx, v.sandboxURL, receipt)
		if err != nil {
			return ports.ReceiptResult{}, err
		}
	}

	status := *payload.Status
	switch {
	case status == appleStatusOK:
	case status == appleStatusServerDown || (status >= appleStatusInternalFailure && status <= 21199):
		return ports.ReceiptResult{}, fmt.Errorf("%w: apple status %d", domainerrors.ErrVerifierUnavailable, status)
	default:
		message, ok := appleStatusMessages[status]
		if !ok {
			message = fmt.Sprintf("Unknown App Store status %d.", status)
		}
		return ports.ReceiptResult{Valid: false, Reason: message}, nil
	}

	if payload.Receipt == nil || len(payload.Receipt.InApp) == 0 {
		return ports.ReceiptResult{}, fmt.Errorf("%w: receipt.in_app is empty", domainerrors.ErrMalformedReceiptPayload)
	}
	return ports.ReceiptResult{
		Valid:     true,
		ProductID: payload.Receipt.InApp[0].ProductID,
	}, nil
}

func (v *AppleVerifier) post(ctx context.Context, url string, receipt string) (appleVerifyResponse, error) {
	var payload appleVerifyResponse
	resp, err := v.httpClient.R().
		SetContext(ctx).
		SetBody(appleVerifyRequest{ReceiptData: receipt, Password: v.sharedSecret}).
		SetResult(&payload).
		ForceContentType("application/json").
		Post(url)
	if err != nil {
		if isDecodeError(err) {
			return appleVerifyResponse{}, fmt.Errorf("%w: %v", domainerrors.ErrMalformedReceiptPayload, err)
		}
		return appleVerifyResponse{}, fmt.Errorf("%w: apple request failed: %v", domainerrors.ErrVerifierUnavailable, err)
	}
	if resp.IsError() {
		return appleVerifyResponse{}, fmt.Errorf("%w: apple returned http %d", domainerrors.ErrVerifierUnavailable, resp.StatusCode())
	}
	if payload.Status == nil {
		return appleVerifyResponse{}, fmt.Errorf("%w: missing status", domainerrors.ErrMalformedReceiptPayload)
	}
	return payload, nil
}
