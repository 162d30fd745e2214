package receipts

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
	"giggles/internal/platform/config"
)

const (
	googlePurchaseStatePurchased   = 0
	googleConsumptionStateConsumed = 1
	googlePurchasePathTemplate     = "/androidpublisher/v3/applications/{packageName}/purchases/products/{productId}/tokens/{token}"
)

type googleProductPurchase struct {
	Kind             string `json:"kind"`
	ProductID        string `json:"productId"`
	OrderID          string `json:"orderId"`
	PurchaseState    *int   `json:"purchaseState"`
	ConsumptionState *int   `json:"consumptionState"`
}

// GoogleVerifier checks Play in-app purchase tokens for the skip product. The
// access token is minted from a long-lived refresh token and cached by the
// oauth2 transport until it expires.
type GoogleVerifier struct {
	packageName string
	productID   string
	httpClient  *resty.Client
	logger      *slog.Logger
}

var _ ports.ReceiptVerifier = (*GoogleVerifier)(nil)

func NewGoogleVerifier(cfg config.ReceiptConfig, logger *slog.Logger) *GoogleVerifier {
	if logger == nil {
		logger = slog.Default()
	}
	oauthConfig := &oauth2.Config{
		ClientID:     strings.TrimSpace(cfg.GoogleClientID),
		ClientSecret: strings.TrimSpace(cfg.GoogleClientSecret),
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimSpace(cfg.GoogleTokenURL),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	// Token refreshes run outside any request, so they get their own bounded client.
	refreshCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	tokenSource := oauthConfig.TokenSource(refreshCtx, &oauth2.Token{
		RefreshToken: strings.TrimSpace(cfg.GoogleRefreshToken),
	})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: tokenSource},
		Timeout:   cfg.Timeout,
	}
	return &GoogleVerifier{
		packageName: strings.TrimSpace(cfg.AndroidPackage),
		productID:   strings.TrimSpace(cfg.SkipProductID),
		httpClient: resty.NewWithClient(httpClient).
			SetBaseURL(strings.TrimRight(cfg.GoogleAPIBaseURL, "/")),
		logger: logger,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, purchaseToken string) (ports.ReceiptResult, error) {
	started := time.Now()
	result, err := v.verify(ctx, purchaseToken)
	observeVerification("android", started, result, err)
	return result, err
}

func (v *GoogleVerifier) verify(ctx context.Context, purchaseToken string) (ports.ReceiptResult, error) {
	var purchase googleProductPurchase
	resp, err := v.httpClient.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"packageName": v.packageName,
			"productId":   v.productID,
			"token":       purchaseToken,
		}).
		SetResult(&purchase).
		ForceContentType("application/json").
		Get(googlePurchasePathTemplate)
	if err != nil {
		if isDecodeError(err) {
			return ports.ReceiptResult{}, fmt.Errorf("%w: %v", domainerrors.ErrMalformedReceiptPayload, err)
		}
		return ports.ReceiptResult{}, fmt.Errorf("%w: google request failed: %v", domainerrors.ErrVerifierUnavailable, err)
	}

	switch status := resp.StatusCode(); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// Our credentials were refused, not the buyer's token.
		return ports.ReceiptResult{}, fmt.Errorf("%w: google returned http %d", domainerrors.ErrVerifierUnavailable, status)
	case status >= 500:
		return ports.ReceiptResult{}, fmt.Errorf("%w: google returned http %d", domainerrors.ErrVerifierUnavailable, status)
	case status >= 400:
		v.logger.Warn("google purchase token refused",
			"event", "receipt_google_token_refused",
			"module", "contest/submission-queue",
			"layer", "adapter",
			"status", status,
		)
		return ports.ReceiptResult{Valid: false, Reason: "purchaseToken was not recognised"}, nil
	}

	if purchase.PurchaseState == nil || purchase.ConsumptionState == nil {
		return ports.ReceiptResult{}, fmt.Errorf("%w: purchase is missing state fields", domainerrors.ErrMalformedReceiptPayload)
	}
	if *purchase.PurchaseState != googlePurchaseStatePurchased {
		return ports.ReceiptResult{Valid: false, Reason: "purchaseState is invalid"}, nil
	}
	if *purchase.ConsumptionState != googleConsumptionStateConsumed {
		return ports.ReceiptResult{Valid: false, Reason: "consumptionState is invalid"}, nil
	}

	productID := strings.TrimSpace(purchase.ProductID)
	if productID == "" {
		productID = v.productID
	}
	return ports.ReceiptResult{Valid: true, ProductID: productID}, nil
}
