package receipts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/internal/platform/config"
)

const skipProduct = "com.superserious.giggles.now"

func writeJSONBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func appleConfig(production string, sandbox string) config.ReceiptConfig {
	return config.ReceiptConfig{
		SkipProductID:     skipProduct,
		AppleSharedSecret: "shared-secret",
		AppleVerifyURL:    production,
		AppleSandboxURL:   sandbox,
		Timeout:           time.Second,
	}
}

func TestAppleVerifierReturnsFirstInAppProduct(t *testing.T) {
	var got appleVerifyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSONBody(w, http.StatusOK, `{"status":0,"receipt":{"in_app":[{"product_id":"com.superserious.giggles.now"}]}}`)
	}))
	defer server.Close()

	result, err := NewAppleVerifier(appleConfig(server.URL, server.URL), nil).Verify(context.Background(), "base64-receipt")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, skipProduct, result.ProductID)
	assert.Equal(t, "base64-receipt", got.ReceiptData)
	assert.Equal(t, "shared-secret", got.Password)
}

func TestAppleVerifierRetriesSandboxReceipts(t *testing.T) {
	production := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(w, http.StatusOK, `{"status":21007}`)
	}))
	defer production.Close()
	var sandboxCalls atomic.Int32
	sandbox := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sandboxCalls.Add(1)
		writeJSONBody(w, http.StatusOK, `{"status":0,"receipt":{"in_app":[{"product_id":"com.other"}]}}`)
	}))
	defer sandbox.Close()

	result, err := NewAppleVerifier(appleConfig(production.URL, sandbox.URL), nil).Verify(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, int32(1), sandboxCalls.Load())
	assert.True(t, result.Valid)
	assert.Equal(t, "com.other", result.ProductID)
}

func TestAppleVerifierOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantValid bool
		wantErr   error
	}{
		{"rejected receipt", http.StatusOK, `{"status":21003}`, false, nil},
		{"missing in_app", http.StatusOK, `{"status":0,"receipt":{"in_app":[]}}`, false, domainerrors.ErrMalformedReceiptPayload},
		{"missing status", http.StatusOK, `{"receipt":{}}`, false, domainerrors.ErrMalformedReceiptPayload},
		{"garbage body", http.StatusOK, `<html>`, false, domainerrors.ErrMalformedReceiptPayload},
		{"server down status", http.StatusOK, `{"status":21005}`, false, domainerrors.ErrVerifierUnavailable},
		{"http failure", http.StatusBadGateway, `{}`, false, domainerrors.ErrVerifierUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSONBody(w, tt.status, tt.body)
			}))
			defer server.Close()

			result, err := NewAppleVerifier(appleConfig(server.URL, server.URL), nil).Verify(context.Background(), "r")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.NotEmpty(t, result.Reason)
		})
	}
}

func newGoogleServer(t *testing.T, purchaseStatus int, purchaseBody string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var tokenCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/token":
			tokenCalls.Add(1)
			_ = r.ParseForm()
			if r.PostForm.Get("refresh_token") != "refresh-token" || r.PostForm.Get("client_id") != "client-id" {
				writeJSONBody(w, http.StatusBadRequest, `{"error":"invalid_grant"}`)
				return
			}
			writeJSONBody(w, http.StatusOK, `{"access_token":"access-token","token_type":"Bearer","expires_in":3600}`)
		case strings.HasPrefix(r.URL.Path, "/androidpublisher/v3/applications/com.superserious.giggles/purchases/products/com.superserious.giggles.now/tokens/"):
			if r.Header.Get("Authorization") != "Bearer access-token" {
				writeJSONBody(w, http.StatusUnauthorized, `{}`)
				return
			}
			writeJSONBody(w, purchaseStatus, purchaseBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, &tokenCalls
}

func googleConfig(baseURL string) config.ReceiptConfig {
	return config.ReceiptConfig{
		SkipProductID:      skipProduct,
		AndroidPackage:     "com.superserious.giggles",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRefreshToken: "refresh-token",
		GoogleTokenURL:     baseURL + "/token",
		GoogleAPIBaseURL:   baseURL,
		Timeout:            time.Second,
	}
}

func TestGoogleVerifierAcceptsConsumedPurchase(t *testing.T) {
	server, tokenCalls := newGoogleServer(t, http.StatusOK, `{"kind":"androidpublisher#productPurchase","purchaseState":0,"consumptionState":1}`)
	verifier := NewGoogleVerifier(googleConfig(server.URL), nil)

	for i := 0; i < 2; i++ {
		result, err := verifier.Verify(context.Background(), "purchase-token")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, skipProduct, result.ProductID)
	}
	assert.Equal(t, int32(1), tokenCalls.Load(), "access token should be cached")
}

func TestGoogleVerifierOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantReason string
		wantErr    error
	}{
		{"not purchased", http.StatusOK, `{"purchaseState":1,"consumptionState":1}`, "purchaseState is invalid", nil},
		{"not consumed", http.StatusOK, `{"purchaseState":0,"consumptionState":0}`, "consumptionState is invalid", nil},
		{"unknown token", http.StatusBadRequest, `{"error":{"code":400}}`, "purchaseToken was not recognised", nil},
		{"missing fields", http.StatusOK, `{"kind":"androidpublisher#productPurchase"}`, "", domainerrors.ErrMalformedReceiptPayload},
		{"server error", http.StatusInternalServerError, `{}`, "", domainerrors.ErrVerifierUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newGoogleServer(t, tt.status, tt.body)
			result, err := NewGoogleVerifier(googleConfig(server.URL), nil).Verify(context.Background(), "purchase-token")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

func TestGoogleVerifierReportsRefusedCredentials(t *testing.T) {
	server, _ := newGoogleServer(t, http.StatusOK, `{}`)
	cfg := googleConfig(server.URL)
	cfg.GoogleRefreshToken = "revoked"

	_, err := NewGoogleVerifier(cfg, nil).Verify(context.Background(), "purchase-token")
	assert.ErrorIs(t, err, domainerrors.ErrVerifierUnavailable)
}
