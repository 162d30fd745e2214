package receipts

import (
	"encoding/json"
	"errors"
	"time"

	domainerrors "giggles/contexts/contest/submission-queue/domain/errors"
	"giggles/contexts/contest/submission-queue/ports"
	"giggles/internal/platform/metrics"
)

func observeVerification(platform string, started time.Time, result ports.ReceiptResult, err error) {
	metrics.ReceiptVerificationDuration.WithLabelValues(platform).Observe(time.Since(started).Seconds())
	outcome := "valid"
	switch {
	case errors.Is(err, domainerrors.ErrMalformedReceiptPayload):
		outcome = "malformed"
	case err != nil:
		outcome = "unavailable"
	case !result.Valid:
		outcome = "invalid"
	}
	metrics.ReceiptVerificationsTotal.WithLabelValues(platform, outcome).Inc()
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
