package errors

import "errors"

var (
	ErrInvalidSubmissionInput  = errors.New("invalid submission input")
	ErrInvalidMedia            = errors.New("upload is not a supported photo")
	ErrQueueEmpty              = errors.New("queue empty")
	ErrSubmissionNotQueued     = errors.New("submission is not in the queue")
	ErrSubmissionGone          = errors.New("submission does not exist in the queue")
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrNoCurrentSubmission     = errors.New("no submission has been published")
	ErrReceiptRequired         = errors.New("receipt is required")
	ErrReceiptRejected         = errors.New("receipt rejected")
	ErrWrongProduct            = errors.New("receipt is not for the skip product")
	ErrMalformedReceiptPayload = errors.New("malformed receipt verification payload")
	ErrVerifierUnavailable     = errors.New("receipt verifier unavailable")
	ErrUnsupportedPlatform     = errors.New("unsupported receipt platform")
)
