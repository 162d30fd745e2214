package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"giggles/contexts/contest/submission-queue/domain/entities"
	submissionerrors "giggles/contexts/contest/submission-queue/domain/errors"
	submissionhttp "giggles/contexts/contest/submission-queue/transport/http"
)

const (
	photoRequiredMessage  = "You must attach a valid photo in the `photo` field of your multipart request."
	appleReceiptMessage   = "You must provide the Apple `receipt` in your request body."
	googlePurchaseMessage = "You must provide the google `purchaseToken` in your request body."
	wrongProductMessage   = "You have not purchased a pass to skip the line"
	submissionsModule     = "contest/submission-queue"
)

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	photo, err := s.readUpload(w, r, "photo")
	if err != nil {
		if !writeUploadError(w, err, photoRequiredMessage) {
			s.logInternalError(r, submissionsModule, err)
			writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	resp, err := s.modules.Submissions.Handler.CreateSubmissionHandler(r.Context(), photo)
	if err != nil {
		s.writeSubmissionDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Submissions.Handler.ListSubmissionsHandler(r.Context())
	if err != nil {
		s.writeSubmissionDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req submissionhttp.NextRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if err := s.validate.Struct(req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_request", "id must be at most 64 characters")
		return
	}

	if err := s.modules.Submissions.Handler.NextHandler(r.Context(), req); err != nil {
		s.writeSubmissionDomainError(w, r, err, req.ID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJumpQueueIOS(w http.ResponseWriter, r *http.Request) {
	var req submissionhttp.JumpQueueRequest
	if err := decodeOptionalJSON(r, &req); err != nil || s.validate.Struct(req) != nil {
		writeSubmissionError(w, http.StatusBadRequest, "receipt_required", appleReceiptMessage)
		return
	}
	s.jumpQueue(w, r, entities.ReceiptPlatformIOS, req.Receipt)
}

func (s *Server) handleJumpQueueAndroid(w http.ResponseWriter, r *http.Request) {
	var req submissionhttp.JumpQueueAndroidRequest
	if err := decodeOptionalJSON(r, &req); err != nil || s.validate.Struct(req) != nil {
		writeSubmissionError(w, http.StatusBadRequest, "receipt_required", googlePurchaseMessage)
		return
	}
	s.jumpQueue(w, r, entities.ReceiptPlatformAndroid, req.PurchaseToken)
}

func (s *Server) jumpQueue(w http.ResponseWriter, r *http.Request, platform entities.ReceiptPlatform, receipt string) {
	submissionID := r.PathValue("id")
	err := s.modules.Submissions.Handler.JumpQueueHandler(r.Context(), submissionID, platform, receipt)
	if err != nil {
		s.writeSubmissionDomainError(w, r, err, submissionID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReportSubmission(w http.ResponseWriter, r *http.Request) {
	_ = s.modules.Submissions.Handler.ReportHandler(r.Context(), r.PathValue("id"), deviceIDFrom(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeSubmissionDomainError(w http.ResponseWriter, r *http.Request, err error, submissionID string) {
	switch {
	case errors.Is(err, submissionerrors.ErrInvalidSubmissionInput),
		errors.Is(err, submissionerrors.ErrInvalidMedia):
		writeSubmissionError(w, http.StatusBadRequest, "invalid_media", photoRequiredMessage)
	case errors.Is(err, submissionerrors.ErrQueueEmpty):
		writeSubmissionError(w, http.StatusBadRequest, "queue_empty", "Queue empty")
	case errors.Is(err, submissionerrors.ErrSubmissionNotQueued):
		writeSubmissionError(w, http.StatusBadRequest, "not_in_queue",
			fmt.Sprintf("`%s` was not found in the submissions queue.", submissionID))
	case errors.Is(err, submissionerrors.ErrSubmissionGone):
		writeSubmissionError(w, http.StatusGone, "submission_gone",
			fmt.Sprintf("`%s` does not exist.", submissionID))
	case errors.Is(err, submissionerrors.ErrReceiptRequired):
		writeSubmissionError(w, http.StatusBadRequest, "receipt_required", err.Error())
	case errors.Is(err, submissionerrors.ErrWrongProduct):
		writeSubmissionError(w, http.StatusForbidden, "wrong_product", wrongProductMessage)
	case errors.Is(err, submissionerrors.ErrReceiptRejected):
		writeSubmissionError(w, http.StatusForbidden, "receipt_rejected", rejectionReason(err))
	default:
		s.logInternalError(r, submissionsModule, err)
		writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// rejectionReason strips the sentinel prefix the jump queue use case wraps
// store reasons with.
func rejectionReason(err error) string {
	reason := strings.TrimPrefix(err.Error(), submissionerrors.ErrReceiptRejected.Error()+": ")
	if strings.TrimSpace(reason) == "" {
		return submissionerrors.ErrReceiptRejected.Error()
	}
	return reason
}

func writeSubmissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, submissionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
