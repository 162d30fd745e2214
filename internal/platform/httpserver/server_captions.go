package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	captionerrors "giggles/contexts/contest/caption-ranking/domain/errors"
	captionhttp "giggles/contexts/contest/caption-ranking/transport/http"
)

const (
	audioRequiredMessage = "You must attach a valid aac audio file in the `audio` field of your multipart request."
	captionsModule       = "contest/caption-ranking"
)

func (s *Server) handleCreateCaption(w http.ResponseWriter, r *http.Request) {
	submissionID := r.PathValue("id")
	audio, err := s.readUpload(w, r, "audio")
	if err != nil {
		if !writeUploadError(w, err, audioRequiredMessage) {
			s.logInternalError(r, captionsModule, err)
			writeCaptionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	resp, err := s.modules.Captions.Handler.CreateCaptionHandler(r.Context(), submissionID, deviceIDFrom(r), audio)
	if err != nil {
		s.writeCaptionDomainError(w, r, err, submissionID)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCaptions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Captions.Handler.ListForSubmissionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCaptionDomainError(w, r, err, r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCurrentCaptions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Captions.Handler.ListCurrentHandler(r.Context())
	if err != nil {
		s.writeCaptionDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLikeCaption(w http.ResponseWriter, r *http.Request) {
	captionID := r.PathValue("id")
	if err := s.modules.Captions.Handler.LikeHandler(r.Context(), captionID); err != nil {
		s.writeCaptionDomainError(w, r, err, captionID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHateCaption(w http.ResponseWriter, r *http.Request) {
	captionID := r.PathValue("id")
	if err := s.modules.Captions.Handler.HateHandler(r.Context(), captionID); err != nil {
		s.writeCaptionDomainError(w, r, err, captionID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCaptionDomainError renders err; id is the submission or caption the
// request named.
func (s *Server) writeCaptionDomainError(w http.ResponseWriter, r *http.Request, err error, id string) {
	switch {
	case errors.Is(err, captionerrors.ErrInvalidCaptionInput),
		errors.Is(err, captionerrors.ErrInvalidMedia):
		writeCaptionError(w, http.StatusBadRequest, "invalid_media", audioRequiredMessage)
	case errors.Is(err, captionerrors.ErrSubmissionNotFound):
		writeCaptionError(w, http.StatusBadRequest, "submission_not_found",
			fmt.Sprintf("The submission `%s` does not exist.", id))
	case errors.Is(err, captionerrors.ErrCaptionNotFound):
		writeCaptionError(w, http.StatusBadRequest, "caption_not_found",
			fmt.Sprintf("caption `%s` does not exist", id))
	case errors.Is(err, captionerrors.ErrInvalidRating):
		writeCaptionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		s.logInternalError(r, captionsModule, err)
		writeCaptionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCaptionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, captionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
