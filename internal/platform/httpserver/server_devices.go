package httpserver

import (
	"errors"
	"net/http"

	"giggles/contexts/contest/device-registry/domain/entities"
	deviceerrors "giggles/contexts/contest/device-registry/domain/errors"
	devicehttp "giggles/contexts/contest/device-registry/transport/http"
)

const tokenRequiredMessage = "Please supply a firebase token"

func (s *Server) handleRegisterIOSToken(w http.ResponseWriter, r *http.Request) {
	s.registerToken(w, r, entities.PlatformIOS)
}

func (s *Server) handleRegisterAndroidToken(w http.ResponseWriter, r *http.Request) {
	s.registerToken(w, r, entities.PlatformAndroid)
}

func (s *Server) registerToken(w http.ResponseWriter, r *http.Request, platform entities.Platform) {
	var req devicehttp.RegisterTokenRequest
	if err := decodeOptionalJSON(r, &req); err != nil || s.validate.Struct(req) != nil {
		writeDeviceError(w, http.StatusBadRequest, "token_required", tokenRequiredMessage)
		return
	}

	resp, err := s.modules.Devices.Handler.RegisterTokenHandler(r.Context(), platform, deviceIDFrom(r), req)
	if err != nil {
		s.writeDeviceDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) writeDeviceDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, deviceerrors.ErrTokenRequired):
		writeDeviceError(w, http.StatusBadRequest, "token_required", tokenRequiredMessage)
	case errors.Is(err, deviceerrors.ErrInvalidDeviceInput):
		writeDeviceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		s.logInternalError(r, "contest/device-registry", err)
		writeDeviceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDeviceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, devicehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
