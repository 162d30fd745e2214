package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// Multipart framing on top of the file itself.
const (
	multipartOverhead = 64 << 10
	multipartMemory   = 1 << 20
)

var (
	errNotMultipart   = errors.New("request is not multipart/form-data")
	errMissingUpload  = errors.New("upload field is missing")
	errUploadTooLarge = errors.New("upload exceeds the size limit")
)

// readUpload returns the bytes of one multipart file field, enforcing
// MaxUploadBytes on both the request body and the file.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return nil, errNotMultipart
	}

	limit := s.opts.MaxUploadBytes
	if r.ContentLength > limit+multipartOverhead {
		return nil, errUploadTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errMissingUpload, err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, errMissingUpload
	}
	defer file.Close()
	if header.Size > limit {
		return nil, errUploadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	if len(data) == 0 {
		return nil, errMissingUpload
	}
	return data, nil
}

// writeUploadError answers the three transport-level upload failures and
// reports whether err was one of them.
func writeUploadError(w http.ResponseWriter, err error, missingMessage string) bool {
	switch {
	case errors.Is(err, errNotMultipart):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"Your `Content-Type` must be `multipart/form-data`.")
	case errors.Is(err, errUploadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Your file is too big.")
	case errors.Is(err, errMissingUpload):
		writeError(w, http.StatusBadRequest, "invalid_media", missingMessage)
	default:
		return false
	}
	return true
}
