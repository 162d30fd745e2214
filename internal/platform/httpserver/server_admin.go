package httpserver

import (
	"net/http"
	"strings"

	"giggles/internal/platform/config"
	"giggles/internal/platform/storage"
)

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"cool": "nice"})
}

// handleKillSwitch tells old clients whether to stop using the service.
func (s *Server) handleKillSwitch(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"kill": s.opts.KillSwitch})
}

func (s *Server) handleFlushAll(w http.ResponseWriter, r *http.Request) {
	if s.opts.Environment == config.EnvironmentProduction {
		writeError(w, http.StatusForbidden, "forbidden", "flushing is disabled in production")
		return
	}

	flushes := []struct {
		module string
		flush  func() error
	}{
		{captionsModule, func() error { return s.modules.Captions.Handler.FlushHandler(r.Context()) }},
		{submissionsModule, func() error { return s.modules.Submissions.Handler.FlushHandler(r.Context()) }},
		{"contest/device-registry", func() error { return s.modules.Devices.Handler.FlushHandler(r.Context()) }},
	}
	for _, item := range flushes {
		if err := item.flush(); err != nil {
			s.logInternalError(r, item.module, err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
	}

	s.logger.Warn("all records flushed",
		"event", "records_flushed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"environment", s.opts.Environment,
	)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) mediaHandler() http.Handler {
	files := http.StripPrefix(storage.MediaPathPrefix, http.FileServer(http.Dir(s.opts.MediaRoot)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", mediaCacheControl)
		files.ServeHTTP(w, r)
	})
}
