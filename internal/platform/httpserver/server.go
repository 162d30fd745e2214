package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	captionranking "giggles/contexts/contest/caption-ranking"
	deviceregistry "giggles/contexts/contest/device-registry"
	submissionqueue "giggles/contexts/contest/submission-queue"
	_ "giggles/internal/platform/httpserver/docs"
	"giggles/internal/platform/storage"
)

const (
	defaultMaxUploadBytes  = 2 << 20
	defaultShutdownTimeout = 10 * time.Second
	mediaCacheControl      = "public, max-age=86400"
)

type Modules struct {
	Submissions submissionqueue.Module
	Captions    captionranking.Module
	Devices     deviceregistry.Module
}

type Options struct {
	Environment     string
	KillSwitch      bool
	MaxUploadBytes  int64
	// MediaRoot serves locally stored uploads under /media/. Empty disables
	// the route, which is the case for the s3 backend.
	MediaRoot       string
	ShutdownTimeout time.Duration
}

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	logger   *slog.Logger
	addr     string
	modules  Modules
	opts     Options
	validate *validator.Validate
}

func New(modules Modules, opts Options, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":3000"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		modules:  modules,
		opts:     opts,
		validate: validator.New(),
	}
	s.registerRoutes()
	s.handler = s.withRecovery(s.withAccessLog(s.mux))
	return s
}

// Handler returns the fully wrapped handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting",
			"event", "http_server_starting",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"addr", s.addr,
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /{$}", s.handlePing)
	s.mux.HandleFunc("GET /kill", s.handleKillSwitch)
	s.mux.HandleFunc("DELETE /all", s.handleFlushAll)
	if strings.TrimSpace(s.opts.MediaRoot) != "" {
		s.mux.Handle("GET "+storage.MediaPathPrefix, s.mediaHandler())
	}

	s.mux.HandleFunc("POST /submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /submissions", s.handleListSubmissions)
	s.mux.HandleFunc("POST /next", s.handleNext)
	s.mux.HandleFunc("POST /submissions/{id}/jumpQueue", s.handleJumpQueueIOS)
	s.mux.HandleFunc("POST /submissions/{id}/jumpQueueAndroid", s.handleJumpQueueAndroid)
	s.mux.HandleFunc("POST /submissions/{id}/report", s.handleReportSubmission)

	s.mux.HandleFunc("GET /captions", s.handleListCurrentCaptions)
	s.mux.HandleFunc("GET /submissions/{id}/captions", s.handleListCaptions)
	s.mux.HandleFunc("POST /submissions/{id}/captions", s.handleCreateCaption)
	s.mux.HandleFunc("POST /captions/{id}/like", s.handleLikeCaption)
	s.mux.HandleFunc("POST /captions/{id}/hate", s.handleHateCaption)

	s.mux.HandleFunc("POST /ios/pushTokens", s.handleRegisterIOSToken)
	s.mux.HandleFunc("POST /android/pushTokens", s.handleRegisterAndroidToken)
}

// decodeOptionalJSON treats an empty body as an empty object.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) logInternalError(r *http.Request, module string, err error) {
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", module,
		"layer", "platform",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
}

func deviceIDFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Device-Id"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
