package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"mobilecontent/internal/config"
	"mobilecontent/internal/html"
	"mobilecontent/pkg/mobilecontent"
)

// MaxBodyBytes caps the size of a document accepted by the conversion endpoint
const MaxBodyBytes = 10 << 20

// Server exposes conversion over HTTP
type Server struct {
	config   config.Config
	registry *mobilecontent.Registry
	logger   zerolog.Logger
	router   chi.Router
}

// New creates a server using cfg for every conversion
func New(cfg config.Config, registry *mobilecontent.Registry, logger zerolog.Logger) *Server {
	if registry == nil {
		registry = mobilecontent.DefaultRegistry
	}

	s := &Server{
		config:   cfg,
		registry: registry,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/blocks", s.handleBlocks)

	s.router = r
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until the server fails
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("listening")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBlocks converts the request body. The base URL comes from the
// "base" query parameter, then the configuration, then the request itself.
func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	content, err := html.ReadUTF8(body, r.Header.Get("Content-Type"))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "document too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := []mobilecontent.Option{
		mobilecontent.WithConfig(s.config),
		mobilecontent.WithRegistry(s.registry),
		mobilecontent.WithRequest(r),
		mobilecontent.WithLogger(s.logger),
	}
	if base := r.URL.Query().Get("base"); base != "" {
		opts = append(opts, mobilecontent.WithBaseURL(base))
	}

	converter, err := mobilecontent.New(content, opts...)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("conversion failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	data, err := converter.JSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// requestLogger logs one line per request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
