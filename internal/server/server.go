// Package server exposes the instruction pipeline over HTTP. The layer
// is deliberately thin: handlers validate, call into the core packages,
// and shape JSON responses.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rmoreno/cadet/internal/geometry"
	"github.com/rmoreno/cadet/internal/jobs"
	"github.com/rmoreno/cadet/internal/parser"
	"github.com/rmoreno/cadet/internal/store"
	"github.com/rmoreno/cadet/internal/version"
)

// SchemaVersion identifies the response schema for parse endpoints.
const SchemaVersion = "1.0"

// Options wires the server's collaborators.
type Options struct {
	Interpreter *parser.Interpreter
	History     *store.History
	Exporter    *geometry.Exporter
	Tracker     *jobs.Tracker
	CORSOrigins []string
	UseAI       bool
	Logger      *zap.Logger
}

// Server handles HTTP requests for the instruction pipeline.
type Server struct {
	interp      *parser.Interpreter
	history     *store.History
	exporter    *geometry.Exporter
	tracker     *jobs.Tracker
	corsOrigins []string
	useAI       bool
	logger      *zap.Logger
}

// New creates a server from the given options.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		interp:      opts.Interpreter,
		history:     opts.History,
		exporter:    opts.Exporter,
		tracker:     opts.Tracker,
		corsOrigins: opts.CORSOrigins,
		useAI:       opts.UseAI,
		logger:      logger,
	}
}

// Routes builds the HTTP handler with all routes and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.cors)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)

	r.Post("/process_instruction", s.handleProcessInstruction)
	r.Post("/dry_run", s.handleDryRun)
	r.Post("/generate_model", s.handleGenerateModel)

	r.Post("/jobs", s.handleCreateJob)
	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/{id}", s.handleGetJob)

	r.Get("/outputs", s.handleListOutputs)
	r.Get("/outputs/{file}", s.handleDownloadOutput)

	r.Get("/commands", s.handleListCommands)

	return r
}

// requestLogger logs one line per request with method, path, status,
// and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

// cors answers preflight requests and sets the allow-origin header for
// configured origins. A "*" entry allows any origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed, exact := s.originAllowed(origin); origin != "" && allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			// Credentials are only safe to allow for explicitly listed
			// origins, never for a wildcard match.
			if exact {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) (allowed, exact bool) {
	for _, a := range s.corsOrigins {
		if a == origin {
			return true, true
		}
		if a == "*" {
			allowed = true
		}
	}
	return allowed, false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "cadet instruction interpreter",
		"version": version.Version,
		"health":  "/health",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
