package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	apiToken string
}

type Options func(*Server)

// WithAPIToken requires a bearer token on every /api route.
func WithAPIToken(token string) Options {
	return func(s *Server) {
		s.apiToken = token
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		if s.apiToken != "" {
			r.Use(tokenMiddleware(s.apiToken))
		}

		r.Post("/cases", s.handleAnalyze)
		r.Post("/chat", s.handleChat)
		r.Get("/health", s.handleHealth)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleListSettings)
			r.Get("/{key}", s.handleGetSetting)
			r.Put("/{key}", s.handlePutSetting)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Warn("failed to write response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
