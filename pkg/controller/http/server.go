package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edu-lab/mentor/pkg/usecase"
)

// Server is the HTTP boundary of the tutor. It owns no knowledge of
// retrieval, windows, or storage internals; it translates requests into
// use case calls and typed errors into status codes.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases

	corsOrigins []string
}

type Options func(*Server)

// WithCORSOrigins enables CORS for the given origins ("*" allows any)
func WithCORSOrigins(origins []string) Options {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(corsMiddleware(s.corsOrigins))
	}

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler(uc))
		r.Post("/users", createUserHandler(uc))
		r.Get("/users/{userID}", getUserHandler(uc))
		r.Post("/quiz/{topic}", quizHandler(uc))
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
