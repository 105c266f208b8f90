package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/chat"
	"github.com/kwikkconnect/kwikkconnect/pkg/usecase"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	rooms  *chat.Rooms
}

type Options func(*Server)

// WithRooms enables the swarm-room chat endpoints. Without rooms the
// REST surface covers cases and experts only.
func WithRooms(rooms *chat.Rooms) Options {
	return func(s *Server) {
		s.rooms = rooms
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
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register-expert", s.handleRegisterExpert)
		r.Get("/experts", s.handleListExperts)

		r.Post("/create-case", s.handleCreateCase)
		r.Get("/cases", s.handleListCases)
		r.Put("/cases/{id}/status", s.handleUpdateStatus)
		r.Get("/expert/{email}/cases", s.handleExpertCases)

		if s.rooms != nil {
			r.Route("/cases/{id}", func(r chi.Router) {
				r.Get("/messages", s.handleListMessages)
				r.Post("/messages", s.handlePostMessage)
				r.Post("/summary", s.handleRequestSummary)
			})
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
