package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmaia/cardswipe/internal/db"
	"github.com/vmaia/cardswipe/internal/services"
	"github.com/vmaia/cardswipe/internal/session"
)

// Server wires the HTTP surface to the services.
type Server struct {
	CardService      services.CardService
	StatsService     services.StatsService
	SetService       services.SetService
	Sessions         *session.Manager
	DB               *db.DB
	TopCardsMaxLimit int
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/swipe", s.handleSwipeState)
		r.Post("/swipe/gesture", s.handleSwipeGesture)
		r.Post("/swipe/like", s.handleSwipeLike)
		r.Post("/swipe/dislike", s.handleSwipeDislike)
		r.Post("/swipe/skip", s.handleSwipeSkip)
		r.Post("/swipe/all-formats", s.handleSwipeAllFormats)
		r.Put("/swipe/filter", s.handleSwipeFilter)
		r.Post("/swipe/reset", s.handleSwipeReset)

		r.Get("/sets", s.handleListSets)
		r.Get("/stats/top", s.handleTopCards)
		r.Get("/cards/{id}", s.handleGetCard)
	})

	return r
}
