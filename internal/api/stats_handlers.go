package api

import (
	"net/http"
	"strconv"

	"github.com/vmaia/cardswipe/internal/logger"
)

func (s *Server) handleTopCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if max := s.TopCardsMaxLimit; max > 0 && limit > max {
		limit = max
	}

	log.Debug("fetching top cards: limit=%d", limit)
	top, err := s.StatsService.TopCards(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, top)
}
