package api

import (
	"net/http"

	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
)

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	query := r.URL.Query().Get("q")
	log.Debug("listing sets: q=%q", query)

	sets, err := s.SetService.ListSets(r.Context(), query)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if sets == nil {
		sets = []models.Set{}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"sets": sets})
}
