package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vmaia/cardswipe/internal/errors"
)

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		handleError(w, r, errors.NewBadRequestError("invalid card id"))
		return
	}

	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}
