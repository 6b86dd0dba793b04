package api

import (
	"net/http"
	"regexp"

	"github.com/vmaia/cardswipe/internal/errors"
	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/swipe"
)

func (s *Server) handleSwipeState(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(r)

	snap, err := ctrl.EnsureStarted(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}

type gestureRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) handleSwipeGesture(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req gestureRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("gesture received: dx=%.1f, dy=%.1f", req.DX, req.DY)
	out, err := s.controller(r).Drag(r.Context(), req.DX, req.DY)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleSwipeLike(w http.ResponseWriter, r *http.Request) {
	s.swipeAction(w, r, func(ctrl *swipe.Controller) (*swipe.Outcome, error) {
		return ctrl.Like(r.Context())
	})
}

func (s *Server) handleSwipeDislike(w http.ResponseWriter, r *http.Request) {
	s.swipeAction(w, r, func(ctrl *swipe.Controller) (*swipe.Outcome, error) {
		return ctrl.Dislike(r.Context())
	})
}

func (s *Server) handleSwipeSkip(w http.ResponseWriter, r *http.Request) {
	s.swipeAction(w, r, func(ctrl *swipe.Controller) (*swipe.Outcome, error) {
		return ctrl.Skip(r.Context())
	})
}

func (s *Server) handleSwipeAllFormats(w http.ResponseWriter, r *http.Request) {
	s.swipeAction(w, r, func(ctrl *swipe.Controller) (*swipe.Outcome, error) {
		return ctrl.AllFormats(r.Context())
	})
}

func (s *Server) swipeAction(w http.ResponseWriter, r *http.Request, fn func(*swipe.Controller) (*swipe.Outcome, error)) {
	out, err := fn(s.controller(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, out)
}

// Set codes are short lowercase alphanumerics (e.g. "neo", "2x2").
var setCodeRe = regexp.MustCompile(`^[a-z0-9]{2,8}$`)

type filterRequest struct {
	SetCode string `json:"set_code"`
}

func (s *Server) handleSwipeFilter(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.SetCode != "" && !setCodeRe.MatchString(req.SetCode) {
		handleError(w, r, errors.NewValidationError("set_code", "must be a short lowercase set code"))
		return
	}

	log.Debug("applying set filter: set_code=%q", req.SetCode)
	snap, err := s.controller(r).SetFilter(r.Context(), req.SetCode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleSwipeReset(w http.ResponseWriter, r *http.Request) {
	snap, err := s.controller(r).Reset(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}
