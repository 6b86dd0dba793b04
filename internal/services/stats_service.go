package services

import (
	"context"

	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
)

// StatsService exposes the aggregated rating statistics
type StatsService interface {
	TopCards(ctx context.Context, limit int) (models.TopCards, error)
}

type statsService struct {
	ratings repository.RatingRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(ratings repository.RatingRepository) StatsService {
	return &statsService{ratings: ratings}
}

// TopCards reads the three top-N slices of the aggregated view. Each
// slice degrades to empty on its own read failure instead of failing
// the whole call.
func (s *statsService) TopCards(ctx context.Context, limit int) (models.TopCards, error) {
	log := logger.FromContext(ctx)
	if limit <= 0 {
		limit = 10
	}
	log.Debug("reading top cards: limit=%d", limit)

	out := models.TopCards{
		MostLiked:      []models.AggregatedCard{},
		MostDisliked:   []models.AggregatedCard{},
		MostAllFormats: []models.AggregatedCard{},
	}

	if liked, err := s.ratings.TopLiked(ctx, limit); err != nil {
		log.Warn("top liked read failed, returning empty slice: %v", err)
	} else if liked != nil {
		out.MostLiked = liked
	}

	if disliked, err := s.ratings.TopDisliked(ctx, limit); err != nil {
		log.Warn("top disliked read failed, returning empty slice: %v", err)
	} else if disliked != nil {
		out.MostDisliked = disliked
	}

	if allFormats, err := s.ratings.TopAllFormats(ctx, limit); err != nil {
		log.Warn("top all-formats read failed, returning empty slice: %v", err)
	} else if allFormats != nil {
		out.MostAllFormats = allFormats
	}

	return out, nil
}
