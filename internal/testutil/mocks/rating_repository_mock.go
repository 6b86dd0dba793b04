package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vmaia/cardswipe/internal/models"
)

// MockRatingRepository is a mock implementation of repository.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Insert(ctx context.Context, rating models.Rating) (int64, error) {
	args := m.Called(ctx, rating)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) TopLiked(ctx context.Context, limit int) ([]models.AggregatedCard, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AggregatedCard), args.Error(1)
}

func (m *MockRatingRepository) TopDisliked(ctx context.Context, limit int) ([]models.AggregatedCard, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AggregatedCard), args.Error(1)
}

func (m *MockRatingRepository) TopAllFormats(ctx context.Context, limit int) ([]models.AggregatedCard, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AggregatedCard), args.Error(1)
}
