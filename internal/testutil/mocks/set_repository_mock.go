package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vmaia/cardswipe/internal/models"
)

// MockSetRepository is a mock implementation of repository.SetRepository
type MockSetRepository struct {
	mock.Mock
}

func (m *MockSetRepository) List(ctx context.Context) ([]models.Set, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Set), args.Error(1)
}

func (m *MockSetRepository) InsertBatch(ctx context.Context, sets []models.Set) (int, error) {
	args := m.Called(ctx, sets)
	return args.Int(0), args.Error(1)
}
