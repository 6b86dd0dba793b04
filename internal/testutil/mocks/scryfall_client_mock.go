package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vmaia/cardswipe/internal/scryfall"
)

// MockScryfallClient is a mock implementation of scryfall.ClientInterface
type MockScryfallClient struct {
	mock.Mock
}

func (m *MockScryfallClient) RandomCard(ctx context.Context, setCode string) (*scryfall.Card, error) {
	args := m.Called(ctx, setCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scryfall.Card), args.Error(1)
}

func (m *MockScryfallClient) Sets(ctx context.Context) ([]scryfall.Set, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scryfall.Set), args.Error(1)
}
