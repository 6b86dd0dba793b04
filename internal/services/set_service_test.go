package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vmaia/cardswipe/internal/errors"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/scryfall"
	"github.com/vmaia/cardswipe/internal/services"
	"github.com/vmaia/cardswipe/internal/testutil/mocks"
)

func newSetServiceForTest() (services.SetService, *mocks.MockSetRepository, *mocks.MockScryfallClient) {
	sets := new(mocks.MockSetRepository)
	client := new(mocks.MockScryfallClient)
	return services.NewSetService(sets, client), sets, client
}

func TestListSets_ServedFromCache(t *testing.T) {
	svc, sets, client := newSetServiceForTest()
	ctx := context.Background()

	cached := []models.Set{
		{Code: "neo", Name: "Kamigawa: Neon Dynasty", CardCount: 302},
		{Code: "lea", Name: "Limited Edition Alpha", CardCount: 295},
	}
	sets.On("List", ctx).Return(cached, nil)

	got, err := svc.ListSets(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	client.AssertNotCalled(t, "Sets", mock.Anything)
}

func TestListSets_EmptyCacheFetchesRemote(t *testing.T) {
	svc, sets, client := newSetServiceForTest()
	ctx := context.Background()

	remote := []scryfall.Set{
		{Code: "lea", Name: "Limited Edition Alpha", ReleasedAt: "1993-08-05", CardCount: 295},
		{Code: "neo", Name: "Kamigawa: Neon Dynasty", ReleasedAt: "2022-02-18", CardCount: 302},
		{Code: "tok", Name: "Token Only Set", ReleasedAt: "2022-03-01", CardCount: 0},
	}
	sets.On("List", ctx).Return(nil, nil)
	client.On("Sets", ctx).Return(remote, nil)
	sets.On("InsertBatch", ctx, mock.AnythingOfType("[]models.Set")).Return(2, nil)

	got, err := svc.ListSets(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Empty sets are dropped and the rest sorted newest first.
	assert.Equal(t, "neo", got[0].Code)
	assert.Equal(t, "lea", got[1].Code)
	assert.Equal(t, time.Date(2022, 2, 18, 0, 0, 0, 0, time.UTC), got[0].ReleasedAt)
	sets.AssertExpectations(t)
}

func TestListSets_CacheReadFailureFallsThrough(t *testing.T) {
	svc, sets, client := newSetServiceForTest()
	ctx := context.Background()

	sets.On("List", ctx).Return(nil, errors.New("table locked"))
	client.On("Sets", ctx).Return([]scryfall.Set{
		{Code: "lea", Name: "Limited Edition Alpha", ReleasedAt: "1993-08-05", CardCount: 295},
	}, nil)
	sets.On("InsertBatch", ctx, mock.AnythingOfType("[]models.Set")).Return(1, nil)

	got, err := svc.ListSets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListSets_CacheWriteFailureStillReturns(t *testing.T) {
	svc, sets, client := newSetServiceForTest()
	ctx := context.Background()

	sets.On("List", ctx).Return(nil, nil)
	client.On("Sets", ctx).Return([]scryfall.Set{
		{Code: "lea", Name: "Limited Edition Alpha", ReleasedAt: "1993-08-05", CardCount: 295},
	}, nil)
	sets.On("InsertBatch", ctx, mock.AnythingOfType("[]models.Set")).Return(0, errors.New("disk full"))

	got, err := svc.ListSets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListSets_RemoteFailure(t *testing.T) {
	svc, sets, client := newSetServiceForTest()
	ctx := context.Background()

	sets.On("List", ctx).Return(nil, nil)
	client.On("Sets", ctx).Return(nil, errors.New("connection refused"))

	_, err := svc.ListSets(ctx, "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeUpstream, appErr.Code)
}

func TestListSets_QueryFiltersNameAndCode(t *testing.T) {
	svc, sets, _ := newSetServiceForTest()
	ctx := context.Background()

	cached := []models.Set{
		{Code: "neo", Name: "Kamigawa: Neon Dynasty", CardCount: 302},
		{Code: "lea", Name: "Limited Edition Alpha", CardCount: 295},
		{Code: "mh3", Name: "Modern Horizons 3", CardCount: 303},
	}
	sets.On("List", ctx).Return(cached, nil)

	byName, err := svc.ListSets(ctx, "kamigawa")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "neo", byName[0].Code)

	byCode, err := svc.ListSets(ctx, "MH3")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "mh3", byCode[0].Code)

	none, err := svc.ListSets(ctx, "zendikar")
	require.NoError(t, err)
	assert.Empty(t, none)
}
