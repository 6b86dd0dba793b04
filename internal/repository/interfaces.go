package repository

import (
	"context"
	"errors"

	"github.com/vmaia/cardswipe/internal/models"
)

// ErrDuplicate is returned by inserts that violate a unique constraint.
// Callers recover by re-reading the existing row.
var ErrDuplicate = errors.New("repository: duplicate key")

// CardRepository handles card data access. Cards are write-once: there are
// no update or delete operations.
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.Card, error)
	GetByScryfallID(ctx context.Context, scryfallID string) (*models.Card, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	GetByOffset(ctx context.Context, filter models.CardFilter, offset int) (*models.Card, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
}

// RatingRepository handles the append-only rating log and the derived
// aggregated view.
type RatingRepository interface {
	Insert(ctx context.Context, rating models.Rating) (int64, error)
	TopLiked(ctx context.Context, limit int) ([]models.AggregatedCard, error)
	TopDisliked(ctx context.Context, limit int) ([]models.AggregatedCard, error)
	TopAllFormats(ctx context.Context, limit int) ([]models.AggregatedCard, error)
}

// SetRepository handles the cached set catalog.
type SetRepository interface {
	List(ctx context.Context) ([]models.Set, error)
	InsertBatch(ctx context.Context, sets []models.Set) (int, error)
}
