package sqlite

import (
	"context"
	"database/sql"

	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
)

type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new RatingRepository implementation
func NewRatingRepository(db *sql.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Insert(ctx context.Context, rating models.Rating) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("rating_repo")
	log.Debug("inserting rating: card_id=%d, liked=%t, all_formats=%t", rating.CardID, rating.Liked, rating.AllFormats)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_card_ratings (card_id, liked, all_formats)
VALUES (?, ?, ?)
`, rating.CardID, rating.Liked, rating.AllFormats)
	if err != nil {
		log.Error("failed to insert rating: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get rating id: %v", err)
		return 0, err
	}
	log.Debug("rating inserted: id=%d", id)
	return id, nil
}

func (r *ratingRepository) TopLiked(ctx context.Context, limit int) ([]models.AggregatedCard, error) {
	return r.top(ctx, "likes_count", limit)
}

func (r *ratingRepository) TopDisliked(ctx context.Context, limit int) ([]models.AggregatedCard, error) {
	return r.top(ctx, "dislikes_count", limit)
}

func (r *ratingRepository) TopAllFormats(ctx context.Context, limit int) ([]models.AggregatedCard, error) {
	return r.top(ctx, "all_formats_count", limit)
}

// top reads one ordered slice of the aggregated_ratings view. The order
// column is fixed by the exported wrappers, never caller input.
func (r *ratingRepository) top(ctx context.Context, orderColumn string, limit int) ([]models.AggregatedCard, error) {
	log := logger.FromContext(ctx).WithPrefix("rating_repo")
	log.Debug("reading aggregated ratings: order=%s, limit=%d", orderColumn, limit)

	if limit <= 0 {
		limit = 10
	}

	query := sqlBuilder.Select(
		"card_id", "scryfall_id", "name", "image_url", "set_code",
		"likes_count", "dislikes_count", "all_formats_count",
	).From("aggregated_ratings").OrderBy(orderColumn + " DESC").Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to read aggregated ratings: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.AggregatedCard
	for rows.Next() {
		var a models.AggregatedCard
		if err := rows.Scan(&a.CardID, &a.ScryfallID, &a.Name, &a.ImageURL, &a.SetCode,
			&a.LikesCount, &a.DislikesCount, &a.AllFormatsCount); err != nil {
			log.Error("failed to scan aggregated row: %v", err)
			return nil, err
		}
		out = append(out, a)
	}
	log.Debug("found %d aggregated rows", len(out))
	return out, rows.Err()
}
