package sqlite

import (
	"context"
	"database/sql"

	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
)

type setRepository struct {
	db *sql.DB
}

// NewSetRepository creates a new SetRepository implementation
func NewSetRepository(db *sql.DB) repository.SetRepository {
	return &setRepository{db: db}
}

func (r *setRepository) List(ctx context.Context) ([]models.Set, error) {
	log := logger.FromContext(ctx).WithPrefix("set_repo")
	log.Debug("listing cached sets")

	rows, err := r.db.QueryContext(ctx, `
SELECT code, name, COALESCE(icon_svg_uri, ''), released_at, card_count, created_at
FROM mtg_sets
ORDER BY released_at DESC
`)
	if err != nil {
		log.Error("failed to list sets: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var s models.Set
		if err := rows.Scan(&s.Code, &s.Name, &s.IconSVGURI, &s.ReleasedAt, &s.CardCount, &s.CreatedAt); err != nil {
			log.Error("failed to scan set row: %v", err)
			return nil, err
		}
		sets = append(sets, s)
	}
	log.Debug("found %d cached sets", len(sets))
	return sets, rows.Err()
}

func (r *setRepository) InsertBatch(ctx context.Context, sets []models.Set) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("set_repo")
	log.Debug("batch inserting %d sets", len(sets))

	if len(sets) == 0 {
		return 0, nil
	}

	inserted := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO mtg_sets (code, name, icon_svg_uri, released_at, card_count)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(code) DO NOTHING
`)
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, s := range sets {
			res, err := stmt.ExecContext(ctx, s.Code, s.Name, s.IconSVGURI, s.ReleasedAt, s.CardCount)
			if err != nil {
				log.Error("failed to insert set code=%s: %v", s.Code, err)
				return err
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("batch insert completed, %d new sets inserted", inserted)
	return inserted, nil
}
