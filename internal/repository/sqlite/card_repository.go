package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
)

var cardColumns = []string{
	"id", "scryfall_id", "name", "image_url", "artist", "set_name", "set_code",
	"type_line", "oracle_text", "mana_cost", "rarity", "card_faces", "keywords", "created_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	query := sqlBuilder.Select(cardColumns...).From("cards").Where(squirrel.Eq{"id": id})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	card, err := scanCard(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found: id=%d", id)
		} else {
			log.Error("failed to get card: %v", err)
		}
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) GetByScryfallID(ctx context.Context, scryfallID string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: scryfall_id=%s", scryfallID)

	query := sqlBuilder.Select(cardColumns...).From("cards").Where(squirrel.Eq{"scryfall_id": scryfallID})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	card, err := scanCard(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found: scryfall_id=%s", scryfallID)
		} else {
			log.Error("failed to get card: %v", err)
		}
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("counting cards: set_code=%s", filter.SetCode)

	query := sqlBuilder.Select("COUNT(*)").From("cards")
	if filter.SetCode != "" {
		query = query.Where(squirrel.Eq{"set_code": filter.SetCode})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

// GetByOffset reads the card at the given row offset within the filtered,
// id-ordered card list. The acquisition service uses it for uniform random
// draws with replacement.
func (r *cardRepository) GetByOffset(ctx context.Context, filter models.CardFilter, offset int) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card by offset: set_code=%s, offset=%d", filter.SetCode, offset)

	query := sqlBuilder.Select(cardColumns...).From("cards")
	if filter.SetCode != "" {
		query = query.Where(squirrel.Eq{"set_code": filter.SetCode})
	}
	query = query.OrderBy("id").Limit(1).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	card, err := scanCard(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no card at offset %d", offset)
		} else {
			log.Error("failed to get card by offset: %v", err)
		}
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: scryfall_id=%s, name=%s", c.ScryfallID, c.Name)

	faces, err := marshalFaces(c.CardFaces)
	if err != nil {
		log.Error("failed to marshal card faces: %v", err)
		return 0, err
	}
	keywords, err := marshalKeywords(c.Keywords)
	if err != nil {
		log.Error("failed to marshal keywords: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (
    scryfall_id, name, image_url, artist, set_name, set_code,
    type_line, oracle_text, mana_cost, rarity, card_faces, keywords
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ScryfallID, c.Name, c.ImageURL, c.Artist, c.SetName, c.SetCode,
		c.TypeLine, c.OracleText, c.ManaCost, c.Rarity, faces, keywords)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("card already stored: scryfall_id=%s", c.ScryfallID)
			return 0, repository.ErrDuplicate
		}
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var c models.Card
	var faces sql.NullString
	var keywords string
	err := row.Scan(&c.ID, &c.ScryfallID, &c.Name, &c.ImageURL, &c.Artist, &c.SetName, &c.SetCode,
		&c.TypeLine, &c.OracleText, &c.ManaCost, &c.Rarity, &faces, &keywords, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if faces.Valid && faces.String != "" {
		if err := json.Unmarshal([]byte(faces.String), &c.CardFaces); err != nil {
			// A malformed JSON column degrades to a single-faced card.
			c.CardFaces = nil
		}
	}
	if keywords != "" {
		if err := json.Unmarshal([]byte(keywords), &c.Keywords); err != nil {
			c.Keywords = nil
		}
	}
	return &c, nil
}

func marshalFaces(faces []models.CardFace) (any, error) {
	if len(faces) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(faces)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func marshalKeywords(keywords []string) (string, error) {
	if len(keywords) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(keywords)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
