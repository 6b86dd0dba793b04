package services

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"

	apperrors "github.com/vmaia/cardswipe/internal/errors"
	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
	"github.com/vmaia/cardswipe/internal/scryfall"
)

// CardService handles card acquisition and rating business logic
type CardService interface {
	// AcquireCards returns up to count cards matching the optional set
	// filter, preferring the local store and falling back to Scryfall.
	// It may return fewer cards than requested; an empty result means
	// no cards are available, not an error.
	AcquireCards(ctx context.Context, setCode string, count int) ([]models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	RecordRating(ctx context.Context, cardID int64, liked, allFormats bool) error
}

type cardService struct {
	cards   repository.CardRepository
	ratings repository.RatingRepository
	client  scryfall.ClientInterface
	intn    func(n int) int
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository, ratings repository.RatingRepository, client scryfall.ClientInterface) CardService {
	return &cardService{
		cards:   cards,
		ratings: ratings,
		client:  client,
		intn:    rand.IntN,
	}
}

func (s *cardService) AcquireCards(ctx context.Context, setCode string, count int) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("acquiring cards: set_code=%s, count=%d", setCode, count)

	if count <= 0 {
		return nil, apperrors.NewValidationError("count", "must be positive")
	}

	filter := models.CardFilter{SetCode: setCode}
	total, err := s.cards.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count stored cards: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	if total > 0 {
		return s.drawFromStore(ctx, filter, total, count), nil
	}
	return s.drawFromRemote(ctx, setCode, count)
}

// drawFromStore picks count cards by independent uniform-random offset
// reads with replacement. Duplicate draws within one call are expected;
// this is sampling, not a shuffle. A failed single-row read drops that
// draw rather than retrying.
func (s *cardService) drawFromStore(ctx context.Context, filter models.CardFilter, total, count int) []models.Card {
	log := logger.FromContext(ctx)

	out := make([]models.Card, 0, count)
	for i := 0; i < count; i++ {
		offset := s.intn(total)
		card, err := s.cards.GetByOffset(ctx, filter, offset)
		if err != nil {
			log.Warn("dropping failed draw at offset %d: %v", offset, err)
			continue
		}
		out = append(out, *card)
	}
	log.Debug("drew %d of %d cards from store", len(out), count)
	return out
}

// drawFromRemote fetches count random cards from Scryfall and persists
// each one, deduplicating on the Scryfall id. Individual failures skip
// that unit; the call errors only when nothing could be fetched at all.
func (s *cardService) drawFromRemote(ctx context.Context, setCode string, count int) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	out := make([]models.Card, 0, count)
	var lastErr error
	for i := 0; i < count; i++ {
		remote, err := s.client.RandomCard(ctx, setCode)
		if err != nil {
			if errors.Is(err, scryfall.ErrNoMatch) {
				// No card exists for this filter; further requests
				// would answer the same.
				log.Debug("no cards match filter set_code=%s", setCode)
				break
			}
			log.Warn("remote fetch failed, skipping unit: %v", err)
			lastErr = err
			continue
		}

		card, err := s.persistFetched(ctx, mapRemoteCard(remote))
		if err != nil {
			log.Warn("failed to persist fetched card %s, skipping unit: %v", remote.ID, err)
			continue
		}
		out = append(out, *card)
	}

	if len(out) == 0 && lastErr != nil {
		log.Error("card acquisition failed entirely: %v", lastErr)
		return nil, apperrors.NewUpstreamError(lastErr)
	}
	log.Debug("fetched %d of %d cards from remote", len(out), count)
	return out, nil
}

// persistFetched inserts a freshly fetched card, recovering from a
// concurrent insert of the same card by re-reading the stored row. The
// stored row wins over the fresh payload so every caller sees one copy.
func (s *cardService) persistFetched(ctx context.Context, card models.Card) (*models.Card, error) {
	id, err := s.cards.Insert(ctx, card)
	if err == nil {
		card.ID = id
		return &card, nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return s.cards.GetByScryfallID(ctx, card.ScryfallID)
	}
	return nil, err
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("card", id)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return card, nil
}

func (s *cardService) RecordRating(ctx context.Context, cardID int64, liked, allFormats bool) error {
	log := logger.FromContext(ctx)
	log.Debug("recording rating: card_id=%d, liked=%t, all_formats=%t", cardID, liked, allFormats)

	if cardID <= 0 {
		return apperrors.NewValidationError("card_id", "must be positive")
	}
	if allFormats && !liked {
		return apperrors.NewValidationError("all_formats", "requires a liked rating")
	}

	if _, err := s.ratings.Insert(ctx, models.Rating{
		CardID:     cardID,
		Liked:      liked,
		AllFormats: allFormats,
	}); err != nil {
		log.Error("failed to record rating: %v", err)
		return apperrors.NewInternalError(err)
	}
	return nil
}

// mapRemoteCard converts the Scryfall wire shape into the stored card
// shape, defaulting malformed or missing fields at the boundary.
func mapRemoteCard(remote *scryfall.Card) models.Card {
	card := models.Card{
		ScryfallID: remote.ID,
		Name:       remote.Name,
		ImageURL:   remote.ImageURIs.Best(),
		Artist:     remote.Artist,
		SetName:    remote.SetName,
		SetCode:    remote.SetCode,
		TypeLine:   remote.TypeLine,
		OracleText: remote.OracleText,
		ManaCost:   remote.ManaCost,
		Rarity:     remote.Rarity,
		Keywords:   remote.Keywords,
	}
	// Only genuinely double-faced cards carry faces; split and adventure
	// layouts report a single printed face.
	if len(remote.CardFaces) >= 2 {
		for _, face := range remote.CardFaces[:2] {
			card.CardFaces = append(card.CardFaces, models.CardFace{
				Name:     face.Name,
				ImageURL: face.ImageURIs.Best(),
			})
		}
	}
	return card
}
