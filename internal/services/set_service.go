package services

import (
	"context"
	"sort"
	"strings"
	"time"

	apperrors "github.com/vmaia/cardswipe/internal/errors"
	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
	"github.com/vmaia/cardswipe/internal/scryfall"
)

// SetService serves the release-set catalog
type SetService interface {
	// ListSets returns the set catalog, newest first, optionally filtered
	// by a case-insensitive name or code match.
	ListSets(ctx context.Context, query string) ([]models.Set, error)
}

type setService struct {
	sets   repository.SetRepository
	client scryfall.ClientInterface
}

// NewSetService creates a new SetService
func NewSetService(sets repository.SetRepository, client scryfall.ClientInterface) SetService {
	return &setService{sets: sets, client: client}
}

func (s *setService) ListSets(ctx context.Context, query string) ([]models.Set, error) {
	log := logger.FromContext(ctx)

	cached, err := s.sets.List(ctx)
	if err != nil {
		// A failed cache read falls through to the remote catalog.
		log.Warn("set cache read failed: %v", err)
	}
	if len(cached) > 0 {
		log.Debug("serving %d sets from cache", len(cached))
		return filterSets(cached, query), nil
	}

	remote, err := s.client.Sets(ctx)
	if err != nil {
		log.Error("failed to fetch set catalog: %v", err)
		return nil, apperrors.NewUpstreamError(err)
	}

	sets := make([]models.Set, 0, len(remote))
	for _, rs := range remote {
		if rs.CardCount <= 0 {
			continue
		}
		sets = append(sets, mapRemoteSet(rs))
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].ReleasedAt.After(sets[j].ReleasedAt)
	})

	// Best effort: the computed catalog is returned even if caching fails.
	if inserted, err := s.sets.InsertBatch(ctx, sets); err != nil {
		log.Warn("failed to cache set catalog: %v", err)
	} else {
		log.Debug("cached %d new sets", inserted)
	}

	return filterSets(sets, query), nil
}

func filterSets(sets []models.Set, query string) []models.Set {
	if query == "" {
		return sets
	}
	q := strings.ToLower(query)
	out := make([]models.Set, 0, len(sets))
	for _, s := range sets {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Code), q) {
			out = append(out, s)
		}
	}
	return out
}

func mapRemoteSet(rs scryfall.Set) models.Set {
	released, err := time.Parse("2006-01-02", rs.ReleasedAt)
	if err != nil {
		released = time.Time{}
	}
	return models.Set{
		Code:       rs.Code,
		Name:       rs.Name,
		IconSVGURI: rs.IconSVGURI,
		ReleasedAt: released,
		CardCount:  rs.CardCount,
	}
}
