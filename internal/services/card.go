package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/suaudpierre/deckpick/internal/errors"
	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/internal/models"
	"github.com/suaudpierre/deckpick/internal/repository"
)

// maxBulkAdd caps a single bulk-add request
const maxBulkAdd = 200

// Broadcaster defines the interface for pushing updates to clients
type Broadcaster interface {
	BroadcastDeckUpdated(stats models.DeckStats)
}

// CardService handles deck-related business logic
type CardService struct {
	log         logger.Logger
	repo        repository.CardRepository
	broadcaster Broadcaster
}

// NewCardService creates a new CardService
func NewCardService(log logger.Logger, repo repository.CardRepository) *CardService {
	return &CardService{log: log, repo: repo}
}

// SetBroadcaster sets the broadcaster for pushing deck changes to clients
func (s *CardService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ListCards returns the whole deck in creation order
func (s *CardService) ListCards(ctx context.Context) ([]models.Card, error) {
	return s.repo.ListCards(ctx)
}

// ListEligibleCards returns the cards not yet marked done
func (s *CardService) ListEligibleCards(ctx context.Context) ([]models.Card, error) {
	return s.repo.ListEligibleCards(ctx)
}

// GetCard returns a single card by ID
func (s *CardService) GetCard(ctx context.Context, id int) (*models.Card, error) {
	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		var appErr *errors.Error
		if stderrors.As(err, &appErr) && appErr.Kind == errors.ErrNotFound {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// AddResult contains the outcome of a bulk add
type AddResult struct {
	Added      []models.Card `json:"added"`
	Duplicates []string      `json:"duplicates,omitempty"`
}

// AddCards inserts the given names as new cards. Names are trimmed; empty
// names are rejected. Duplicate names (case-insensitive) are still inserted
// but reported back, since name uniqueness is advisory only.
//
// Inserts are not transactional: on a mid-batch store failure the cards
// inserted so far stay persisted and are returned in the partial AddResult
// alongside the error.
func (s *CardService) AddCards(ctx context.Context, names []string) (*AddResult, error) {
	if len(names) == 0 {
		return nil, ErrNoNamesGiven
	}
	if len(names) > maxBulkAdd {
		return nil, ErrTooManyNames
	}

	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrEmptyCardName
		}
		trimmed = append(trimmed, name)
	}

	result := &AddResult{}
	for _, name := range trimmed {
		exists, err := s.repo.CardExists(ctx, name)
		if err != nil {
			return result, err
		}
		if exists {
			result.Duplicates = append(result.Duplicates, name)
		}

		id, err := s.repo.CreateCard(ctx, name)
		if err != nil {
			return result, err
		}
		card, err := s.repo.GetCard(ctx, int(id))
		if err != nil {
			return result, err
		}
		result.Added = append(result.Added, *card)
	}

	s.log.Info("Cards added", "count", len(result.Added), "duplicates", len(result.Duplicates))
	s.broadcastDeck(ctx)
	return result, nil
}

// SetDone toggles a card's completion flag
func (s *CardService) SetDone(ctx context.Context, id int, done bool) error {
	if err := s.repo.SetCardDone(ctx, id, done); err != nil {
		var appErr *errors.Error
		if stderrors.As(err, &appErr) && appErr.Kind == errors.ErrNotFound {
			return ErrCardNotFound
		}
		return err
	}

	s.log.Info("Card done flag set", "card_id", id, "done", done)
	s.broadcastDeck(ctx)
	return nil
}

// DeleteCard removes a card from the deck
func (s *CardService) DeleteCard(ctx context.Context, id int) error {
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		var appErr *errors.Error
		if stderrors.As(err, &appErr) && appErr.Kind == errors.ErrNotFound {
			return ErrCardNotFound
		}
		return err
	}

	s.log.Info("Card deleted", "card_id", id)
	s.broadcastDeck(ctx)
	return nil
}

// Stats returns deck counts
func (s *CardService) Stats(ctx context.Context) (models.DeckStats, error) {
	total, err := s.repo.CountCards(ctx)
	if err != nil {
		return models.DeckStats{}, err
	}
	eligible, err := s.repo.CountEligibleCards(ctx)
	if err != nil {
		return models.DeckStats{}, err
	}
	return models.DeckStats{
		TotalCards:    total,
		EligibleCards: eligible,
		DoneCards:     total - eligible,
	}, nil
}

// broadcastDeck pushes current deck stats to all connected clients
func (s *CardService) broadcastDeck(ctx context.Context) {
	if s.broadcaster == nil {
		return
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		s.log.Warn("Failed to compute deck stats for broadcast", "error", err)
		return
	}
	s.broadcaster.BroadcastDeckUpdated(stats)
}
