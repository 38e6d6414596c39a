package services

import (
	"context"
	"strconv"

	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/internal/models"
	"github.com/suaudpierre/deckpick/internal/repository"
	"github.com/suaudpierre/deckpick/internal/roller"
)

// lastPickKey is the settings key holding the most recent committed pick
const lastPickKey = "last_pick_id"

// Selector is the rolling selector the draw service drives
type Selector interface {
	StartDraw(eligible []models.Card) error
	State() models.RollState
	Rolling() bool
	Cancel()
}

// RollBroadcaster pushes selector updates to connected clients
type RollBroadcaster interface {
	BroadcastRollStarted(eligible int)
	BroadcastRollTick(card models.Card)
	BroadcastRollFinished(card models.Card)
}

// DrawService orchestrates draws: it snapshots the eligible set from the
// store, drives the selector, relays its updates to clients, and persists
// the committed pick.
type DrawService struct {
	log         logger.Logger
	repo        repository.FullRepository
	selector    Selector
	broadcaster RollBroadcaster
}

// NewDrawService creates a new DrawService. The selector is attached
// afterwards via SetSelector because it needs this service as its notifier.
func NewDrawService(log logger.Logger, repo repository.FullRepository) *DrawService {
	return &DrawService{log: log, repo: repo}
}

// SetSelector attaches the rolling selector
func (s *DrawService) SetSelector(sel Selector) {
	s.selector = sel
}

// SetBroadcaster sets the broadcaster for pushing roll updates to clients
func (s *DrawService) SetBroadcaster(b RollBroadcaster) {
	s.broadcaster = b
}

// StartDraw snapshots the current eligible set and starts a draw over it.
// Store mutations after this point do not affect the in-flight draw.
func (s *DrawService) StartDraw(ctx context.Context) error {
	eligible, err := s.repo.ListEligibleCards(ctx)
	if err != nil {
		return err
	}

	if err := s.selector.StartDraw(eligible); err != nil {
		switch err {
		case roller.ErrNoEligibleCards:
			return ErrNoEligibleCards
		case roller.ErrAlreadyRolling:
			return ErrAlreadyRolling
		}
		return err
	}
	return nil
}

// State returns the current selector state
func (s *DrawService) State() models.RollState {
	return s.selector.State()
}

// LastPick returns the most recently committed pick, or nil if there is
// none or the card has since been deleted.
func (s *DrawService) LastPick(ctx context.Context) (*models.Card, error) {
	value, err := s.repo.GetSetting(ctx, lastPickKey)
	if err == repository.ErrNotFound || value == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return nil, nil // stale or invalid value, treat as no pick
	}

	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, nil // card deleted since the pick
	}
	return card, nil
}

// Close cancels any in-progress draw, stopping its pending timers
func (s *DrawService) Close() {
	if s.selector != nil {
		s.selector.Cancel()
	}
}

// RollStarted implements roller.Notifier
func (s *DrawService) RollStarted(eligible int) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastRollStarted(eligible)
	}
}

// RollTick implements roller.Notifier
func (s *DrawService) RollTick(card models.Card) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastRollTick(card)
	}
}

// RollFinished implements roller.Notifier: the committed pick is persisted
// as the deck's selected card and pushed to clients.
func (s *DrawService) RollFinished(card models.Card) {
	ctx := context.Background()
	if err := s.repo.SetSetting(ctx, lastPickKey, strconv.Itoa(card.ID)); err != nil {
		s.log.Warn("Failed to persist committed pick", "card_id", card.ID, "error", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastRollFinished(card)
	}
}

// Ensure DrawService satisfies the selector's notifier contract
var _ roller.Notifier = (*DrawService)(nil)
