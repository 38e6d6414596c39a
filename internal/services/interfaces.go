package services

import (
	"context"

	"github.com/suaudpierre/deckpick/internal/models"
)

// CardServicer defines the interface for deck operations
type CardServicer interface {
	ListCards(ctx context.Context) ([]models.Card, error)
	ListEligibleCards(ctx context.Context) ([]models.Card, error)
	GetCard(ctx context.Context, id int) (*models.Card, error)
	AddCards(ctx context.Context, names []string) (*AddResult, error)
	SetDone(ctx context.Context, id int, done bool) error
	DeleteCard(ctx context.Context, id int) error
	Stats(ctx context.Context) (models.DeckStats, error)
	SetBroadcaster(b Broadcaster)
}

// DrawServicer defines the interface for draw operations
type DrawServicer interface {
	StartDraw(ctx context.Context) error
	State() models.RollState
	LastPick(ctx context.Context) (*models.Card, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]interface{}, error)
	ResetTables(ctx context.Context, tables []string) (*ResetResult, error)
}

// Ensure concrete types implement interfaces
var (
	_ CardServicer     = (*CardService)(nil)
	_ DrawServicer     = (*DrawService)(nil)
	_ SettingsServicer = (*SettingsService)(nil)
)
