package repository

import (
	"context"

	"github.com/suaudpierre/deckpick/internal/models"
)

// CardRepository defines card data operations
type CardRepository interface {
	ListCards(ctx context.Context) ([]models.Card, error)
	ListEligibleCards(ctx context.Context) ([]models.Card, error)
	GetCard(ctx context.Context, id int) (*models.Card, error)
	CreateCard(ctx context.Context, name string) (int64, error)
	CardExists(ctx context.Context, name string) (bool, error)
	SetCardDone(ctx context.Context, id int, done bool) error
	DeleteCard(ctx context.Context, id int) error
	CountCards(ctx context.Context) (int, error)
	CountEligibleCards(ctx context.Context) (int, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ClearTable(ctx context.Context, table string) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	CardRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
