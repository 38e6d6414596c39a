package services

import (
	"context"

	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/internal/repository"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "base_url")
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil // not yet configured
		}
		return "", err
	}
	return value, nil
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "base_url", url)
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// AllSettings returns commonly used settings as a map
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	settings := make(map[string]interface{})

	baseURL, _ := s.GetBaseURL(ctx)
	settings["base_url"] = baseURL

	lastPick, err := s.repo.GetSetting(ctx, "last_pick_id")
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}
	settings["last_pick_id"] = lastPick

	return settings, nil
}

// ResetResult contains the result of a deck reset
type ResetResult struct {
	Tables  []string `json:"tables"`
	Message string   `json:"message"`
}

// ValidTables defines which tables can be reset
var ValidTables = map[string]bool{
	"cards": true, "settings": true,
}

// InvalidTableError represents an invalid table name error
type InvalidTableError struct {
	Table string
}

func (e *InvalidTableError) Error() string {
	return "invalid table name: " + e.Table
}

// ResetTables validates and clears the specified database tables. Clearing
// cards also clears the persisted last pick, which would otherwise dangle.
func (s *SettingsService) ResetTables(ctx context.Context, tables []string) (*ResetResult, error) {
	if len(tables) == 0 {
		return nil, ErrNoTablesGiven
	}

	var tablesToReset []string
	for _, table := range tables {
		if !ValidTables[table] {
			return nil, &InvalidTableError{Table: table}
		}
		tablesToReset = append(tablesToReset, table)
	}

	for _, table := range tablesToReset {
		if err := s.repo.ClearTable(ctx, table); err != nil {
			return nil, err
		}
		if table == "cards" {
			if err := s.repo.SetSetting(ctx, "last_pick_id", ""); err != nil {
				return nil, err
			}
		}
	}

	s.log.Info("Tables reset", "tables", tablesToReset)
	return &ResetResult{
		Tables:  tablesToReset,
		Message: "Successfully deleted data from tables",
	}, nil
}
