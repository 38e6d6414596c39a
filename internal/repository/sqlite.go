package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/suaudpierre/deckpick/internal/errors"
	"github.com/suaudpierre/deckpick/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository backed by the sqlite file at dbPath
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			done BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_done ON cards(done)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name COLLATE NOCASE)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	// Default settings, if absent. base_url is intentionally not set
	// here - app.go sets it from the detected LAN IP on startup.
	defaultSettings := map[string]string{
		"last_pick_id": "",
	}

	for key, value := range defaultSettings {
		if _, err := r.db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Card Methods ====================

const cardColumns = `id, name, done, created_at`

func scanCard(row interface{ Scan(...interface{}) error }) (models.Card, error) {
	var card models.Card
	var createdAt sql.NullTime
	if err := row.Scan(&card.ID, &card.Name, &card.Done, &createdAt); err != nil {
		return models.Card{}, err
	}
	if createdAt.Valid {
		card.CreatedAt = createdAt.Time
	}
	return card, nil
}

// ListCards returns all cards in creation order
func (r *Repository) ListCards(ctx context.Context) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM cards ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// ListEligibleCards returns all cards not yet marked done, in creation order
func (r *Repository) ListEligibleCards(ctx context.Context) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM cards WHERE done = 0 ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// GetCard returns a card by ID
func (r *Repository) GetCard(ctx context.Context, id int) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("card not found")
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCard inserts a new card and returns its ID
func (r *Repository) CreateCard(ctx context.Context, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (name, done, created_at) VALUES (?, 0, ?)`,
		name, time.Now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CardExists checks if a card with the given name exists (case-insensitive)
func (r *Repository) CardExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM cards WHERE name = ? COLLATE NOCASE)`,
		name).Scan(&exists)
	return exists, err
}

// SetCardDone updates a card's done flag
func (r *Repository) SetCardDone(ctx context.Context, id int, done bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE cards SET done = ? WHERE id = ?`, done, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.NotFound("card not found")
	}
	return nil
}

// DeleteCard removes a card
func (r *Repository) DeleteCard(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.NotFound("card not found")
	}
	return nil
}

// CountCards returns the total number of cards
func (r *Repository) CountCards(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count)
	return count, err
}

// CountEligibleCards returns the number of cards not yet marked done
func (r *Repository) CountEligibleCards(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE done = 0`).Scan(&count)
	return count, err
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ==================== Database Management Methods ====================

// validTables defines which tables can be safely cleared
var validTables = map[string]bool{
	"cards": true, "settings": true,
}

// ClearTable clears all data from a table.
// Only whitelisted tables are allowed, to prevent SQL injection.
func (r *Repository) ClearTable(ctx context.Context, table string) error {
	if !validTables[table] {
		return ErrInvalidTable
	}

	// Safe to concatenate now that the table name is validated
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+table)
	return err
}
