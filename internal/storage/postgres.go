package storage

import (
	"database/sql"
	"time"
)

// PostgresStore persists state rows in a single storefront_state table.
// Values are JSON documents produced by the owning service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresStore) EnsureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS storefront_state (
        key TEXT PRIMARY KEY,
        value JSONB NOT NULL,
        "updatedAt" TEXT
    )`)
	return err
}

func (s *PostgresStore) Save(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO storefront_state (key, value, "updatedAt")
        VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET value = $2, "updatedAt" = $3`,
		key, string(value), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *PostgresStore) Load(key string) ([]byte, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM storefront_state WHERE key = $1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (s *PostgresStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM storefront_state WHERE key = $1`, key)
	return err
}
