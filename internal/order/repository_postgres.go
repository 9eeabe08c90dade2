package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the orders table when missing. The whole snapshot
// is stored as one JSONB document; only the id and timestamp are columns.
func (r *PostgresRepository) EnsureSchema() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS orders (
        "orderID" TEXT PRIMARY KEY,
        record JSONB NOT NULL,
        "createdAt" TEXT
    )`)
	return err
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	record, err := json.Marshal(ord)
	if err != nil {
		return Order{}, err
	}
	if _, err := r.db.Exec(`INSERT INTO orders ("orderID", record, "createdAt") VALUES ($1, $2, $3)`,
		ord.ID, string(record), ord.CreatedAt); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	var raw string
	err := r.db.QueryRow(`SELECT record FROM orders WHERE "orderID" = $1`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	var ord Order
	if err := json.Unmarshal([]byte(raw), &ord); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByIDs(ids []string) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}

	rows, err := r.db.Query(`
        SELECT record FROM orders
        WHERE "orderID" = ANY($1::text[])
        ORDER BY array_position($1::text[], "orderID")
    `, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0, len(ids))
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var ord Order
		if err := json.Unmarshal([]byte(raw), &ord); err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}
