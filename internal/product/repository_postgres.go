package product

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const listQuery = `
    SELECT "productID", "productName", "productPrice", "originalPrice", color, size, "productImg"
    FROM products
    ORDER BY "productID"
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`
        SELECT "productID", "productName", "productPrice", "originalPrice", color, size, "productImg"
        FROM products
        WHERE "productID" = $1
    `, id)
	p, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func scanProduct(scan func(dest ...any) error) (Product, error) {
	var p Product
	var original sql.NullFloat64
	var color, size, img sql.NullString
	if err := scan(&p.ID, &p.Name, &p.Price, &original, &color, &size, &img); err != nil {
		return Product{}, err
	}
	p.OriginalPrice = original.Float64
	p.Color = color.String
	p.Size = size.String
	p.Image = img.String
	return p, nil
}
