package category

import (
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Counts groups artisan_product rows by lower-cased category.
func (r *PostgresRepository) Counts() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT lower(category), COUNT(*) FROM artisan_product GROUP BY lower(category)`)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			continue
		}
		out[name] = count
	}
	return out, rows.Err()
}
