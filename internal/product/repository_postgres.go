package product

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	createProductTableQuery = `
		CREATE TABLE IF NOT EXISTS artisan_product (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			artisan TEXT NOT NULL,
			category TEXT NOT NULL,
			ai_hint TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT,
			created_at TEXT,
			updated_at TEXT
		)
	`
	listProductsQuery = `
		SELECT id, name, price, artisan, category, ai_hint, description, image_url, created_at, updated_at
		FROM artisan_product
		ORDER BY created_at NULLS FIRST, id
	`
	listProductsExcludingQuery = `
		SELECT id, name, price, artisan, category, ai_hint, description, image_url, created_at, updated_at
		FROM artisan_product
		WHERE NOT (id = ANY($1))
		ORDER BY created_at NULLS FIRST, id
	`
	getProductByIDQuery = `
		SELECT id, name, price, artisan, category, ai_hint, description, image_url, created_at, updated_at
		FROM artisan_product
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO artisan_product (id, name, price, artisan, category, ai_hint, description, image_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	updateProductQuery = `
		UPDATE artisan_product
		SET name = $1,
			price = $2,
			artisan = $3,
			category = $4,
			ai_hint = $5,
			description = $6,
			image_url = $7,
			updated_at = $8
		WHERE id = $9
	`
	deleteProductQuery = `DELETE FROM artisan_product WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the artisan_product table when it is missing.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(createProductTableQuery); err != nil {
		return fmt.Errorf("create artisan_product table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListExcluding filters in SQL so excluded rows never leave the database.
func (r *PostgresRepository) ListExcluding(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return r.List()
	}
	rows, err := r.db.Query(listProductsExcludingQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.db.Exec(insertProductQuery, insertArgs(p)...); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Price,
		p.Artisan,
		p.Category,
		p.AIHint,
		p.Description,
		p.ImageURL,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset deletes all products and inserts the provided list in a single transaction.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM artisan_product`); err != nil {
		return err
	}
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, err := tx.Exec(insertProductQuery, insertArgs(p)...); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func insertArgs(p Product) []any {
	return []any{
		p.ID,
		p.Name,
		p.Price,
		p.Artisan,
		p.Category,
		p.AIHint,
		p.Description,
		p.ImageURL,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// collectProducts skips rows that fail to scan rather than failing the list.
func collectProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var imageURL sql.NullString
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Artisan,
		&p.Category,
		&p.AIHint,
		&p.Description,
		&imageURL,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.String
	}
	return p, nil
}
