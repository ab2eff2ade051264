package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
	"github.com/ridloal/skincare-store-api/internal/product/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, name, price, description, category, benefits, usage, image, created_at, updated_at`

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category,
			pq.Array(&p.Benefits), &p.Usage, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Category,
		pq.Array(&p.Benefits), &p.Usage, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, price, description, category, benefits, usage, image, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`

	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Description, p.Category, pq.Array(p.Benefits), p.Usage, p.Image, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products
              SET name = $1, price = $2, description = $3, category = $4, benefits = $5, usage = $6, image = $7, updated_at = NOW()
              WHERE id = $8 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Description, p.Category, pq.Array(p.Benefits), p.Usage, p.Image, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		logger.Error("UpdateProduct: exec failed for "+p.ID, err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteProduct: exec failed for "+id, err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
