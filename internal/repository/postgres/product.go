package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, price_cents, original_price_cents, category, description,
	image, images, sizes, colors, designer_id, designer_name, is_featured, is_new, is_active,
	stock_quantity, created_on`

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return err
	}
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return err
	}
	query := `INSERT INTO products (name, price_cents, original_price_cents, category, description,
	          image, images, sizes, colors, designer_id, designer_name, is_featured, is_new, is_active,
	          stock_quantity, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.Name, p.PriceCents, p.OriginalPriceCents, p.Category, p.Description,
		p.Image, images, sizes, colors, p.DesignerID, p.DesignerName,
		p.IsFeatured, p.IsNew, p.IsActive, p.StockQuantity, time.Now()).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return err
	}
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return err
	}
	query := `UPDATE products SET name=$1, price_cents=$2, original_price_cents=$3, category=$4,
	          description=$5, image=$6, images=$7, sizes=$8, colors=$9, is_featured=$10, is_new=$11,
	          is_active=$12, stock_quantity=$13 WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.PriceCents, p.OriginalPriceCents, p.Category, p.Description,
		p.Image, images, sizes, colors, p.IsFeatured, p.IsNew, p.IsActive, p.StockQuantity, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) ListActive(ctx context.Context, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = true`
	args := []interface{}{}
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) DecrementStock(ctx context.Context, productID int64, quantity int32) error {
	// Conditional update, not read-then-write: the stock >= quantity
	// precondition makes concurrent decrements safe against overselling.
	query := `UPDATE products SET stock_quantity = stock_quantity - $2 WHERE id = $1 AND stock_quantity >= $2`
	res, err := r.db.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOutOfStock
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	var images, sizes, colors []byte
	var designerName sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.OriginalPriceCents, &p.Category, &p.Description,
		&p.Image, &images, &sizes, &colors, &p.DesignerID, &designerName,
		&p.IsFeatured, &p.IsNew, &p.IsActive, &p.StockQuantity, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	p.DesignerName = designerName.String
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
			return nil, err
		}
	}
	if len(colors) > 0 {
		if err := json.Unmarshal(colors, &p.Colors); err != nil {
			return nil, err
		}
	}
	return p, nil
}
