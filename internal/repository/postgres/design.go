package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
)

type designRepository struct {
	db DBTX
}

func NewDesignRepository(db DBTX) repository.DesignRepository {
	return &designRepository{db: db}
}

const designColumns = `id, name, designer_id, image, status, rejection_reason, uploaded_on,
	sales, revenue_cents, price_cents, description, product_id`

func (r *designRepository) Create(ctx context.Context, d *domain.Design) error {
	query := `INSERT INTO designs (name, designer_id, image, status, rejection_reason, uploaded_on,
	          sales, revenue_cents, price_cents, description, product_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		d.Name, d.DesignerID, d.Image, d.Status, d.RejectionReason, time.Now(),
		d.Sales, d.RevenueCents, d.PriceCents, d.Description, d.ProductID).Scan(&d.ID)
}

func (r *designRepository) GetByID(ctx context.Context, id int64) (*domain.Design, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+designColumns+` FROM designs WHERE id = $1`, id)
	d, err := scanDesign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDesignNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *designRepository) Update(ctx context.Context, d *domain.Design) error {
	query := `UPDATE designs SET name=$1, status=$2, rejection_reason=$3, price_cents=$4,
	          description=$5, product_id=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Status, d.RejectionReason, d.PriceCents, d.Description, d.ProductID, d.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrDesignNotFound
	}
	return nil
}

func (r *designRepository) ListByDesigner(ctx context.Context, designerID int64) ([]domain.Design, error) {
	query := `SELECT ` + designColumns + ` FROM designs WHERE designer_id = $1 ORDER BY uploaded_on DESC`
	return r.list(ctx, query, designerID)
}

func (r *designRepository) ListByStatus(ctx context.Context, status domain.DesignStatus) ([]domain.Design, error) {
	query := `SELECT ` + designColumns + ` FROM designs WHERE status = $1 ORDER BY uploaded_on DESC`
	return r.list(ctx, query, status)
}

func (r *designRepository) FindByProductID(ctx context.Context, productID int64) (*domain.Design, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+designColumns+` FROM designs WHERE product_id = $1`, productID)
	d, err := scanDesign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *designRepository) IncrementSales(ctx context.Context, designID int64, quantity int32, revenueCents int64) error {
	query := `UPDATE designs SET sales = sales + $2, revenue_cents = revenue_cents + $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, designID, quantity, revenueCents)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrDesignNotFound
	}
	return nil
}

func (r *designRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Design, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designs []domain.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, *d)
	}
	return designs, rows.Err()
}

func scanDesign(row rowScanner) (*domain.Design, error) {
	d := &domain.Design{}
	var reason, description sql.NullString
	err := row.Scan(&d.ID, &d.Name, &d.DesignerID, &d.Image, &d.Status, &reason, &d.UploadedOn,
		&d.Sales, &d.RevenueCents, &d.PriceCents, &description, &d.ProductID)
	if err != nil {
		return nil, err
	}
	d.RejectionReason = reason.String
	d.Description = description.String
	return d, nil
}
