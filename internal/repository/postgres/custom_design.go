package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
)

type customDesignRepository struct {
	db DBTX
}

func NewCustomDesignRepository(db DBTX) repository.CustomDesignRepository {
	return &customDesignRepository{db: db}
}

const customDesignColumns = `id, user_id, name, front_design, back_design,
	preview_front, preview_back, base_product_id, created_on, updated_on`

func (r *customDesignRepository) Create(ctx context.Context, d *domain.CustomDesign) error {
	query := `INSERT INTO custom_designs (user_id, name, front_design, back_design,
	          preview_front, preview_back, base_product_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		d.UserID, d.Name, []byte(d.FrontDesign), []byte(d.BackDesign),
		d.PreviewFront, d.PreviewBack, d.BaseProductID, time.Now()).
		Scan(&d.ID, &d.CreatedOn, &d.UpdatedOn)
}

func (r *customDesignRepository) GetByID(ctx context.Context, id, userID int64) (*domain.CustomDesign, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customDesignColumns+` FROM custom_designs WHERE id = $1 AND user_id = $2`, id, userID)
	d, err := scanCustomDesign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomDesignNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *customDesignRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CustomDesign, error) {
	query := `SELECT ` + customDesignColumns + ` FROM custom_designs WHERE user_id = $1 ORDER BY updated_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designs []domain.CustomDesign
	for rows.Next() {
		d, err := scanCustomDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, *d)
	}
	return designs, rows.Err()
}

func (r *customDesignRepository) Update(ctx context.Context, d *domain.CustomDesign) error {
	query := `UPDATE custom_designs SET name=$1, front_design=$2, back_design=$3,
	          preview_front=$4, preview_back=$5, updated_on=$6 WHERE id=$7 AND user_id=$8`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query,
		d.Name, []byte(d.FrontDesign), []byte(d.BackDesign),
		d.PreviewFront, d.PreviewBack, now, d.ID, d.UserID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCustomDesignNotFound
	}
	d.UpdatedOn = now
	return nil
}

func (r *customDesignRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM custom_designs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCustomDesignNotFound
	}
	return nil
}

func scanCustomDesign(row rowScanner) (*domain.CustomDesign, error) {
	d := &domain.CustomDesign{}
	var front, back []byte
	var previewFront, previewBack sql.NullString
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &front, &back,
		&previewFront, &previewBack, &d.BaseProductID, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	d.FrontDesign = front
	d.BackDesign = back
	d.PreviewFront = previewFront.String
	d.PreviewBack = previewBack.String
	return d, nil
}
