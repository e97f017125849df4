package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const transactionColumns = `id, user_id, order_id, type, amount_cents, description, status, created_on`

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.EarningsTransaction) error {
	// The (user_id, order_id) pair is covered by a unique index on earning
	// rows, backing up the in-transaction duplicate check.
	query := `INSERT INTO earnings_transactions (user_id, order_id, type, amount_cents, description, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, tx.UserID, tx.OrderID, tx.Type, tx.AmountCents, tx.Description, tx.Status, now).Scan(&tx.ID)
	if err != nil {
		return err
	}
	tx.CreatedOn = now
	return nil
}

func (r *ledgerRepository) GetEarning(ctx context.Context, designerID, orderID int64) (*domain.EarningsTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM earnings_transactions
	          WHERE user_id = $1 AND order_id = $2 AND type = $3`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, designerID, orderID, domain.TransactionTypeEarning))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *ledgerRepository) ListPendingEarningsByOrder(ctx context.Context, orderID int64) ([]domain.EarningsTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM earnings_transactions
	          WHERE order_id = $1 AND type = $2 AND status = $3 ORDER BY id`
	return r.list(ctx, query, orderID, domain.TransactionTypeEarning, domain.TransactionStatusPending)
}

func (r *ledgerRepository) MarkCompleted(ctx context.Context, transactionID int64) error {
	query := `UPDATE earnings_transactions SET status = $2 WHERE id = $1 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, transactionID, domain.TransactionStatusCompleted, domain.TransactionStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("transaction is not pending")
	}
	return nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID int64) ([]domain.EarningsTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM earnings_transactions
	          WHERE user_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, userID)
}

func (r *ledgerRepository) ListPendingWithdrawals(ctx context.Context) ([]domain.EarningsTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM earnings_transactions
	          WHERE type = $1 AND status = $2 ORDER BY created_on`
	return r.list(ctx, query, domain.TransactionTypeWithdrawal, domain.TransactionStatusPending)
}

func (r *ledgerRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.EarningsTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.EarningsTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.EarningsTransaction, error) {
	tx := &domain.EarningsTransaction{}
	err := row.Scan(&tx.ID, &tx.UserID, &tx.OrderID, &tx.Type, &tx.AmountCents, &tx.Description, &tx.Status, &tx.CreatedOn)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
