package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"threadart-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// standalone or inside Store.WithinTx without knowing which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db      *sql.DB
	users   repository.UserRepository
	product repository.ProductRepository
	design  repository.DesignRepository
	orders  repository.OrderRepository
	ledger  repository.LedgerRepository
	custom  repository.CustomDesignRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		users:   NewUserRepository(db),
		product: NewProductRepository(db),
		design:  NewDesignRepository(db),
		orders:  NewOrderRepository(db),
		ledger:  NewLedgerRepository(db),
		custom:  NewCustomDesignRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Products() repository.ProductRepository { return s.product }
func (s *Store) Designs() repository.DesignRepository   { return s.design }
func (s *Store) Orders() repository.OrderRepository     { return s.orders }
func (s *Store) Ledger() repository.LedgerRepository    { return s.ledger }

func (s *Store) CustomDesigns() repository.CustomDesignRepository { return s.custom }

func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txStore := &Store{
		db:      s.db,
		users:   NewUserRepository(tx),
		product: NewProductRepository(tx),
		design:  NewDesignRepository(tx),
		orders:  NewOrderRepository(tx),
		ledger:  NewLedgerRepository(tx),
		custom:  NewCustomDesignRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
