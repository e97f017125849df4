package repository

import (
	"context"
	"time"

	"threadart-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetWalletBalance(ctx context.Context, userID int64) (int64, error)
	// GetWalletBalanceForUpdate locks the user row for the remainder of the
	// surrounding transaction. Only meaningful inside WithinTx.
	GetWalletBalanceForUpdate(ctx context.Context, userID int64) (int64, error)
	CreditWallet(ctx context.Context, userID int64, amountCents int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ListActive(ctx context.Context, category string) ([]domain.Product, error)
	// DecrementStock applies a conditional decrement with a stock >= quantity
	// precondition and returns domain.ErrOutOfStock when it does not hold.
	DecrementStock(ctx context.Context, productID int64, quantity int32) error
}

type DesignRepository interface {
	Create(ctx context.Context, design *domain.Design) error
	GetByID(ctx context.Context, id int64) (*domain.Design, error)
	Update(ctx context.Context, design *domain.Design) error
	ListByDesigner(ctx context.Context, designerID int64) ([]domain.Design, error)
	ListByStatus(ctx context.Context, status domain.DesignStatus) ([]domain.Design, error)
	FindByProductID(ctx context.Context, productID int64) (*domain.Design, error)
	IncrementSales(ctx context.Context, designID int64, quantity int32, revenueCents int64) error
}

type OrderRepository interface {
	// Create persists the order and its line-item snapshot.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetByIDForUpdate locks the order row so concurrent status transitions
	// for the same order serialize. Only meaningful inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Order, error)
}

// CustomDesignRepository persists customer-authored shirt layouts. Reads and
// writes are scoped by owner so one customer can never touch another's saves.
type CustomDesignRepository interface {
	Create(ctx context.Context, design *domain.CustomDesign) error
	GetByID(ctx context.Context, id, userID int64) (*domain.CustomDesign, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CustomDesign, error)
	Update(ctx context.Context, design *domain.CustomDesign) error
	Delete(ctx context.Context, id, userID int64) error
}

type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.EarningsTransaction) error
	// GetEarning looks up the earning keyed by (designer, order); it returns
	// (nil, nil) when no such row exists.
	GetEarning(ctx context.Context, designerID, orderID int64) (*domain.EarningsTransaction, error)
	ListPendingEarningsByOrder(ctx context.Context, orderID int64) ([]domain.EarningsTransaction, error)
	MarkCompleted(ctx context.Context, transactionID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.EarningsTransaction, error)
	ListPendingWithdrawals(ctx context.Context) ([]domain.EarningsTransaction, error)
}

// Store bundles the repositories behind a single transactional boundary.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Designs() DesignRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	CustomDesigns() CustomDesignRepository

	// WithinTx runs fn against a Store whose repositories share one database
	// transaction, committing on nil and rolling back every mutation on error.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
