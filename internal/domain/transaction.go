package domain

import "time"

type TransactionType string

const (
	TransactionTypeEarning    TransactionType = "earning"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// EarningsTransaction is one row in the append-only designer ledger.
// Earnings are positive, withdrawals negative. A pending earning is not yet
// reflected in the designer's wallet balance; completing it credits the wallet.
type EarningsTransaction struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	// OrderID keys earnings to their originating order. Together with UserID
	// it forms the idempotency key: at most one earning row may exist per
	// (designer, order). Nil for withdrawals.
	OrderID     *int64            `json:"order_id,omitempty"`
	Type        TransactionType   `json:"type"`
	AmountCents int64             `json:"amount_cents"`
	Description string            `json:"description"`
	Status      TransactionStatus `json:"status"`
	CreatedOn   time.Time         `json:"created_on"`
}

// CommissionRateBP is the designer revenue share in basis points (5%).
const CommissionRateBP = 500

// Commission returns the designer commission on revenueCents. Integer basis-
// point math keeps the ledger exact; sub-cent remainders truncate toward zero.
func Commission(revenueCents int64) int64 {
	return revenueCents * CommissionRateBP / 10000
}
