package postgres_test

import (
	"context"
	"testing"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
	"threadart-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var orderColumns = []string{"id", "number", "user_id", "total_cents", "status", "payment_method",
	"payment_status", "shipping_address", "customer_name", "customer_email", "created_on", "updated_on"}

var itemColumns = []string{"id", "order_id", "product_id", "quantity", "unit_price_cents", "name"}

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	order := &domain.Order{
		Number:        "ORD-AB12CD34",
		UserID:        1,
		TotalCents:    14700,
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCOD,
		PaymentStatus: domain.PaymentStatusPending,
		CustomerName:  "Cara",
		CustomerEmail: "cara@test.com",
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 3, UnitPriceCents: 4900, Name: "Sunset Tee"},
		},
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.Number, order.UserID, order.TotalCents, order.Status, order.PaymentMethod,
			order.PaymentStatus, order.ShippingAddress, order.CustomerName, order.CustomerEmail,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(42), int64(10), int32(3), int64(4900), "Sunset Tee").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Create(ctx, order)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, int64(42), order.Items[0].OrderID)
	assert.Equal(t, int64(1), order.Items[0].ID)
}

func TestOrderRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(42, "ORD-AB12CD34", 1, 14700, "shipped", "cod", "pending", "1 Main St", "Cara", "cara@test.com", now, now))
	mock.ExpectQuery("SELECT (.+) FROM order_items").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(1, 42, 10, 3, 4900, "Sunset Tee"))

	order, err := repo.GetByIDForUpdate(ctx, 42)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, int32(3), order.Items[0].Quantity)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(int64(42), domain.OrderStatusDelivered, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, 42, domain.OrderStatusDelivered))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(int64(99), domain.OrderStatusDelivered, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 99, domain.OrderStatusDelivered)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET wallet_balance_cents").
			WithArgs(int64(5), int64(735)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithinTx(ctx, func(st repository.Store) error {
			return st.Users().CreditWallet(ctx, 5, 735)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET wallet_balance_cents").
			WithArgs(int64(5), int64(735)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = store.WithinTx(ctx, func(st repository.Store) error {
			if err := st.Users().CreditWallet(ctx, 5, 735); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
