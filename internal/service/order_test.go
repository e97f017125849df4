package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var designerID = int64(5)

func designerTee(id int64, priceCents int64) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          "Sunset Tee",
		PriceCents:    priceCents,
		Category:      domain.ProductCategoryDesigner,
		DesignerID:    &designerID,
		IsActive:      true,
		StockQuantity: 50,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	customer := &domain.User{ID: 1, Name: "Cara", Email: "cara@test.com", Role: domain.RoleCustomer}

	t.Run("COD order records pending earnings", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.users.On("GetByID", ctx, int64(1)).Return(customer, nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.product.On("DecrementStock", ctx, int64(10), int32(3)).Return(nil)
		store.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Order).ID = 42
			}).Return(nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(42)).Return(nil, nil)

		var recorded *domain.EarningsTransaction
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*domain.EarningsTransaction)
			}).Return(nil)
		emailSvc.On("SendOrderConfirmation", ctx, "cara@test.com", "Cara", mock.AnythingOfType("string"), int64(14700)).Return(nil)

		order, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
			Items:         []service.OrderItemInput{{ProductID: 10, Quantity: 3}},
			PaymentMethod: domain.PaymentMethodCOD,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(14700), order.TotalCents)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)

		// 5% of 3 x 4900 = 735, held as pending until delivery
		assert.NotNil(t, recorded)
		assert.Equal(t, int64(735), recorded.AmountCents)
		assert.Equal(t, domain.TransactionStatusPending, recorded.Status)
		assert.Equal(t, designerID, recorded.UserID)
		store.users.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("card order settles earnings immediately", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.users.On("GetByID", ctx, int64(1)).Return(customer, nil)
		store.product.On("GetByID", ctx, int64(11)).Return(designerTee(11, 20000), nil)
		store.product.On("DecrementStock", ctx, int64(11), int32(1)).Return(nil)
		store.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Order).ID = 43
			}).Return(nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(43)).Return(nil, nil)

		var recorded *domain.EarningsTransaction
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*domain.EarningsTransaction)
			}).Return(nil)
		store.users.On("CreditWallet", ctx, designerID, int64(1000)).Return(nil)
		store.orders.On("UpdatePaymentStatus", ctx, int64(43), domain.PaymentStatusPaid).Return(nil)
		emailSvc.On("SendOrderConfirmation", ctx, "cara@test.com", "Cara", mock.AnythingOfType("string"), int64(20000)).Return(nil)

		order, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
			Items:         []service.OrderItemInput{{ProductID: 11, Quantity: 1}},
			PaymentMethod: domain.PaymentMethodCard,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
		assert.Equal(t, int64(1000), recorded.AmountCents)
		assert.Equal(t, domain.TransactionStatusCompleted, recorded.Status)
		store.users.AssertCalled(t, "CreditWallet", ctx, designerID, int64(1000))
	})

	t.Run("empty order is rejected", func(t *testing.T) {
		svc := service.NewOrderService(NewMockStore(), new(MockEmailService))
		_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{})
		assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		svc := service.NewOrderService(NewMockStore(), new(MockEmailService))
		_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
			Items: []service.OrderItemInput{{ProductID: 10, Quantity: 0}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("insufficient stock aborts the whole order", func(t *testing.T) {
		store := NewMockStore()
		svc := service.NewOrderService(store, new(MockEmailService))

		store.users.On("GetByID", ctx, int64(1)).Return(customer, nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.product.On("DecrementStock", ctx, int64(10), int32(99)).Return(domain.ErrOutOfStock)

		_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
			Items: []service.OrderItemInput{{ProductID: 10, Quantity: 99}},
		})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
		store.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func codOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            42,
		Number:        "ORD-AB12CD34",
		UserID:        1,
		TotalCents:    14700,
		Status:        status,
		PaymentMethod: domain.PaymentMethodCOD,
		PaymentStatus: domain.PaymentStatusPending,
		CustomerName:  "Cara",
		CustomerEmail: "cara@test.com",
		Items: []domain.OrderItem{
			{ID: 1, OrderID: 42, ProductID: 10, Quantity: 3, UnitPriceCents: 4900, Name: "Sunset Tee"},
		},
	}
}

func TestOrderService_SetOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("processing creates one pending earning", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusPending), nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(42)).Return(nil, nil)

		var recorded *domain.EarningsTransaction
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*domain.EarningsTransaction)
			}).Return(nil)
		store.orders.On("UpdateStatus", ctx, int64(42), domain.OrderStatusProcessing).Return(nil)
		emailSvc.On("SendOrderStatusUpdate", ctx, "cara@test.com", "Cara", "ORD-AB12CD34", domain.OrderStatusProcessing).Return(nil)

		order, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusProcessing)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusProcessing, order.Status)
		assert.Equal(t, int64(735), recorded.AmountCents)
		assert.Equal(t, domain.TransactionStatusPending, recorded.Status)
	})

	t.Run("shipping after processing does not duplicate the earning", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		existing := &domain.EarningsTransaction{ID: 7, UserID: designerID, AmountCents: 735, Status: domain.TransactionStatusPending}
		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusProcessing), nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(42)).Return(existing, nil)
		store.orders.On("UpdateStatus", ctx, int64(42), domain.OrderStatusShipped).Return(nil)
		emailSvc.On("SendOrderStatusUpdate", ctx, "cara@test.com", "Cara", "ORD-AB12CD34", domain.OrderStatusShipped).Return(nil)

		_, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusShipped)
		assert.NoError(t, err)
		store.ledger.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
	})

	t.Run("delivery completes pending earnings and credits the wallet", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		pending := []domain.EarningsTransaction{
			{ID: 7, UserID: designerID, AmountCents: 735, Status: domain.TransactionStatusPending},
		}
		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusShipped), nil)
		store.ledger.On("ListPendingEarningsByOrder", ctx, int64(42)).Return(pending, nil)
		store.ledger.On("MarkCompleted", ctx, int64(7)).Return(nil)
		store.users.On("CreditWallet", ctx, designerID, int64(735)).Return(nil)
		store.design.On("FindByProductID", ctx, int64(10)).Return(&domain.Design{ID: 3, DesignerID: designerID}, nil)
		store.design.On("IncrementSales", ctx, int64(3), int32(3), int64(14700)).Return(nil)
		store.orders.On("UpdateStatus", ctx, int64(42), domain.OrderStatusDelivered).Return(nil)
		emailSvc.On("SendOrderStatusUpdate", ctx, "cara@test.com", "Cara", "ORD-AB12CD34", domain.OrderStatusDelivered).Return(nil)

		order, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusDelivered)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusDelivered, order.Status)
		store.ledger.AssertCalled(t, "MarkCompleted", ctx, int64(7))
		store.users.AssertCalled(t, "CreditWallet", ctx, designerID, int64(735))
		store.design.AssertCalled(t, "IncrementSales", ctx, int64(3), int32(3), int64(14700))
	})

	t.Run("direct delivery without pending earnings recomputes from line items", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusPending), nil)
		store.ledger.On("ListPendingEarningsByOrder", ctx, int64(42)).Return([]domain.EarningsTransaction{}, nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(42)).Return(nil, nil)

		var recorded *domain.EarningsTransaction
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*domain.EarningsTransaction)
			}).Return(nil)
		store.users.On("CreditWallet", ctx, designerID, int64(735)).Return(nil)
		store.design.On("FindByProductID", ctx, int64(10)).Return(&domain.Design{ID: 3, DesignerID: designerID}, nil)
		store.design.On("IncrementSales", ctx, int64(3), int32(3), int64(14700)).Return(nil)
		store.orders.On("UpdateStatus", ctx, int64(42), domain.OrderStatusDelivered).Return(nil)
		emailSvc.On("SendOrderStatusUpdate", ctx, "cara@test.com", "Cara", "ORD-AB12CD34", domain.OrderStatusDelivered).Return(nil)

		_, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusDelivered)
		assert.NoError(t, err)
		// Both delivery paths end with the same designer payout
		assert.Equal(t, int64(735), recorded.AmountCents)
		assert.Equal(t, domain.TransactionStatusCompleted, recorded.Status)
	})

	t.Run("delivery splits earnings per designer", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		alexID, brynID := int64(8), int64(9)
		order := codOrder(domain.OrderStatusPending)
		order.TotalCents = 25000
		order.Items = []domain.OrderItem{
			{ID: 1, OrderID: 42, ProductID: 20, Quantity: 2, UnitPriceCents: 10000, Name: "Alex Tee"},
			{ID: 2, OrderID: 42, ProductID: 21, Quantity: 1, UnitPriceCents: 5000, Name: "Bryn Tee"},
		}

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(order, nil)
		store.ledger.On("ListPendingEarningsByOrder", ctx, int64(42)).Return([]domain.EarningsTransaction{}, nil)
		store.product.On("GetByID", ctx, int64(20)).
			Return(&domain.Product{ID: 20, Name: "Alex Tee", PriceCents: 10000, Category: domain.ProductCategoryDesigner, DesignerID: &alexID}, nil)
		store.product.On("GetByID", ctx, int64(21)).
			Return(&domain.Product{ID: 21, Name: "Bryn Tee", PriceCents: 5000, Category: domain.ProductCategoryDesigner, DesignerID: &brynID}, nil)
		store.ledger.On("GetEarning", ctx, alexID, int64(42)).Return(nil, nil)
		store.ledger.On("GetEarning", ctx, brynID, int64(42)).Return(nil, nil)

		var recorded []*domain.EarningsTransaction
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).
			Run(func(args mock.Arguments) {
				recorded = append(recorded, args.Get(1).(*domain.EarningsTransaction))
			}).Return(nil)
		store.users.On("CreditWallet", ctx, alexID, int64(1000)).Return(nil)
		store.users.On("CreditWallet", ctx, brynID, int64(250)).Return(nil)
		store.design.On("FindByProductID", ctx, int64(20)).Return(nil, nil)
		store.design.On("FindByProductID", ctx, int64(21)).Return(nil, nil)
		store.orders.On("UpdateStatus", ctx, int64(42), domain.OrderStatusDelivered).Return(nil)
		emailSvc.On("SendOrderStatusUpdate", ctx, "cara@test.com", "Cara", "ORD-AB12CD34", domain.OrderStatusDelivered).Return(nil)

		_, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusDelivered)
		assert.NoError(t, err)

		// 5% of 2 x 10000 for one designer, 5% of 1 x 5000 for the other
		assert.Len(t, recorded, 2)
		assert.Equal(t, alexID, recorded[0].UserID)
		assert.Equal(t, int64(1000), recorded[0].AmountCents)
		assert.Equal(t, brynID, recorded[1].UserID)
		assert.Equal(t, int64(250), recorded[1].AmountCents)
		for _, tx := range recorded {
			assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
		}
		store.users.AssertCalled(t, "CreditWallet", ctx, alexID, int64(1000))
		store.users.AssertCalled(t, "CreditWallet", ctx, brynID, int64(250))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusShipped), nil)

		order, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusShipped)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusShipped, order.Status)
		store.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendOrderStatusUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repeated delivery does not settle twice", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusDelivered), nil)

		order, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusDelivered)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusDelivered, order.Status)
		store.ledger.AssertNotCalled(t, "ListPendingEarningsByOrder", mock.Anything, mock.Anything)
		store.ledger.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything)
		store.ledger.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
		store.users.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything)
		store.design.AssertNotCalled(t, "IncrementSales", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendOrderStatusUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status change refreshes the updated timestamp", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		stale := time.Now().Add(-time.Hour)
		ord := codOrder(domain.OrderStatusShipped)
		ord.UpdatedOn = stale

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(ord, nil)
		store.ledger.On("ListPendingEarningsByOrder", ctx, int64(42)).Return([]domain.EarningsTransaction{}, nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(42)).Return(nil, nil)
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).Return(nil)
		store.users.On("CreditWallet", ctx, designerID, int64(735)).Return(nil)
		store.design.On("FindByProductID", ctx, int64(10)).Return(nil, nil)
		store.orders.On("UpdateStatus", ctx, int64(42), domain.OrderStatusDelivered).Return(nil)
		emailSvc.On("SendOrderStatusUpdate", ctx, "cara@test.com", "Cara", "ORD-AB12CD34", domain.OrderStatusDelivered).Return(nil)

		order, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusDelivered)
		assert.NoError(t, err)
		assert.True(t, order.UpdatedOn.After(stale))
		assert.WithinDuration(t, time.Now(), order.UpdatedOn, time.Minute)
	})

	t.Run("terminal orders cannot move", func(t *testing.T) {
		store := NewMockStore()
		svc := service.NewOrderService(store, new(MockEmailService))

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusDelivered), nil)

		_, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrOrderClosed)
		store.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc := service.NewOrderService(NewMockStore(), new(MockEmailService))
		_, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatus("teleported"))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("ledger failure aborts the transition", func(t *testing.T) {
		store := NewMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc)

		store.orders.On("GetByIDForUpdate", ctx, int64(42)).Return(codOrder(domain.OrderStatusPending), nil)
		store.product.On("GetByID", ctx, int64(10)).Return(designerTee(10, 4900), nil)
		store.ledger.On("GetEarning", ctx, designerID, int64(42)).Return(nil, nil)
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.EarningsTransaction")).
			Return(errors.New("ledger unavailable"))

		_, err := svc.SetOrderStatus(ctx, 42, domain.OrderStatusProcessing)
		assert.Error(t, err)
		store.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendOrderStatusUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees own order", func(t *testing.T) {
		store := NewMockStore()
		svc := service.NewOrderService(store, new(MockEmailService))
		store.orders.On("GetByID", ctx, int64(42)).Return(codOrder(domain.OrderStatusPending), nil)

		order, err := svc.GetOrder(ctx, 1, domain.RoleCustomer, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
	})

	t.Run("other customers are denied", func(t *testing.T) {
		store := NewMockStore()
		svc := service.NewOrderService(store, new(MockEmailService))
		store.orders.On("GetByID", ctx, int64(42)).Return(codOrder(domain.OrderStatusPending), nil)

		_, err := svc.GetOrder(ctx, 99, domain.RoleCustomer, 42)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("admins see any order", func(t *testing.T) {
		store := NewMockStore()
		svc := service.NewOrderService(store, new(MockEmailService))
		store.orders.On("GetByID", ctx, int64(42)).Return(codOrder(domain.OrderStatusPending), nil)

		order, err := svc.GetOrder(ctx, 99, domain.RoleAdmin, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
	})
}
