package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/logger"
	"threadart-backend/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewOrderService(store repository.Store, emailSvc EmailService) OrderService {
	return &orderService{store: store, emailSvc: emailSvc}
}

// designerEarning is one designer's commission total for a single order.
type designerEarning struct {
	DesignerID  int64
	AmountCents int64
}

// computeDesignerEarnings sums commission per designer across the order's line
// items. Products without a designer contribute nothing. The result is ordered
// by designer id so ledger writes are deterministic.
func computeDesignerEarnings(ctx context.Context, st repository.Store, items []domain.OrderItem) ([]designerEarning, error) {
	totals := make(map[int64]int64)
	for _, item := range items {
		product, err := st.Products().GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.DesignerID == nil {
			continue
		}
		revenue := item.UnitPriceCents * int64(item.Quantity)
		totals[*product.DesignerID] += domain.Commission(revenue)
	}

	ids := make([]int64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	earnings := make([]designerEarning, 0, len(ids))
	for _, id := range ids {
		if totals[id] > 0 {
			earnings = append(earnings, designerEarning{DesignerID: id, AmountCents: totals[id]})
		}
	}
	return earnings, nil
}

func (s *orderService) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = domain.PaymentMethodCOD
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.CustomerName == "" {
		in.CustomerName = user.Name
	}
	if in.CustomerEmail == "" {
		in.CustomerEmail = user.Email
	}

	order := &domain.Order{
		Number:          newOrderNumber(),
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		ShippingAddress: in.ShippingAddress,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
	}

	err = s.store.WithinTx(ctx, func(st repository.Store) error {
		var total int64
		for _, item := range in.Items {
			product, err := st.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			// Reserve stock before the order commits; a failure on any line
			// rolls back every earlier decrement.
			if err := st.Products().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			order.Items = append(order.Items, domain.OrderItem{
				ProductID:      item.ProductID,
				Quantity:       item.Quantity,
				UnitPriceCents: product.PriceCents,
				Name:           product.Name,
			})
			total += product.PriceCents * int64(item.Quantity)
		}

		order.TotalCents = total
		if in.TotalCents > 0 {
			order.TotalCents = in.TotalCents
		}
		if err := st.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// Mirror of the processing/shipped commission pass so immediate
		// payment methods pay designers without passing through processing.
		earnings, err := computeDesignerEarnings(ctx, st, order.Items)
		if err != nil {
			return err
		}
		if in.PaymentMethod.Deferred() {
			return createPendingEarnings(ctx, st, order, earnings)
		}
		if err := createCompletedEarnings(ctx, st, order, earnings); err != nil {
			return err
		}
		return st.Orders().UpdatePaymentStatus(ctx, order.ID, domain.PaymentStatusPaid)
	})
	if err != nil {
		return nil, err
	}
	if !in.PaymentMethod.Deferred() {
		order.PaymentStatus = domain.PaymentStatusPaid
	}

	if err := s.emailSvc.SendOrderConfirmation(ctx, order.CustomerEmail, order.CustomerName, order.Number, order.TotalCents); err != nil {
		logger.Warn("order confirmation email failed", "order", order.Number, "error", err)
	}
	return order, nil
}

func (s *orderService) SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	var order *domain.Order
	var changed bool
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		ord, err := st.Orders().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		order = ord

		// Same-status transition is a no-op: none of the side effects fire.
		if ord.Status == status {
			return nil
		}
		if ord.Status.Terminal() {
			return domain.ErrOrderClosed
		}

		switch status {
		case domain.OrderStatusProcessing, domain.OrderStatusShipped:
			if err := s.ensurePendingEarnings(ctx, st, ord); err != nil {
				return err
			}
		case domain.OrderStatusDelivered:
			if err := s.settleDelivered(ctx, st, ord); err != nil {
				return err
			}
		}

		if err := st.Orders().UpdateStatus(ctx, ord.ID, status); err != nil {
			return err
		}
		ord.Status = status
		ord.UpdatedOn = time.Now()
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.emailSvc.SendOrderStatusUpdate(ctx, order.CustomerEmail, order.CustomerName, order.Number, order.Status); err != nil {
			logger.Warn("order status email failed", "order", order.Number, "error", err)
		}
	}
	return order, nil
}

// ensurePendingEarnings creates one pending earning per designer with
// commission in the order, skipping designers that already have an earning for
// it. Running it twice never double-credits.
func (s *orderService) ensurePendingEarnings(ctx context.Context, st repository.Store, order *domain.Order) error {
	earnings, err := computeDesignerEarnings(ctx, st, order.Items)
	if err != nil {
		return err
	}
	return createPendingEarnings(ctx, st, order, earnings)
}

// settleDelivered finalizes designer money and sales counters for a delivered
// order. Two paths end in the same state: completing earnings left pending by
// an earlier processing/shipped transition, or, when none exist, recomputing
// commissions from the line items and crediting wallets directly.
func (s *orderService) settleDelivered(ctx context.Context, st repository.Store, order *domain.Order) error {
	pending, err := st.Ledger().ListPendingEarningsByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	if len(pending) > 0 {
		for _, tx := range pending {
			if err := st.Ledger().MarkCompleted(ctx, tx.ID); err != nil {
				return fmt.Errorf("complete transaction %d: %w", tx.ID, err)
			}
			if err := st.Users().CreditWallet(ctx, tx.UserID, tx.AmountCents); err != nil {
				return fmt.Errorf("credit designer %d: %w", tx.UserID, err)
			}
		}
	} else {
		earnings, err := computeDesignerEarnings(ctx, st, order.Items)
		if err != nil {
			return err
		}
		if err := createCompletedEarnings(ctx, st, order, earnings); err != nil {
			return err
		}
	}

	return bumpDesignSales(ctx, st, order.Items)
}

func createPendingEarnings(ctx context.Context, st repository.Store, order *domain.Order, earnings []designerEarning) error {
	for _, e := range earnings {
		existing, err := st.Ledger().GetEarning(ctx, e.DesignerID, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		tx := &domain.EarningsTransaction{
			UserID:      e.DesignerID,
			OrderID:     &order.ID,
			Type:        domain.TransactionTypeEarning,
			AmountCents: e.AmountCents,
			Description: fmt.Sprintf("Earnings for order %s", order.Number),
			Status:      domain.TransactionStatusPending,
		}
		if err := st.Ledger().CreateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("record earning for designer %d: %w", e.DesignerID, err)
		}
	}
	return nil
}

func createCompletedEarnings(ctx context.Context, st repository.Store, order *domain.Order, earnings []designerEarning) error {
	for _, e := range earnings {
		existing, err := st.Ledger().GetEarning(ctx, e.DesignerID, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			// Already settled, typically at creation with an immediate
			// payment method.
			continue
		}
		tx := &domain.EarningsTransaction{
			UserID:      e.DesignerID,
			OrderID:     &order.ID,
			Type:        domain.TransactionTypeEarning,
			AmountCents: e.AmountCents,
			Description: fmt.Sprintf("Earnings for order %s", order.Number),
			Status:      domain.TransactionStatusCompleted,
		}
		if err := st.Ledger().CreateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("record earning for designer %d: %w", e.DesignerID, err)
		}
		if err := st.Users().CreditWallet(ctx, e.DesignerID, e.AmountCents); err != nil {
			return fmt.Errorf("credit designer %d: %w", e.DesignerID, err)
		}
	}
	return nil
}

func bumpDesignSales(ctx context.Context, st repository.Store, items []domain.OrderItem) error {
	for _, item := range items {
		design, err := st.Designs().FindByProductID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if design == nil {
			continue
		}
		revenue := item.UnitPriceCents * int64(item.Quantity)
		if err := st.Designs().IncrementSales(ctx, design.ID, item.Quantity, revenue); err != nil {
			return fmt.Errorf("increment sales for design %d: %w", design.ID, err)
		}
	}
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, userID int64, role domain.Role, orderID int64) (*domain.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && role != domain.RoleAdmin {
		return nil, domain.ErrAccessDenied
	}
	return order, nil
}

func (s *orderService) ListOrdersForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.store.Orders().ListByUser(ctx, userID)
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.Orders().List(ctx)
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
