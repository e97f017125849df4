package service

import (
	"context"
	"encoding/json"

	"threadart-backend/internal/domain"
)

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput     `json:"items"`
	ShippingAddress string               `json:"shipping_address"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	// TotalCents overrides the computed total when positive; the computed
	// total is the fallback.
	TotalCents int64 `json:"total_cents"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (*domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
	GetOrder(ctx context.Context, userID int64, role domain.Role, orderID int64) (*domain.Order, error)
	ListOrdersForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type WalletService interface {
	RequestWithdrawal(ctx context.Context, designerID int64, amountCents int64) (*domain.EarningsTransaction, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetTransactions(ctx context.Context, userID int64) ([]domain.EarningsTransaction, error)
	ListPendingWithdrawals(ctx context.Context) ([]domain.EarningsTransaction, error)
}

// DesignerStats is the designer dashboard aggregate.
type DesignerStats struct {
	TotalDesigns         int   `json:"total_designs"`
	ApprovedDesigns      int   `json:"approved_designs"`
	PendingDesigns       int   `json:"pending_designs"`
	TotalSales           int32 `json:"total_sales"`
	TotalRevenueCents    int64 `json:"total_revenue_cents"`
	TotalCommissionCents int64 `json:"total_commission_cents"`
	WalletBalanceCents   int64 `json:"wallet_balance_cents"`
}

type DesignService interface {
	SubmitDesign(ctx context.Context, designerID int64, name, image, description string, priceCents int64) (*domain.Design, error)
	ListDesignerDesigns(ctx context.Context, designerID int64) ([]domain.Design, error)
	ListByStatus(ctx context.Context, status domain.DesignStatus) ([]domain.Design, error)
	ApproveDesign(ctx context.Context, designID int64) (*domain.Design, error)
	RejectDesign(ctx context.Context, designID int64, reason string) (*domain.Design, error)
	GetDesignerStats(ctx context.Context, designerID int64) (*DesignerStats, error)
}

type SaveCustomDesignInput struct {
	Name         string          `json:"name"`
	FrontDesign  json.RawMessage `json:"front_design"`
	BackDesign   json.RawMessage `json:"back_design"`
	PreviewFront string          `json:"preview_front"`
	PreviewBack  string          `json:"preview_back"`
}

// UpdateCustomDesignInput carries a partial update; nil fields keep the
// stored value.
type UpdateCustomDesignInput struct {
	Name         *string         `json:"name"`
	FrontDesign  json.RawMessage `json:"front_design"`
	BackDesign   json.RawMessage `json:"back_design"`
	PreviewFront *string         `json:"preview_front"`
	PreviewBack  *string         `json:"preview_back"`
}

type CustomDesignService interface {
	SaveDesign(ctx context.Context, userID int64, in SaveCustomDesignInput) (*domain.CustomDesign, error)
	ListDesigns(ctx context.Context, userID int64) ([]domain.CustomDesign, error)
	GetDesign(ctx context.Context, userID, designID int64) (*domain.CustomDesign, error)
	UpdateDesign(ctx context.Context, userID, designID int64, in UpdateCustomDesignInput) (*domain.CustomDesign, error)
	DeleteDesign(ctx context.Context, userID, designID int64) error
	// GetBaseProduct returns the active blank product custom designs render
	// onto, or domain.ErrProductNotFound when none is configured.
	GetBaseProduct(ctx context.Context) (*domain.Product, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, email, name, orderNumber string, totalCents int64) error
	SendOrderStatusUpdate(ctx context.Context, email, name, orderNumber string, status domain.OrderStatus) error
	SendWithdrawalReceived(ctx context.Context, email, name string, amountCents int64) error
	SendAdminDigest(ctx context.Context, adminEmail, subject, body string) error
}
