package service_test

import (
	"context"
	"time"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
	"threadart-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetWalletBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepo) GetWalletBalanceForUpdate(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepo) CreditWallet(ctx context.Context, userID int64, amountCents int64) error {
	args := m.Called(ctx, userID, amountCents)
	return args.Error(0)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) ListActive(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) DecrementStock(ctx context.Context, productID int64, quantity int32) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockDesignRepo
type MockDesignRepo struct {
	mock.Mock
}

func (m *MockDesignRepo) Create(ctx context.Context, design *domain.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}
func (m *MockDesignRepo) GetByID(ctx context.Context, id int64) (*domain.Design, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Design), args.Error(1)
}
func (m *MockDesignRepo) Update(ctx context.Context, design *domain.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}
func (m *MockDesignRepo) ListByDesigner(ctx context.Context, designerID int64) ([]domain.Design, error) {
	args := m.Called(ctx, designerID)
	return args.Get(0).([]domain.Design), args.Error(1)
}
func (m *MockDesignRepo) ListByStatus(ctx context.Context, status domain.DesignStatus) ([]domain.Design, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Design), args.Error(1)
}
func (m *MockDesignRepo) FindByProductID(ctx context.Context, productID int64) (*domain.Design, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Design), args.Error(1)
}
func (m *MockDesignRepo) IncrementSales(ctx context.Context, designID int64, quantity int32, revenueCents int64) error {
	args := m.Called(ctx, designID, quantity, revenueCents)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.EarningsTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetEarning(ctx context.Context, designerID, orderID int64) (*domain.EarningsTransaction, error) {
	args := m.Called(ctx, designerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ListPendingEarningsByOrder(ctx context.Context, orderID int64) ([]domain.EarningsTransaction, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.EarningsTransaction), args.Error(1)
}
func (m *MockLedgerRepo) MarkCompleted(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByUser(ctx context.Context, userID int64) ([]domain.EarningsTransaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.EarningsTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ListPendingWithdrawals(ctx context.Context) ([]domain.EarningsTransaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EarningsTransaction), args.Error(1)
}

// MockCustomDesignRepo
type MockCustomDesignRepo struct {
	mock.Mock
}

func (m *MockCustomDesignRepo) Create(ctx context.Context, design *domain.CustomDesign) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}
func (m *MockCustomDesignRepo) GetByID(ctx context.Context, id, userID int64) (*domain.CustomDesign, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomDesign), args.Error(1)
}
func (m *MockCustomDesignRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CustomDesign, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CustomDesign), args.Error(1)
}
func (m *MockCustomDesignRepo) Update(ctx context.Context, design *domain.CustomDesign) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}
func (m *MockCustomDesignRepo) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockStore bundles the repo mocks behind the Store interface. WithinTx runs
// the callback against the same mocks, so expectations set on them cover both
// the transactional and non-transactional paths.
type MockStore struct {
	users   *MockUserRepo
	product *MockProductRepo
	design  *MockDesignRepo
	orders  *MockOrderRepo
	ledger  *MockLedgerRepo
	custom  *MockCustomDesignRepo
}

func NewMockStore() *MockStore {
	return &MockStore{
		users:   new(MockUserRepo),
		product: new(MockProductRepo),
		design:  new(MockDesignRepo),
		orders:  new(MockOrderRepo),
		ledger:  new(MockLedgerRepo),
		custom:  new(MockCustomDesignRepo),
	}
}

func (s *MockStore) Users() repository.UserRepository       { return s.users }
func (s *MockStore) Products() repository.ProductRepository { return s.product }
func (s *MockStore) Designs() repository.DesignRepository   { return s.design }
func (s *MockStore) Orders() repository.OrderRepository     { return s.orders }
func (s *MockStore) Ledger() repository.LedgerRepository    { return s.ledger }

func (s *MockStore) CustomDesigns() repository.CustomDesignRepository { return s.custom }

func (s *MockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, email, name, orderNumber string, totalCents int64) error {
	args := m.Called(ctx, email, name, orderNumber, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderStatusUpdate(ctx context.Context, email, name, orderNumber string, status domain.OrderStatus) error {
	args := m.Called(ctx, email, name, orderNumber, status)
	return args.Error(0)
}
func (m *MockEmailService) SendWithdrawalReceived(ctx context.Context, email, name string, amountCents int64) error {
	args := m.Called(ctx, email, name, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminDigest(ctx context.Context, adminEmail, subject, body string) error {
	args := m.Called(ctx, adminEmail, subject, body)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
