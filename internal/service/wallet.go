package service

import (
	"context"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/logger"
	"threadart-backend/internal/repository"
)

type walletService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewWalletService(store repository.Store, emailSvc EmailService) WalletService {
	return &walletService{store: store, emailSvc: emailSvc}
}

func (s *walletService) RequestWithdrawal(ctx context.Context, designerID int64, amountCents int64) (*domain.EarningsTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx := &domain.EarningsTransaction{
		UserID:      designerID,
		Type:        domain.TransactionTypeWithdrawal,
		AmountCents: -amountCents,
		Description: "Withdrawal to bank account",
		Status:      domain.TransactionStatusPending,
	}

	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		// Lock the user row so concurrent requests see a consistent balance.
		balance, err := st.Users().GetWalletBalanceForUpdate(ctx, designerID)
		if err != nil {
			return err
		}
		if amountCents > balance {
			return domain.ErrInsufficientBalance
		}
		// The wallet is not debited here: the request stays pending until an
		// external payout process completes it.
		return st.Ledger().CreateTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, designerID)
	if err == nil {
		if err := s.emailSvc.SendWithdrawalReceived(ctx, user.Email, user.Name, amountCents); err != nil {
			logger.Warn("withdrawal email failed", "designer", designerID, "error", err)
		}
	}
	return tx, nil
}

func (s *walletService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.store.Users().GetWalletBalance(ctx, userID)
}

func (s *walletService) GetTransactions(ctx context.Context, userID int64) ([]domain.EarningsTransaction, error) {
	return s.store.Ledger().ListByUser(ctx, userID)
}

func (s *walletService) ListPendingWithdrawals(ctx context.Context) ([]domain.EarningsTransaction, error) {
	return s.store.Ledger().ListPendingWithdrawals(ctx)
}
