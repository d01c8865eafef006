package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/arman-y/MentorHubBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type walletStore interface {
	CreditPending(ctx context.Context, ownerType string, ownerID int64, amount float64, reference, description string) (*models.Wallet, error)
	ReleasePending(ctx context.Context, ownerType string, ownerID int64, amount float64, reference, description string) (*models.Wallet, error)
	DebitPending(ctx context.Context, ownerType string, ownerID int64, amount float64, reference, description string) (*models.Wallet, error)
	CreditBalance(ctx context.Context, ownerType string, ownerID int64, amount float64, reference, description string) (*models.Wallet, error)
	DebitBalance(ctx context.Context, ownerType string, ownerID int64, amount float64, reference, description string) (*models.Wallet, error)
	GetByOwner(ctx context.Context, ownerType string, ownerID int64) (*models.Wallet, error)
	ListTransactions(ctx context.Context, ownerType string, limit, offset int) ([]models.WalletTransaction, error)
}

// LedgerService owns the escrow wallets: mentor pending/available balances,
// user refund credits and the platform revenue account. Every mutation appends
// an immutable transaction record in the same storage transaction that moves
// the balance.
type LedgerService struct {
	wallets           walletStore
	platformAccountID int64
}

func NewLedgerService(wallets walletStore, platformAccountID int64) *LedgerService {
	return &LedgerService{wallets: wallets, platformAccountID: platformAccountID}
}

func (s *LedgerService) CreditMentorPending(
	ctx context.Context,
	mentorID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrInvalidInput)
	}
	return s.wallets.CreditPending(ctx, models.WalletOwnerMentor, mentorID, amount, reference, description)
}

func (s *LedgerService) ReleaseMentorPending(
	ctx context.Context,
	mentorID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: release amount must be positive", ErrInvalidInput)
	}
	wallet, err := s.wallets.ReleasePending(ctx, models.WalletOwnerMentor, mentorID, amount, reference, description)
	if err != nil {
		return nil, mapLedgerErr(err)
	}
	return wallet, nil
}

func (s *LedgerService) DebitMentorPending(
	ctx context.Context,
	mentorID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: debit amount must be positive", ErrInvalidInput)
	}
	wallet, err := s.wallets.DebitPending(ctx, models.WalletOwnerMentor, mentorID, amount, reference, description)
	if err != nil {
		return nil, mapLedgerErr(err)
	}
	return wallet, nil
}

// CreditUserBalance credits refund money to the user's wallet. Unconditional:
// user wallets have no pending side.
func (s *LedgerService) CreditUserBalance(
	ctx context.Context,
	userID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrInvalidInput)
	}
	return s.wallets.CreditBalance(ctx, models.WalletOwnerUser, userID, amount, reference, description)
}

func (s *LedgerService) CreditPlatformRevenue(
	ctx context.Context,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrInvalidInput)
	}
	return s.wallets.CreditBalance(ctx, models.WalletOwnerPlatform, s.platformAccountID, amount, reference, description)
}

func (s *LedgerService) DebitPlatformRevenue(
	ctx context.Context,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: debit amount must be positive", ErrInvalidInput)
	}
	wallet, err := s.wallets.DebitBalance(ctx, models.WalletOwnerPlatform, s.platformAccountID, amount, reference, description)
	if err != nil {
		return nil, mapLedgerErr(err)
	}
	return wallet, nil
}

// GetWallet returns the wallet for the given owner, or an empty wallet when
// nothing has been credited yet.
func (s *LedgerService) GetWallet(
	ctx context.Context,
	ownerType string,
	ownerID int64,
) (*models.Wallet, error) {
	wallet, err := s.wallets.GetByOwner(ctx, ownerType, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Wallet{OwnerType: ownerType, OwnerID: ownerID}, nil
		}
		return nil, err
	}
	return wallet, nil
}

func (s *LedgerService) PlatformWallet(ctx context.Context) (*models.Wallet, error) {
	return s.GetWallet(ctx, models.WalletOwnerPlatform, s.platformAccountID)
}

// Transactions returns the global feed, newest first, optionally filtered by
// owner kind ("mentor", "user", "platform").
func (s *LedgerService) Transactions(
	ctx context.Context,
	ownerType string,
	limit int,
	offset int,
) ([]models.WalletTransaction, error) {
	switch ownerType {
	case "", models.WalletOwnerMentor, models.WalletOwnerUser, models.WalletOwnerPlatform:
	default:
		return nil, fmt.Errorf("%w: unknown owner kind %q", ErrInvalidInput, ownerType)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.wallets.ListTransactions(ctx, ownerType, limit, offset)
}

func mapLedgerErr(err error) error {
	if errors.Is(err, repository.ErrInsufficientPending) || errors.Is(err, repository.ErrInsufficientBalance) {
		return fmt.Errorf("%w: %v", ErrLedgerViolation, err)
	}
	return err
}
