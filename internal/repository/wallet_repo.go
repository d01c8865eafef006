package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepository struct {
	pool *pgxpool.Pool
}

func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// lockWallet creates the wallet row on first use and takes a row lock so that
// concurrent mutations against the same wallet serialize.
func lockWallet(ctx context.Context, tx pgx.Tx, ownerType string, ownerID int64) (*models.Wallet, error) {
	query := `
		INSERT INTO wallets (owner_type, owner_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_type, owner_id)
		DO UPDATE SET owner_type = EXCLUDED.owner_type
		RETURNING id, owner_type, owner_id, pending_balance, balance, created_at
	`
	var wallet models.Wallet
	err := tx.QueryRow(ctx, query, ownerType, ownerID).Scan(
		&wallet.ID,
		&wallet.OwnerType,
		&wallet.OwnerID,
		&wallet.PendingBalance,
		&wallet.Balance,
		&wallet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func appendTransaction(
	ctx context.Context,
	tx pgx.Tx,
	walletID int64,
	amount float64,
	direction string,
	reference string,
	description string,
) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO wallet_transactions (wallet_id, amount, direction, reference, description)
		VALUES ($1, $2, $3, $4, $5)
	`, walletID, amount, direction, reference, description)
	return err
}

func (r *WalletRepository) CreditPending(
	ctx context.Context,
	ownerType string,
	ownerID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := lockWallet(ctx, tx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE wallets SET pending_balance = pending_balance + $2
		WHERE id = $1
		RETURNING pending_balance, balance
	`, wallet.ID, amount).Scan(&wallet.PendingBalance, &wallet.Balance)
	if err != nil {
		return nil, err
	}

	if err := appendTransaction(ctx, tx, wallet.ID, amount, models.TxnDirectionCredit, reference, description); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) ReleasePending(
	ctx context.Context,
	ownerType string,
	ownerID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := lockWallet(ctx, tx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if amount > wallet.PendingBalance {
		return nil, ErrInsufficientPending
	}

	err = tx.QueryRow(ctx, `
		UPDATE wallets SET pending_balance = pending_balance - $2, balance = balance + $2
		WHERE id = $1
		RETURNING pending_balance, balance
	`, wallet.ID, amount).Scan(&wallet.PendingBalance, &wallet.Balance)
	if err != nil {
		return nil, err
	}

	if err := appendTransaction(ctx, tx, wallet.ID, amount, models.TxnDirectionRelease, reference, description); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) DebitPending(
	ctx context.Context,
	ownerType string,
	ownerID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := lockWallet(ctx, tx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if amount > wallet.PendingBalance {
		return nil, ErrInsufficientPending
	}

	err = tx.QueryRow(ctx, `
		UPDATE wallets SET pending_balance = pending_balance - $2
		WHERE id = $1
		RETURNING pending_balance, balance
	`, wallet.ID, amount).Scan(&wallet.PendingBalance, &wallet.Balance)
	if err != nil {
		return nil, err
	}

	if err := appendTransaction(ctx, tx, wallet.ID, amount, models.TxnDirectionDebit, reference, description); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) CreditBalance(
	ctx context.Context,
	ownerType string,
	ownerID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := lockWallet(ctx, tx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE wallets SET balance = balance + $2
		WHERE id = $1
		RETURNING pending_balance, balance
	`, wallet.ID, amount).Scan(&wallet.PendingBalance, &wallet.Balance)
	if err != nil {
		return nil, err
	}

	if err := appendTransaction(ctx, tx, wallet.ID, amount, models.TxnDirectionCredit, reference, description); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) DebitBalance(
	ctx context.Context,
	ownerType string,
	ownerID int64,
	amount float64,
	reference string,
	description string,
) (*models.Wallet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := lockWallet(ctx, tx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if amount > wallet.Balance {
		return nil, ErrInsufficientBalance
	}

	err = tx.QueryRow(ctx, `
		UPDATE wallets SET balance = balance - $2
		WHERE id = $1
		RETURNING pending_balance, balance
	`, wallet.ID, amount).Scan(&wallet.PendingBalance, &wallet.Balance)
	if err != nil {
		return nil, err
	}

	if err := appendTransaction(ctx, tx, wallet.ID, amount, models.TxnDirectionDebit, reference, description); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) GetByOwner(
	ctx context.Context,
	ownerType string,
	ownerID int64,
) (*models.Wallet, error) {
	query := `
		SELECT id, owner_type, owner_id, pending_balance, balance, created_at
		FROM wallets
		WHERE owner_type = $1 AND owner_id = $2
	`
	var wallet models.Wallet
	err := r.pool.QueryRow(ctx, query, ownerType, ownerID).Scan(
		&wallet.ID,
		&wallet.OwnerType,
		&wallet.OwnerID,
		&wallet.PendingBalance,
		&wallet.Balance,
		&wallet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) ListTransactions(
	ctx context.Context,
	ownerType string,
	limit int,
	offset int,
) ([]models.WalletTransaction, error) {
	args := []any{limit, offset}
	where := ""
	if strings.TrimSpace(ownerType) != "" {
		args = append(args, ownerType)
		where = "WHERE w.owner_type = $3"
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.wallet_id, w.owner_type, w.owner_id, t.amount, t.direction,
		       t.reference, t.description, t.created_at
		FROM wallet_transactions t
		JOIN wallets w ON w.id = t.wallet_id
		%s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1 OFFSET $2
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.WalletTransaction, 0)
	for rows.Next() {
		var txn models.WalletTransaction
		if err := rows.Scan(
			&txn.ID,
			&txn.WalletID,
			&txn.OwnerType,
			&txn.OwnerID,
			&txn.Amount,
			&txn.Direction,
			&txn.Reference,
			&txn.Description,
			&txn.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
