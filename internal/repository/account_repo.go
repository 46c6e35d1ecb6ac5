package repository

import (
	"context"
	"errors"

	"casino_wallet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, role, balance, referred_by,
	game_loss_rate, game_loss_balance, deposit_rate, deposit_balance, created_at`

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	return scanAccount(row)
}

// Credit adds amount to the account's balance and returns the new balance.
// The increment happens in a single UPDATE, so concurrent credits for the
// same account both land.
func (r *AccountRepository) Credit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	err := r.db.QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount, id,
	).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, ErrAccountNotFound
	}
	return newBalance, err
}

// Debit deducts amount from the account's balance, rejecting the whole
// operation when the balance would go negative. Check and deduct are one
// statement; a failed guard surfaces as ErrInsufficientFunds with no
// mutation performed.
func (r *AccountRepository) Debit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	err := r.db.QueryRow(ctx,
		`UPDATE accounts SET balance = balance - $1
		 WHERE id = $2 AND balance >= $1
		 RETURNING balance`,
		amount, id,
	).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		_ = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
		if !exists {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, ErrInsufficientFunds
	}
	return newBalance, err
}

// ApplySettlement adjusts the balance by delta (signed) and appends the
// settlement record in one database transaction.
func (r *AccountRepository) ApplySettlement(ctx context.Context, id int64, delta decimal.Decimal, rec *domain.Settlement) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var newBalance decimal.Decimal
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		delta, id,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO settlements (account_id, username, provider_code, game_code, bet_type, amount, transaction_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		id, rec.Username, rec.ProviderCode, rec.GameCode, rec.BetType, rec.Amount, rec.TransactionID, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return decimal.Zero, err
	}
	rec.AccountID = id

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// AddCommission accrues amount on the account's commission balance for the
// given program.
func (r *AccountRepository) AddCommission(ctx context.Context, id int64, program domain.CommissionProgram, amount decimal.Decimal) error {
	column := "game_loss_balance"
	if program == domain.ProgramDeposit {
		column = "deposit_balance"
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET `+column+` = `+column+` + $1 WHERE id = $2`,
		amount, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// GetSettlements returns the account's game history, newest first.
func (r *AccountRepository) GetSettlements(ctx context.Context, accountID int64, limit int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, account_id, username, provider_code, game_code, bet_type, amount, transaction_id, status, created_at
		 FROM settlements
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Settlement
	for rows.Next() {
		var s domain.Settlement
		var txID *string
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Username, &s.ProviderCode, &s.GameCode,
			&s.BetType, &s.Amount, &txID, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		if txID != nil {
			s.TransactionID = *txID
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(
		&a.ID, &a.Username, &a.Role, &a.Balance, &a.ReferredBy,
		&a.GameLossRate, &a.GameLossCommission, &a.DepositRate, &a.DepositCommission,
		&a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}
