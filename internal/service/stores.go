package service

import (
	"context"
	"errors"

	"casino_wallet/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingFields  = errors.New("required fields missing")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrReasonRequired = errors.New("reason is required")
	ErrConflict       = errors.New("transaction already settled")
	ErrMethodInactive = errors.New("invalid or inactive payment method")
)

// AccountStore is the persistence surface the money-movement services need.
// Implemented by repository.AccountRepository; tests substitute in-memory
// fakes.
type AccountStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	Credit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error)
	ApplySettlement(ctx context.Context, id int64, delta decimal.Decimal, rec *domain.Settlement) (decimal.Decimal, error)
	AddCommission(ctx context.Context, id int64, program domain.CommissionProgram, amount decimal.Decimal) error
	GetSettlements(ctx context.Context, accountID int64, limit int) ([]domain.Settlement, error)
}

// DepositStore persists deposit requests.
type DepositStore interface {
	Create(ctx context.Context, d *domain.DepositRequest) error
	GetByID(ctx context.Context, id int64) (*domain.DepositRequest, error)
	List(ctx context.Context, limit int) ([]domain.DepositRequest, error)
	SearchByInput(ctx context.Context, query string) ([]domain.DepositRequest, error)
	SetStatus(ctx context.Context, id int64, from, to domain.DepositStatus, reason string) (bool, error)
	SetBonus(ctx context.Context, id int64, bonusType domain.BonusType, bonusValue, bonusApplied decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

// WithdrawalStore persists withdrawal requests.
type WithdrawalStore interface {
	Create(ctx context.Context, w *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	List(ctx context.Context, limit, offset int) ([]domain.WithdrawalRequest, int64, error)
	SetStatus(ctx context.Context, id int64, from, to domain.WithdrawalStatus, reason string) (bool, error)
	DeleteNotCompleted(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
}

// MethodStore reads the payment-method catalog and deposit bonus rules.
type MethodStore interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error)
	GetBonus(ctx context.Context, methodID int64) (*domain.DepositBonus, error)
}
