package service

import (
	"context"
	"fmt"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/logger"

	"github.com/shopspring/decimal"
)

// LedgerService is the single entry point for player balance mutations.
// Settlement, deposit and withdrawal flows all go through it; nothing else
// reads-then-writes a balance. Per-account serialization happens in the
// store (single-statement increments), so two concurrent mutations for the
// same account both land.
type LedgerService struct {
	accounts AccountStore
}

func NewLedgerService(accounts AccountStore) *LedgerService {
	return &LedgerService{accounts: accounts}
}

// Credit adds amount to the account's balance.
func (s *LedgerService) Credit(ctx context.Context, accountID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: credit must be positive", ErrInvalidAmount)
	}
	newBalance, err := s.accounts.Credit(ctx, accountID, amount)
	if err != nil {
		return decimal.Zero, err
	}
	logger.Debug("balance credited", "account_id", accountID, "amount", amount.String(), "balance", newBalance.String())
	return newBalance, nil
}

// Debit deducts amount, failing with the store's insufficient-funds error
// when the balance does not cover it. No mutation happens on rejection.
func (s *LedgerService) Debit(ctx context.Context, accountID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: debit must be positive", ErrInvalidAmount)
	}
	newBalance, err := s.accounts.Debit(ctx, accountID, amount)
	if err != nil {
		return decimal.Zero, err
	}
	logger.Debug("balance debited", "account_id", accountID, "amount", amount.String(), "balance", newBalance.String())
	return newBalance, nil
}

// ApplySettlement applies a signed game-event delta and appends the
// settlement record in the same atomic unit.
func (s *LedgerService) ApplySettlement(ctx context.Context, accountID int64, delta decimal.Decimal, rec *domain.Settlement) (decimal.Decimal, error) {
	return s.accounts.ApplySettlement(ctx, accountID, delta, rec)
}
