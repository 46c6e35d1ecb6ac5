package service

import (
	"context"
	"fmt"
	"strings"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/logger"

	"github.com/shopspring/decimal"
)

// WithdrawalLimits bounds a single withdrawal request; platform-wide, not
// per payment method.
type WithdrawalLimits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// WithdrawalService runs the withdrawal request lifecycle. The amount is
// reserved (deducted) at creation, which makes "insufficient funds at
// approval time" impossible; cancel/fail/delete-pending refund it and
// completion disburses without touching balance again.
type WithdrawalService struct {
	withdrawals WithdrawalStore
	methods     MethodStore
	accounts    AccountStore
	ledger      *LedgerService
	limits      WithdrawalLimits
}

func NewWithdrawalService(withdrawals WithdrawalStore, methods MethodStore, accounts AccountStore, ledger *LedgerService, limits WithdrawalLimits) *WithdrawalService {
	return &WithdrawalService{
		withdrawals: withdrawals,
		methods:     methods,
		accounts:    accounts,
		ledger:      ledger,
		limits:      limits,
	}
}

// CreateWithdrawalRequest carries the validated creation payload.
type CreateWithdrawalRequest struct {
	UserID     int64              `json:"userId"`
	MethodID   int64              `json:"paymentMethodId"`
	Channel    string             `json:"channel"`
	Amount     decimal.Decimal    `json:"amount"`
	UserInputs []domain.UserInput `json:"userInputs"`
}

// Create validates, reserves the amount from balance and persists the
// pending request. The reservation is the guarded single-statement debit,
// so a request racing another mutation for the same account can never
// overdraw.
func (s *WithdrawalService) Create(ctx context.Context, req CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	if req.UserID == 0 || req.MethodID == 0 || req.Channel == "" || req.Amount.IsZero() || len(req.UserInputs) == 0 {
		return nil, ErrMissingFields
	}

	if req.Amount.LessThan(s.limits.Min) || req.Amount.GreaterThan(s.limits.Max) {
		return nil, fmt.Errorf("%w: amount must be between %s and %s",
			ErrInvalidAmount, s.limits.Min.String(), s.limits.Max.String())
	}

	if _, err := s.accounts.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	method, err := s.methods.GetByID(ctx, req.MethodID)
	if err != nil {
		return nil, err
	}
	if !method.Active() {
		return nil, ErrMethodInactive
	}

	if _, err := s.ledger.Debit(ctx, req.UserID, req.Amount); err != nil {
		return nil, err
	}

	w := &domain.WithdrawalRequest{
		UserID:     req.UserID,
		Method:     method.Snapshot(),
		Channel:    req.Channel,
		Amount:     req.Amount,
		UserInputs: req.UserInputs,
		Status:     domain.WithdrawalStatusPending,
	}
	if err := s.withdrawals.Create(ctx, w); err != nil {
		// The reservation is already taken; surface the failure so the
		// caller retries, rather than silently refunding under it.
		logger.Error("withdrawal create failed after reservation", "user_id", req.UserID, "error", err)
		return nil, err
	}

	logger.Info("withdrawal request created", "id", w.ID, "user_id", w.UserID, "amount", w.Amount.String())
	return w, nil
}

// UpdateStatus transitions a pending request to a terminal status via
// compare-and-set. Completion performs no balance mutation (funds already
// reserved); cancellation and failure refund the full amount.
func (s *WithdrawalService) UpdateStatus(ctx context.Context, id int64, status domain.WithdrawalStatus, reason string) (*domain.WithdrawalRequest, error) {
	if !status.Valid() || !domain.WithdrawalStatusPending.CanTransition(status) {
		return nil, fmt.Errorf("%w: allowed: 'completed', 'cancelled', 'failed'", ErrInvalidStatus)
	}
	reason = strings.TrimSpace(reason)
	if status.RequiresReason() && reason == "" {
		return nil, fmt.Errorf("%w when cancelling or rejecting", ErrReasonRequired)
	}

	w, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.withdrawals.SetStatus(ctx, id, domain.WithdrawalStatusPending, status, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: transaction is already %s", ErrConflict, w.Status)
	}

	if status.Refundable() {
		if _, err := s.ledger.Credit(ctx, w.UserID, w.Amount); err != nil {
			logger.Error("withdrawal refund failed", "id", id, "user_id", w.UserID, "error", err)
			return nil, err
		}
		logger.Info("withdrawal refunded", "id", id, "user_id", w.UserID, "amount", w.Amount.String())
	}

	return s.withdrawals.GetByID(ctx, id)
}

func (s *WithdrawalService) Get(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	return s.withdrawals.GetByID(ctx, id)
}

func (s *WithdrawalService) List(ctx context.Context, limit, offset int) ([]domain.WithdrawalRequest, int64, error) {
	return s.withdrawals.List(ctx, limit, offset)
}

// Delete removes a request. A pending request's reservation is refunded
// first; deleting a completed request is rejected because the funds were
// finally disbursed.
func (s *WithdrawalService) Delete(ctx context.Context, id int64) (refunded decimal.Decimal, err error) {
	w, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if w.Status == domain.WithdrawalStatusCompleted {
		return decimal.Zero, fmt.Errorf("%w: cannot delete completed withdrawal transaction", ErrConflict)
	}

	deleted, err := s.withdrawals.DeleteNotCompleted(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if deleted.Status == domain.WithdrawalStatusPending {
		if _, err := s.ledger.Credit(ctx, deleted.UserID, deleted.Amount); err != nil {
			logger.Error("refund on delete failed", "id", id, "user_id", deleted.UserID, "error", err)
			return decimal.Zero, err
		}
		return deleted.Amount, nil
	}
	return decimal.Zero, nil
}
