package service

import (
	"context"
	"fmt"
	"strings"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/logger"

	"github.com/shopspring/decimal"
)

// DepositService runs the deposit request lifecycle. A request is created
// pending and leaves pending exactly once; the pending -> completed
// transition is the only point where balance, bonus and commission effects
// happen.
type DepositService struct {
	deposits   DepositStore
	methods    MethodStore
	accounts   AccountStore
	ledger     *LedgerService
	commission *CommissionService
}

func NewDepositService(deposits DepositStore, methods MethodStore, accounts AccountStore, ledger *LedgerService, commission *CommissionService) *DepositService {
	return &DepositService{
		deposits:   deposits,
		methods:    methods,
		accounts:   accounts,
		ledger:     ledger,
		commission: commission,
	}
}

// CreateDepositRequest carries the validated creation payload.
type CreateDepositRequest struct {
	UserID     int64              `json:"userId"`
	MethodID   int64              `json:"paymentMethodId"`
	Channel    string             `json:"channel"`
	Amount     decimal.Decimal    `json:"amount"`
	UserInputs []domain.UserInput `json:"userInputs"`
}

// Create validates the payment method and amount range, snapshots the
// method's display fields and persists the request as pending. No balance
// effect happens here.
func (s *DepositService) Create(ctx context.Context, req CreateDepositRequest) (*domain.DepositRequest, error) {
	if req.MethodID == 0 || req.UserID == 0 || req.Amount.IsZero() {
		return nil, ErrMissingFields
	}

	method, err := s.methods.GetByID(ctx, req.MethodID)
	if err != nil {
		return nil, ErrMethodInactive
	}
	if !method.Active() {
		return nil, ErrMethodInactive
	}

	if req.Amount.LessThan(method.MinAmount) || req.Amount.GreaterThan(method.MaxAmount) {
		return nil, fmt.Errorf("%w: amount must be between %s - %s BDT",
			ErrInvalidAmount, method.MinAmount.String(), method.MaxAmount.String())
	}

	if _, err := s.accounts.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	d := &domain.DepositRequest{
		UserID:     req.UserID,
		MethodID:   method.ID,
		Method:     method.Snapshot(),
		Channel:    req.Channel,
		Amount:     req.Amount,
		UserInputs: req.UserInputs,
		Status:     domain.DepositStatusPending,
	}
	if err := s.deposits.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("deposit request created", "id", d.ID, "user_id", d.UserID, "amount", d.Amount.String())
	return d, nil
}

// UpdateStatus transitions a pending request to a terminal status. The
// transition is a compare-and-set: only the first concurrent attempt wins,
// the rest observe a terminal status and are rejected, which is what keeps
// credit, bonus and commission exactly-once.
func (s *DepositService) UpdateStatus(ctx context.Context, id int64, status domain.DepositStatus, reason string) (*domain.DepositRequest, error) {
	if !status.Valid() || !domain.DepositStatusPending.CanTransition(status) {
		return nil, ErrInvalidStatus
	}
	reason = strings.TrimSpace(reason)
	if status.RequiresReason() && reason == "" {
		return nil, fmt.Errorf("%w for failed or cancelled status", ErrReasonRequired)
	}

	d, err := s.deposits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.deposits.SetStatus(ctx, id, domain.DepositStatusPending, status, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: transaction is already %s", ErrConflict, d.Status)
	}

	if status == domain.DepositStatusCompleted {
		if err := s.settle(ctx, d); err != nil {
			return nil, err
		}
	}

	return s.deposits.GetByID(ctx, id)
}

// settle applies the completed-deposit effects: face-amount credit, bonus
// lookup and credit, then the deposit-program cascade. The bonus never
// joins the commission base.
func (s *DepositService) settle(ctx context.Context, d *domain.DepositRequest) error {
	if _, err := s.ledger.Credit(ctx, d.UserID, d.Amount); err != nil {
		return err
	}

	bonus, err := s.methods.GetBonus(ctx, d.MethodID)
	if err != nil {
		return err
	}
	if bonus != nil && bonus.Bonus.GreaterThan(decimal.Zero) {
		bonusAmount := bonus.BonusAmount(d.Amount)
		if bonusAmount.GreaterThan(decimal.Zero) {
			if _, err := s.ledger.Credit(ctx, d.UserID, bonusAmount); err != nil {
				return err
			}
			if err := s.deposits.SetBonus(ctx, d.ID, bonus.BonusType, bonus.Bonus, bonusAmount); err != nil {
				return err
			}
			logger.Info("deposit bonus credited",
				"id", d.ID, "user_id", d.UserID,
				"bonus_type", bonus.BonusType, "amount", bonusAmount.String())
		}
	}

	player, err := s.accounts.GetByID(ctx, d.UserID)
	if err != nil {
		return err
	}
	if _, err := s.commission.Cascade(ctx, player, d.Amount, domain.ProgramDeposit); err != nil {
		return err
	}

	logger.Info("deposit completed", "id", d.ID, "user_id", d.UserID, "amount", d.Amount.String())
	return nil
}

func (s *DepositService) Get(ctx context.Context, id int64) (*domain.DepositRequest, error) {
	return s.deposits.GetByID(ctx, id)
}

func (s *DepositService) List(ctx context.Context, limit int) ([]domain.DepositRequest, error) {
	return s.deposits.List(ctx, limit)
}

func (s *DepositService) Search(ctx context.Context, query string) ([]domain.DepositRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query required", ErrMissingFields)
	}
	return s.deposits.SearchByInput(ctx, query)
}

// Delete removes a request for any status. A completed deposit's credit is
// deliberately not reversed here; that mirrors the admin panel's observed
// behavior and is flagged for product clarification.
func (s *DepositService) Delete(ctx context.Context, id int64) error {
	return s.deposits.Delete(ctx, id)
}
