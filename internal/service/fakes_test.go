package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/repository"

	"github.com/shopspring/decimal"
)

// fakeAccounts is an in-memory AccountStore with the same atomicity
// semantics as the SQL repository: every mutation happens under one lock.
type fakeAccounts struct {
	mu          sync.Mutex
	accounts    map[int64]*domain.Account
	settlements map[int64][]domain.Settlement
	nextSettID  int64
}

func newFakeAccounts(accounts ...*domain.Account) *fakeAccounts {
	f := &fakeAccounts{
		accounts:    make(map[int64]*domain.Account),
		settlements: make(map[int64][]domain.Settlement),
	}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccounts) Credit(_ context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return decimal.Zero, repository.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(amount)
	return a.Balance, nil
}

func (f *fakeAccounts) Debit(_ context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return decimal.Zero, repository.ErrAccountNotFound
	}
	if a.Balance.LessThan(amount) {
		return decimal.Zero, repository.ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return a.Balance, nil
}

func (f *fakeAccounts) ApplySettlement(_ context.Context, id int64, delta decimal.Decimal, rec *domain.Settlement) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return decimal.Zero, repository.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	f.nextSettID++
	rec.ID = f.nextSettID
	rec.AccountID = id
	rec.CreatedAt = time.Now()
	f.settlements[id] = append(f.settlements[id], *rec)
	return a.Balance, nil
}

func (f *fakeAccounts) AddCommission(_ context.Context, id int64, program domain.CommissionProgram, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	if program == domain.ProgramDeposit {
		a.DepositCommission = a.DepositCommission.Add(amount)
	} else {
		a.GameLossCommission = a.GameLossCommission.Add(amount)
	}
	return nil
}

func (f *fakeAccounts) GetSettlements(_ context.Context, accountID int64, _ int) ([]domain.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Settlement(nil), f.settlements[accountID]...), nil
}

// balance reads the live balance for assertions.
func (f *fakeAccounts) balance(id int64) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id].Balance
}

func (f *fakeAccounts) commission(id int64, program domain.CommissionProgram) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if program == domain.ProgramDeposit {
		return f.accounts[id].DepositCommission
	}
	return f.accounts[id].GameLossCommission
}

type fakeDeposits struct {
	mu       sync.Mutex
	requests map[int64]*domain.DepositRequest
	nextID   int64
}

func newFakeDeposits() *fakeDeposits {
	return &fakeDeposits{requests: make(map[int64]*domain.DepositRequest)}
}

func (f *fakeDeposits) Create(_ context.Context, d *domain.DepositRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	d.ID = f.nextID
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	copied := *d
	f.requests[d.ID] = &copied
	return nil
}

func (f *fakeDeposits) GetByID(_ context.Context, id int64) (*domain.DepositRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDeposits) List(_ context.Context, _ int) ([]domain.DepositRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.DepositRequest
	for _, d := range f.requests {
		result = append(result, *d)
	}
	return result, nil
}

func (f *fakeDeposits) SearchByInput(_ context.Context, query string) ([]domain.DepositRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.DepositRequest
	for _, d := range f.requests {
		for _, input := range d.UserInputs {
			if strings.Contains(strings.ToLower(input.Value), strings.ToLower(query)) {
				result = append(result, *d)
				break
			}
		}
	}
	return result, nil
}

func (f *fakeDeposits) SetStatus(_ context.Context, id int64, from, to domain.DepositStatus, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.requests[id]
	if !ok || d.Status != from {
		return false, nil
	}
	d.Status = to
	d.Reason = reason
	d.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeDeposits) SetBonus(_ context.Context, id int64, bonusType domain.BonusType, bonusValue, bonusApplied decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	if !d.BonusApplied.IsZero() {
		return nil
	}
	d.BonusType = bonusType
	d.BonusValue = bonusValue
	d.BonusApplied = bonusApplied
	return nil
}

func (f *fakeDeposits) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[id]; !ok {
		return repository.ErrRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

type fakeWithdrawals struct {
	mu       sync.Mutex
	requests map[int64]*domain.WithdrawalRequest
	nextID   int64
}

func newFakeWithdrawals() *fakeWithdrawals {
	return &fakeWithdrawals{requests: make(map[int64]*domain.WithdrawalRequest)}
}

func (f *fakeWithdrawals) Create(_ context.Context, w *domain.WithdrawalRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	w.ID = f.nextID
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	copied := *w
	f.requests[w.ID] = &copied
	return nil
}

func (f *fakeWithdrawals) GetByID(_ context.Context, id int64) (*domain.WithdrawalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWithdrawals) List(_ context.Context, _, _ int) ([]domain.WithdrawalRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.WithdrawalRequest
	for _, w := range f.requests {
		result = append(result, *w)
	}
	return result, int64(len(result)), nil
}

func (f *fakeWithdrawals) SetStatus(_ context.Context, id int64, from, to domain.WithdrawalStatus, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.requests[id]
	if !ok || w.Status != from {
		return false, nil
	}
	w.Status = to
	w.Reason = reason
	now := time.Now()
	w.ProcessedAt = &now
	w.UpdatedAt = now
	return true, nil
}

func (f *fakeWithdrawals) DeleteNotCompleted(_ context.Context, id int64) (*domain.WithdrawalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.requests[id]
	if !ok || w.Status == domain.WithdrawalStatusCompleted {
		return nil, repository.ErrRequestNotFound
	}
	delete(f.requests, id)
	copied := *w
	return &copied, nil
}

type fakeMethods struct {
	methods map[int64]*domain.PaymentMethod
	bonuses map[int64]*domain.DepositBonus
}

func newFakeMethods(methods ...*domain.PaymentMethod) *fakeMethods {
	f := &fakeMethods{
		methods: make(map[int64]*domain.PaymentMethod),
		bonuses: make(map[int64]*domain.DepositBonus),
	}
	for _, m := range methods {
		f.methods[m.ID] = m
	}
	return f
}

func (f *fakeMethods) GetByID(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, repository.ErrMethodNotFound
	}
	return m, nil
}

func (f *fakeMethods) GetBonus(_ context.Context, methodID int64) (*domain.DepositBonus, error) {
	return f.bonuses[methodID], nil
}
