package service

import (
	"context"
	"sync"
	"testing"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = WithdrawalLimits{Min: dec("200"), Max: dec("30000")}

type withdrawalHarness struct {
	accounts    *fakeAccounts
	withdrawals *fakeWithdrawals
	svc         *WithdrawalService
}

func newWithdrawalHarness(accounts *fakeAccounts) *withdrawalHarness {
	withdrawals := newFakeWithdrawals()
	methods := newFakeMethods(activeMethod(5))
	ledger := NewLedgerService(accounts)
	return &withdrawalHarness{
		accounts:    accounts,
		withdrawals: withdrawals,
		svc:         NewWithdrawalService(withdrawals, methods, accounts, ledger, testLimits),
	}
}

func withdrawReq(userID int64, amount string) CreateWithdrawalRequest {
	return CreateWithdrawalRequest{
		UserID:   userID,
		MethodID: 5,
		Channel:  "personal",
		Amount:   dec(amount),
		UserInputs: []domain.UserInput{
			{Name: "walletNumber", Value: "01811111111"},
		},
	}
}

func TestWithdrawalCreateReservesAmount(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)

	assert.Equal(t, domain.WithdrawalStatusPending, w.Status)
	assert.True(t, h.accounts.balance(1).Equal(dec("600")), "balance %s", h.accounts.balance(1))
}

func TestWithdrawalCreateInsufficientFunds(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("300")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	_, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.ErrorIs(t, err, repository.ErrInsufficientFunds)

	// A rejected debit mutates nothing and no request exists.
	assert.True(t, h.accounts.balance(1).Equal(dec("300")))
	_, total, err := h.svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestWithdrawalCreateOutOfBounds(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("100000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	_, err := h.svc.Create(context.Background(), withdrawReq(1, "150"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = h.svc.Create(context.Background(), withdrawReq(1, "30001"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.True(t, h.accounts.balance(1).Equal(dec("100000")))
}

func TestWithdrawalCreateMissingFields(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	req := withdrawReq(1, "400")
	req.UserInputs = nil
	_, err := h.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestWithdrawalCompleteNoBalanceEffect(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)

	updated, err := h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCompleted, "")
	require.NoError(t, err)

	assert.Equal(t, domain.WithdrawalStatusCompleted, updated.Status)
	assert.NotNil(t, updated.ProcessedAt)
	// Funds were reserved at creation; completion only disburses.
	assert.True(t, h.accounts.balance(1).Equal(dec("600")))
}

func TestWithdrawalCancelRefunds(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)

	updated, err := h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCancelled, "user request")
	require.NoError(t, err)

	assert.Equal(t, domain.WithdrawalStatusCancelled, updated.Status)
	assert.Equal(t, "user request", updated.Reason)
	assert.True(t, h.accounts.balance(1).Equal(dec("1000")), "round trip is balance neutral")
}

func TestWithdrawalRejectRequiresReason(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)

	_, err = h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusFailed, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCancelled, "  ")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestWithdrawalDoubleDecisionRefundsOnce(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)

	_, err = h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCancelled, "dup check")
	require.NoError(t, err)

	_, err = h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCancelled, "dup check")
	assert.ErrorIs(t, err, ErrConflict)

	assert.True(t, h.accounts.balance(1).Equal(dec("1000")), "only one refund lands")
}

func TestWithdrawalDeletePendingRefunds(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)

	refunded, err := h.svc.Delete(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, refunded.Equal(dec("400")))
	assert.True(t, h.accounts.balance(1).Equal(dec("1000")))

	_, err = h.svc.Get(context.Background(), w.ID)
	assert.ErrorIs(t, err, repository.ErrRequestNotFound)
}

func TestWithdrawalDeleteCancelledNoRefund(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)
	_, err = h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCancelled, "changed mind")
	require.NoError(t, err)

	// Cancellation already refunded; delete must not refund again.
	refunded, err := h.svc.Delete(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, refunded.IsZero())
	assert.True(t, h.accounts.balance(1).Equal(dec("1000")))
}

func TestWithdrawalDeleteCompletedRejected(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	w, err := h.svc.Create(context.Background(), withdrawReq(1, "400"))
	require.NoError(t, err)
	_, err = h.svc.UpdateStatus(context.Background(), w.ID, domain.WithdrawalStatusCompleted, "")
	require.NoError(t, err)

	_, err = h.svc.Delete(context.Background(), w.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Still there, still completed.
	got, err := h.svc.Get(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusCompleted, got.Status)
}

func TestWithdrawalConcurrentCreatesNeverOverdraw(t *testing.T) {
	player := &domain.Account{ID: 1, Username: "alice", Role: domain.RolePlayer, Balance: dec("1000")}
	h := newWithdrawalHarness(newFakeAccounts(player))

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.Create(context.Background(), withdrawReq(1, "300"))
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, repository.ErrInsufficientFunds)
		}
	}
	// 1000 / 300: at most 3 reservations fit.
	assert.Equal(t, 3, created)
	assert.True(t, h.accounts.balance(1).Equal(dec("100")), "balance %s", h.accounts.balance(1))
}
