package service

import (
	"context"
	"fmt"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var callbacksProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "provider_callbacks_processed_total",
		Help: "Provider settlement callbacks processed, by bet type and outcome",
	},
	[]string{"bet_type", "status"},
)

func init() {
	prometheus.MustRegister(callbacksProcessed)
}

// providerUsernameMax matches the provider's column width; it truncates
// usernames to this length on its side.
const providerUsernameMax = 45

// NormalizeProviderUsername reverses the provider's username framing: cap at
// 45 characters, then drop the trailing 2-character suffix the provider
// appends. This is a compatibility shim for the provider's wire convention,
// not business logic; it must change in lockstep with the provider.
func NormalizeProviderUsername(username string) string {
	if len(username) > providerUsernameMax {
		username = username[:providerUsernameMax]
	}
	if len(username) >= 2 {
		username = username[:len(username)-2]
	}
	return username
}

// CallbackRequest is one settlement event as the provider sends it. Amount
// arrives as a string magnitude; the sign is implied by BetType.
type CallbackRequest struct {
	AccountID       string `json:"account_id"`
	Username        string `json:"username"`
	ProviderCode    string `json:"provider_code"`
	Amount          string `json:"amount"`
	GameCode        string `json:"game_code"`
	VerificationKey string `json:"verification_key"`
	BetType         string `json:"bet_type"`
	TransactionID   string `json:"transaction_id"`
	Times           string `json:"times"`
}

// CallbackResult is returned to the provider after a processed event.
type CallbackResult struct {
	Username    string              `json:"username"`
	NewBalance  decimal.Decimal     `json:"new_balance"`
	Record      *domain.Settlement  `json:"gameRecord,omitempty"`
	Commissions []CommissionCredit  `json:"commissions,omitempty"`
}

// SettlementService consumes provider callbacks: it classifies the event,
// applies the net change through the ledger and runs the game-loss cascade.
type SettlementService struct {
	accounts   AccountStore
	ledger     *LedgerService
	commission *CommissionService
}

func NewSettlementService(accounts AccountStore, ledger *LedgerService, commission *CommissionService) *SettlementService {
	return &SettlementService{accounts: accounts, ledger: ledger, commission: commission}
}

// ProcessCallback handles one settlement event.
//
// BET deducts the amount and always counts as a loss. SETTLE credits the
// amount and counts as a loss only when the amount is zero or negative (a
// void settlement; a real win is positive). Any other bet type is balance-
// and history-neutral and never pays commission.
func (s *SettlementService) ProcessCallback(ctx context.Context, req CallbackRequest) (*CallbackResult, error) {
	if req.Username == "" || req.ProviderCode == "" || req.Amount == "" || req.GameCode == "" || req.BetType == "" {
		return nil, ErrMissingFields
	}

	username := NormalizeProviderUsername(req.Username)

	player, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}

	betType := domain.BetType(req.BetType)

	var netChange decimal.Decimal
	var isLoss bool
	switch betType {
	case domain.BetTypeBet:
		netChange = amount.Neg()
		isLoss = true
	case domain.BetTypeSettle:
		netChange = amount
		isLoss = amount.LessThanOrEqual(decimal.Zero)
	default:
		// CANCEL and friends: no balance effect, no record, no commission.
		callbacksProcessed.WithLabelValues(req.BetType, "neutral").Inc()
		return &CallbackResult{Username: username, NewBalance: player.Balance}, nil
	}

	status := domain.SettlementLost
	if betType == domain.BetTypeSettle && amount.GreaterThan(decimal.Zero) {
		status = domain.SettlementWon
	}

	rec := &domain.Settlement{
		Username:      username,
		ProviderCode:  req.ProviderCode,
		GameCode:      req.GameCode,
		BetType:       betType,
		Amount:        amount,
		TransactionID: req.TransactionID,
		Status:        status,
	}

	newBalance, err := s.ledger.ApplySettlement(ctx, player.ID, netChange, rec)
	if err != nil {
		return nil, err
	}
	callbacksProcessed.WithLabelValues(string(betType), string(status)).Inc()

	result := &CallbackResult{
		Username:   username,
		NewBalance: newBalance,
		Record:     rec,
	}

	if isLoss {
		credits, err := s.commission.Cascade(ctx, player, netChange.Abs(), domain.ProgramGameLoss)
		if err != nil {
			// Balance and history already landed; the cascade failure is the
			// caller's signal to retry the whole operation.
			logger.Error("game-loss cascade failed", "account_id", player.ID, "error", err)
			return nil, err
		}
		result.Commissions = credits
	}

	logger.Info("settlement processed",
		"username", username, "bet_type", betType,
		"amount", amount.String(), "balance", newBalance.String(), "status", status)

	return result, nil
}
