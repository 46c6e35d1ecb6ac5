package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetType is the event kind reported by the game provider.
type BetType string

const (
	BetTypeBet    BetType = "BET"
	BetTypeSettle BetType = "SETTLE"
)

// SettlementStatus is the recorded outcome of a game event.
type SettlementStatus string

const (
	SettlementWon  SettlementStatus = "won"
	SettlementLost SettlementStatus = "lost"
)

// Settlement is an immutable audit entry appended per game event.
// Amount is the non-negative magnitude as sent by the provider; the sign
// of the balance effect is derived from BetType.
type Settlement struct {
	ID            int64            `db:"id" json:"id"`
	AccountID     int64            `db:"account_id" json:"account_id"`
	Username      string           `db:"username" json:"username"`
	ProviderCode  string           `db:"provider_code" json:"provider_code"`
	GameCode      string           `db:"game_code" json:"game_code"`
	BetType       BetType          `db:"bet_type" json:"bet_type"`
	Amount        decimal.Decimal  `db:"amount" json:"amount"`
	TransactionID string           `db:"transaction_id" json:"transaction_id,omitempty"`
	Status        SettlementStatus `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}
