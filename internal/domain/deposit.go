package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus represents deposit request state. A request leaves pending
// exactly once; every non-pending status is terminal.
type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusCompleted DepositStatus = "completed"
	DepositStatusFailed    DepositStatus = "failed"
	DepositStatusCancelled DepositStatus = "cancelled"
)

var depositTransitions = map[DepositStatus][]DepositStatus{
	DepositStatusPending: {DepositStatusCompleted, DepositStatusFailed, DepositStatusCancelled},
}

// Valid reports whether s is a known deposit status.
func (s DepositStatus) Valid() bool {
	switch s {
	case DepositStatusPending, DepositStatusCompleted, DepositStatusFailed, DepositStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s DepositStatus) Terminal() bool {
	return s.Valid() && s != DepositStatusPending
}

// CanTransition reports whether from -> to is in the transition table.
func (s DepositStatus) CanTransition(to DepositStatus) bool {
	for _, next := range depositTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// RequiresReason reports whether a non-blank reason must accompany s.
func (s DepositStatus) RequiresReason() bool {
	return s == DepositStatusFailed || s == DepositStatusCancelled
}

// UserInput is a free-form key/value evidence field supplied by the user
// (e.g. the wallet trx id they paid from).
type UserInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MethodSnapshot denormalizes the payment method's display fields into the
// request at creation time, so later catalog edits don't rewrite history.
type MethodSnapshot struct {
	MethodName        string `json:"methodName"`
	MethodNameBD      string `json:"methodNameBD"`
	MethodImage       string `json:"methodImage"`
	AgentWalletNumber string `json:"agentWalletNumber"`
	AgentWalletText   string `json:"agentWalletText"`
}

// DepositRequest is a user's deposit awaiting admin decision. Balance and
// commission effects happen exactly once, on the pending -> completed
// transition.
type DepositRequest struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	MethodID     int64           `db:"method_id" json:"payment_method_id"`
	Method       MethodSnapshot  `db:"method" json:"payment_method"`
	Channel      string          `db:"channel" json:"channel,omitempty"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	UserInputs   []UserInput     `db:"user_inputs" json:"user_inputs,omitempty"`
	Status       DepositStatus   `db:"status" json:"status"`
	Reason       string          `db:"reason" json:"reason,omitempty"`
	BonusApplied decimal.Decimal `db:"bonus_applied" json:"bonus_applied"`
	BonusType    BonusType       `db:"bonus_type" json:"bonus_type,omitempty"`
	BonusValue   decimal.Decimal `db:"bonus_value" json:"bonus_value"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
