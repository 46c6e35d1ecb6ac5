package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus represents withdrawal request state. Funds are reserved
// at creation, so completion carries no balance effect while cancel/fail
// refund the reservation.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusCancelled WithdrawalStatus = "cancelled"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalStatusPending: {WithdrawalStatusCompleted, WithdrawalStatusCancelled, WithdrawalStatusFailed},
}

// Valid reports whether s is a known withdrawal status.
func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusCompleted, WithdrawalStatusCancelled, WithdrawalStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s WithdrawalStatus) Terminal() bool {
	return s.Valid() && s != WithdrawalStatusPending
}

// CanTransition reports whether from -> to is in the transition table.
func (s WithdrawalStatus) CanTransition(to WithdrawalStatus) bool {
	for _, next := range withdrawalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Refundable reports whether entering s returns the reservation to balance.
func (s WithdrawalStatus) Refundable() bool {
	return s == WithdrawalStatusCancelled || s == WithdrawalStatusFailed
}

// RequiresReason reports whether a non-blank reason must accompany s.
func (s WithdrawalStatus) RequiresReason() bool {
	return s == WithdrawalStatusCancelled || s == WithdrawalStatusFailed
}

// WithdrawalRequest is a user's withdrawal awaiting admin decision. The
// requested amount is already deducted from balance when the record exists.
type WithdrawalRequest struct {
	ID          int64            `db:"id" json:"id"`
	UserID      int64            `db:"user_id" json:"user_id"`
	Method      MethodSnapshot   `db:"method" json:"payment_method"`
	Channel     string           `db:"channel" json:"channel"`
	Amount      decimal.Decimal  `db:"amount" json:"amount"`
	UserInputs  []UserInput      `db:"user_inputs" json:"user_inputs,omitempty"`
	Status      WithdrawalStatus `db:"status" json:"status"`
	Reason      string           `db:"reason" json:"reason,omitempty"`
	ProcessedAt *time.Time       `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}
