package domain

import "github.com/shopspring/decimal"

// PaymentMethod is the read-only view of the payment-method catalog this
// service consults. Catalog management lives in the admin application.
type PaymentMethod struct {
	ID                int64           `db:"id" json:"id"`
	MethodName        string          `db:"method_name" json:"methodName"`
	MethodNameBD      string          `db:"method_name_bd" json:"methodNameBD"`
	MethodImage       string          `db:"method_image" json:"methodImage"`
	AgentWalletNumber string          `db:"agent_wallet_number" json:"agentWalletNumber"`
	AgentWalletText   string          `db:"agent_wallet_text" json:"agentWalletText"`
	MinAmount         decimal.Decimal `db:"min_amount" json:"minAmount"`
	MaxAmount         decimal.Decimal `db:"max_amount" json:"maxAmount"`
	Status            string          `db:"status" json:"status"`
}

// Active reports whether the method accepts new requests.
func (m *PaymentMethod) Active() bool {
	return m.Status == "active"
}

// Snapshot copies the display fields for embedding into a request.
func (m *PaymentMethod) Snapshot() MethodSnapshot {
	text := m.AgentWalletText
	if text == "" {
		text = "agent"
	}
	return MethodSnapshot{
		MethodName:        m.MethodName,
		MethodNameBD:      m.MethodNameBD,
		MethodImage:       m.MethodImage,
		AgentWalletNumber: m.AgentWalletNumber,
		AgentWalletText:   text,
	}
}

// BonusType is how a deposit bonus is computed.
type BonusType string

const (
	BonusTypeFix        BonusType = "Fix"
	BonusTypePercentage BonusType = "Percentage"
)

// DepositBonus maps a payment method to a bonus rule. At most one rule is
// consulted per method per deposit.
type DepositBonus struct {
	ID        int64           `db:"id" json:"id"`
	MethodID  int64           `db:"method_id" json:"payment_method_id"`
	BonusType BonusType       `db:"bonus_type" json:"bonus_type"`
	Bonus     decimal.Decimal `db:"bonus" json:"bonus"`
}

// BonusAmount computes the credit for a deposit of the given amount.
func (b *DepositBonus) BonusAmount(amount decimal.Decimal) decimal.Decimal {
	if b.BonusType == BonusTypePercentage {
		return amount.Mul(b.Bonus).Div(decimal.NewFromInt(100))
	}
	return b.Bonus
}
