package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role determines how an account participates in the commission programs.
type Role string

const (
	RolePlayer         Role = "player"
	RoleAffiliate      Role = "affiliate"
	RoleSuperAffiliate Role = "super-affiliate"
)

// CommissionProgram selects which rate/accrual pair a cascade reads.
type CommissionProgram string

const (
	ProgramGameLoss CommissionProgram = "game_loss"
	ProgramDeposit  CommissionProgram = "deposit"
)

// Account is a player or affiliate. Balance holds real funds; the two
// commission balances accrue separately and are paid out elsewhere.
type Account struct {
	ID                 int64           `db:"id" json:"id"`
	Username           string          `db:"username" json:"username"`
	Role               Role            `db:"role" json:"role"`
	Balance            decimal.Decimal `db:"balance" json:"balance"`
	ReferredBy         *int64          `db:"referred_by" json:"referred_by,omitempty"`
	GameLossRate       decimal.Decimal `db:"game_loss_rate" json:"game_loss_rate"`
	GameLossCommission decimal.Decimal `db:"game_loss_balance" json:"game_loss_commission_balance"`
	DepositRate        decimal.Decimal `db:"deposit_rate" json:"deposit_rate"`
	DepositCommission  decimal.Decimal `db:"deposit_balance" json:"deposit_commission_balance"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
}

// CommissionRate returns the account's percentage rate for a program.
func (a *Account) CommissionRate(p CommissionProgram) decimal.Decimal {
	if p == ProgramDeposit {
		return a.DepositRate
	}
	return a.GameLossRate
}
