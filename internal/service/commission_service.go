package service

import (
	"context"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var commissionsCredited = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "commissions_credited_total",
		Help: "Commission credits applied, by program and tier",
	},
	[]string{"program", "tier"},
)

func init() {
	prometheus.MustRegister(commissionsCredited)
}

// CommissionCredit is one payout produced by a cascade.
type CommissionCredit struct {
	AccountID int64           `json:"account_id"`
	Tier      int             `json:"tier"`
	Amount    decimal.Decimal `json:"amount"`
}

// CommissionService walks the referral chain of a triggering account and
// accrues percentage commissions. The same cascade serves both programs;
// the program picks which rate and accrual balance are read.
type CommissionService struct {
	accounts AccountStore
}

func NewCommissionService(accounts AccountStore) *CommissionService {
	return &CommissionService{accounts: accounts}
}

var oneHundred = decimal.NewFromInt(100)

// Cascade credits up to two upline tiers a share of base.
//
// Tier 1 is the direct upline: it earns base * rate / 100 when its program
// rate is positive. Tier 2 is the upline's upline, and earns only when its
// role is super-affiliate and its rate strictly exceeds tier 1's; the credit
// is the marginal difference base*(r2-r1)/100, so total payout never exceeds
// base * r2 / 100. Zero and negative computed credits are skipped, not
// errors. Traversal stops after two hops.
func (s *CommissionService) Cascade(ctx context.Context, trigger *domain.Account, base decimal.Decimal, program domain.CommissionProgram) ([]CommissionCredit, error) {
	if trigger.ReferredBy == nil || base.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	upline, err := s.accounts.GetByID(ctx, *trigger.ReferredBy)
	if err != nil {
		return nil, err
	}

	var credits []CommissionCredit

	tier1Rate := upline.CommissionRate(program)
	tier1Credit := decimal.Zero
	if tier1Rate.GreaterThan(decimal.Zero) {
		tier1Credit = base.Mul(tier1Rate).Div(oneHundred)
	}
	if tier1Credit.GreaterThan(decimal.Zero) {
		if err := s.accounts.AddCommission(ctx, upline.ID, program, tier1Credit); err != nil {
			return credits, err
		}
		credits = append(credits, CommissionCredit{AccountID: upline.ID, Tier: 1, Amount: tier1Credit})
		commissionsCredited.WithLabelValues(string(program), "1").Inc()
		logger.Info("commission credited",
			"program", program, "tier", 1,
			"beneficiary", upline.ID, "amount", tier1Credit.String())
	}

	if upline.ReferredBy == nil {
		return credits, nil
	}

	super, err := s.accounts.GetByID(ctx, *upline.ReferredBy)
	if err != nil {
		return credits, err
	}
	if super.Role != domain.RoleSuperAffiliate {
		return credits, nil
	}

	superRate := super.CommissionRate(program)
	if !superRate.GreaterThan(tier1Rate) {
		return credits, nil
	}

	// Override pays only the excess over what tier 1 already earned.
	tier2Credit := base.Mul(superRate).Div(oneHundred).Sub(tier1Credit)
	if tier2Credit.GreaterThan(decimal.Zero) {
		if err := s.accounts.AddCommission(ctx, super.ID, program, tier2Credit); err != nil {
			return credits, err
		}
		credits = append(credits, CommissionCredit{AccountID: super.ID, Tier: 2, Amount: tier2Credit})
		commissionsCredited.WithLabelValues(string(program), "2").Inc()
		logger.Info("commission credited",
			"program", program, "tier", 2,
			"beneficiary", super.ID, "amount", tier2Credit.String())
	}

	return credits, nil
}
