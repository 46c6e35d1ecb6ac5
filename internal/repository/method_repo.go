package repository

import (
	"context"
	"errors"

	"casino_wallet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMethodNotFound = errors.New("payment method not found")

// MethodRepository is a read-only view of the payment-method catalog and
// its deposit bonus rules; catalog management belongs to the admin app.
type MethodRepository struct {
	db *pgxpool.Pool
}

func NewMethodRepository(db *pgxpool.Pool) *MethodRepository {
	return &MethodRepository{db: db}
}

func (r *MethodRepository) GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, method_name, method_name_bd, method_image, agent_wallet_number,
		        COALESCE(agent_wallet_text, ''), min_amount, max_amount, status
		 FROM payment_methods
		 WHERE id = $1`, id)

	var m domain.PaymentMethod
	if err := row.Scan(
		&m.ID, &m.MethodName, &m.MethodNameBD, &m.MethodImage, &m.AgentWalletNumber,
		&m.AgentWalletText, &m.MinAmount, &m.MaxAmount, &m.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMethodNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetBonus returns the bonus rule for a payment method, or nil when the
// method carries no bonus.
func (r *MethodRepository) GetBonus(ctx context.Context, methodID int64) (*domain.DepositBonus, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, method_id, bonus_type, bonus
		 FROM deposit_bonuses
		 WHERE method_id = $1`, methodID)

	var b domain.DepositBonus
	if err := row.Scan(&b.ID, &b.MethodID, &b.BonusType, &b.Bonus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
