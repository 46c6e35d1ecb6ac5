package repository

import (
	"context"
	"encoding/json"
	"errors"

	"casino_wallet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrRequestNotFound = errors.New("transaction not found")

type DepositRepository struct {
	db *pgxpool.Pool
}

func NewDepositRepository(db *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{db: db}
}

const depositColumns = `id, user_id, method_id, method_name, method_name_bd, method_image,
	agent_wallet_number, agent_wallet_text, channel, amount, user_inputs,
	status, reason, bonus_applied, bonus_type, bonus_value, created_at, updated_at`

// Create persists a new pending deposit request.
func (r *DepositRepository) Create(ctx context.Context, d *domain.DepositRequest) error {
	inputsJSON, err := json.Marshal(d.UserInputs)
	if err != nil {
		inputsJSON = []byte("[]")
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO deposit_requests
		 (user_id, method_id, method_name, method_name_bd, method_image, agent_wallet_number, agent_wallet_text,
		  channel, amount, user_inputs, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		d.UserID, d.MethodID, d.Method.MethodName, d.Method.MethodNameBD, d.Method.MethodImage,
		d.Method.AgentWalletNumber, d.Method.AgentWalletText,
		d.Channel, d.Amount, inputsJSON, d.Status,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DepositRepository) GetByID(ctx context.Context, id int64) (*domain.DepositRequest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+depositColumns+` FROM deposit_requests WHERE id = $1`, id)
	return scanDepositRequest(row)
}

// List returns deposit requests, newest first.
func (r *DepositRepository) List(ctx context.Context, limit int) ([]domain.DepositRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+depositColumns+` FROM deposit_requests ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDepositRequests(rows)
}

// SearchByInput matches requests whose user-supplied evidence values contain
// the query (the admin panel searches by trx id this way).
func (r *DepositRepository) SearchByInput(ctx context.Context, query string) ([]domain.DepositRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+depositColumns+` FROM deposit_requests
		 WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(user_inputs) AS input
			WHERE input->>'value' ILIKE '%' || $1 || '%'
		 )
		 ORDER BY created_at DESC`,
		query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDepositRequests(rows)
}

// SetStatus moves a request from `from` to `to` with a compare-and-set on
// the status column. Returns false when the request was not in `from`, so
// a duplicate admin action observes the terminal status and is rejected
// instead of reapplying balance effects.
func (r *DepositRepository) SetStatus(ctx context.Context, id int64, from, to domain.DepositStatus, reason string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE deposit_requests
		 SET status = $3, reason = $4, updated_at = NOW()
		 WHERE id = $1 AND status = $2`,
		id, from, to, reason,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetBonus records the bonus granted on completion. Write-once: a request
// that already carries a bonus is left untouched.
func (r *DepositRepository) SetBonus(ctx context.Context, id int64, bonusType domain.BonusType, bonusValue, bonusApplied decimal.Decimal) error {
	_, err := r.db.Exec(ctx,
		`UPDATE deposit_requests
		 SET bonus_type = $2, bonus_value = $3, bonus_applied = $4, updated_at = NOW()
		 WHERE id = $1 AND bonus_applied = 0`,
		id, bonusType, bonusValue, bonusApplied,
	)
	return err
}

// Delete removes a request regardless of status.
func (r *DepositRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM deposit_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func scanDepositRequest(row pgx.Row) (*domain.DepositRequest, error) {
	var d domain.DepositRequest
	var inputsJSON []byte
	var reason, bonusType *string
	if err := row.Scan(
		&d.ID, &d.UserID, &d.MethodID,
		&d.Method.MethodName, &d.Method.MethodNameBD, &d.Method.MethodImage,
		&d.Method.AgentWalletNumber, &d.Method.AgentWalletText,
		&d.Channel, &d.Amount, &inputsJSON,
		&d.Status, &reason, &d.BonusApplied, &bonusType, &d.BonusValue,
		&d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if reason != nil {
		d.Reason = *reason
	}
	if bonusType != nil {
		d.BonusType = domain.BonusType(*bonusType)
	}
	if len(inputsJSON) > 0 {
		_ = json.Unmarshal(inputsJSON, &d.UserInputs)
	}
	return &d, nil
}

func scanDepositRequests(rows pgx.Rows) ([]domain.DepositRequest, error) {
	var result []domain.DepositRequest
	for rows.Next() {
		d, err := scanDepositRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}
