package repository

import (
	"context"
	"encoding/json"
	"errors"

	"casino_wallet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalRepository struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

const withdrawalColumns = `id, user_id, method_name, method_name_bd, method_image,
	agent_wallet_number, agent_wallet_text, channel, amount, user_inputs,
	status, reason, processed_at, created_at, updated_at`

// Create persists a new pending withdrawal request. The caller has already
// reserved the amount from the user's balance.
func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.WithdrawalRequest) error {
	inputsJSON, err := json.Marshal(w.UserInputs)
	if err != nil {
		inputsJSON = []byte("[]")
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO withdrawal_requests
		 (user_id, method_name, method_name_bd, method_image, agent_wallet_number, agent_wallet_text,
		  channel, amount, user_inputs, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		w.UserID, w.Method.MethodName, w.Method.MethodNameBD, w.Method.MethodImage,
		w.Method.AgentWalletNumber, w.Method.AgentWalletText,
		w.Channel, w.Amount, inputsJSON, w.Status,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = $1`, id)
	return scanWithdrawalRequest(row)
}

// List returns withdrawal requests, newest first, with limit/offset paging.
func (r *WithdrawalRepository) List(ctx context.Context, limit, offset int) ([]domain.WithdrawalRequest, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawal_requests
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanWithdrawalRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawal_requests`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// SetStatus moves a pending request to a terminal status with a
// compare-and-set. Returns false when the request was no longer pending.
// processed_at records when the admin decision landed.
func (r *WithdrawalRepository) SetStatus(ctx context.Context, id int64, from, to domain.WithdrawalStatus, reason string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE withdrawal_requests
		 SET status = $3, reason = $4, processed_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND status = $2`,
		id, from, to, reason,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteNotCompleted removes a request unless it is completed, returning the
// deleted row so the caller can refund a pending reservation. Delete and
// status check are one statement to keep the completed-guard race-free.
func (r *WithdrawalRepository) DeleteNotCompleted(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM withdrawal_requests
		 WHERE id = $1 AND status <> 'completed'
		 RETURNING `+withdrawalColumns,
		id)
	return scanWithdrawalRequest(row)
}

func scanWithdrawalRequest(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	var inputsJSON []byte
	var reason *string
	if err := row.Scan(
		&w.ID, &w.UserID,
		&w.Method.MethodName, &w.Method.MethodNameBD, &w.Method.MethodImage,
		&w.Method.AgentWalletNumber, &w.Method.AgentWalletText,
		&w.Channel, &w.Amount, &inputsJSON,
		&w.Status, &reason, &w.ProcessedAt, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if reason != nil {
		w.Reason = *reason
	}
	if len(inputsJSON) > 0 {
		_ = json.Unmarshal(inputsJSON, &w.UserInputs)
	}
	return &w, nil
}

func scanWithdrawalRequests(rows pgx.Rows) ([]domain.WithdrawalRequest, error) {
	var result []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawalRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	return result, rows.Err()
}
