package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rachapay/platform/internal/domain"
)

// Postgres error codes surfaced by this repository.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type paymentRepo struct{}

// NewPaymentRepository returns a pgx-backed PaymentRepository.
func NewPaymentRepository() PaymentRepository {
	return &paymentRepo{}
}

func (r *paymentRepo) Insert(ctx context.Context, db DBTX, gameID int64, playerName string, status domain.PaymentStatus) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO payments (game_id, player_name, status)
		VALUES ($1, $2, $3)
		RETURNING id`, gameID, playerName, status).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return 0, domain.ErrConflict(fmt.Sprintf("player %q already in game %d", playerName, gameID))
			case pgForeignKeyViolation:
				return 0, domain.ErrNotFound("game", strconv.FormatInt(gameID, 10))
			}
		}
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	return id, nil
}

func (r *paymentRepo) ListByGame(ctx context.Context, db DBTX, gameID int64) ([]domain.PaymentRecord, error) {
	rows, err := db.Query(ctx, `
		SELECT id, game_id, player_name, status
		FROM payments
		WHERE game_id = $1
		ORDER BY player_name`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	records := []domain.PaymentRecord{}
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.GameID, &p.PlayerName, &p.Status); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return records, nil
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, db DBTX, gameID int64, playerName string, status domain.PaymentStatus) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE payments SET status = $1
		WHERE game_id = $2 AND player_name = $3`, status, gameID, playerName)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *paymentRepo) Delete(ctx context.Context, db DBTX, gameID int64, playerName string) (bool, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM payments
		WHERE game_id = $1 AND player_name = $2`, gameID, playerName)
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
