package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rachapay/platform/internal/domain"
)

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

func (r *gameRepo) Insert(ctx context.Context, db DBTX, date string) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO games (date) VALUES ($1)
		RETURNING id, date, created_at`, date)
	return scanGame(row)
}

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		SELECT id, date, created_at FROM games WHERE id = $1`, id)
	g, err := scanGame(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return g, err
}

func (r *gameRepo) ListSummaries(ctx context.Context, db DBTX) ([]domain.GameSummary, error) {
	// Both counts come from one aggregate pass so paid + owing == total by
	// construction.
	rows, err := db.Query(ctx, `
		SELECT g.id, g.date, g.created_at,
		       COUNT(p.id) AS player_count,
		       COUNT(p.id) FILTER (WHERE p.status = 'paid') AS paid_count,
		       COUNT(p.id) FILTER (WHERE p.status = 'owing') AS owing_count
		FROM games g
		LEFT JOIN payments p ON p.game_id = g.id
		GROUP BY g.id, g.date, g.created_at
		ORDER BY g.date DESC, g.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query game summaries: %w", err)
	}
	defer rows.Close()

	summaries := []domain.GameSummary{}
	for rows.Next() {
		var s domain.GameSummary
		var date time.Time
		if err := rows.Scan(&s.ID, &date, &s.CreatedAt, &s.PlayerCount, &s.PaidCount, &s.OwingCount); err != nil {
			return nil, fmt.Errorf("scan game summary: %w", err)
		}
		s.Date = date.Format("2006-01-02")
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game summaries: %w", err)
	}
	return summaries, nil
}

func (r *gameRepo) Delete(ctx context.Context, db DBTX, id int64) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete game: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	var date time.Time
	if err := row.Scan(&g.ID, &date, &g.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	g.Date = date.Format("2006-01-02")
	return &g, nil
}
