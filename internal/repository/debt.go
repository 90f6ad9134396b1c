package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rachapay/platform/internal/domain"
)

type debtRepo struct{}

// NewDebtRepository returns a pgx-backed DebtRepository.
func NewDebtRepository() DebtRepository {
	return &debtRepo{}
}

func (r *debtRepo) ListOwingByPlayer(ctx context.Context, db DBTX) ([]domain.PlayerDebt, error) {
	// The fee is uniform per record, so ordering by count descending is
	// ordering by total owed descending.
	rows, err := db.Query(ctx, `
		SELECT player_name, COUNT(*) AS owing_count
		FROM payments
		WHERE status = 'owing'
		GROUP BY player_name
		ORDER BY owing_count DESC, player_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query debts: %w", err)
	}
	defer rows.Close()

	debts := []domain.PlayerDebt{}
	for rows.Next() {
		var d domain.PlayerDebt
		if err := rows.Scan(&d.PlayerName, &d.OwingGameCount); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debts: %w", err)
	}
	return debts, nil
}

func (r *debtRepo) OwingGamesForPlayer(ctx context.Context, db DBTX, playerName string) ([]domain.DebtGame, error) {
	rows, err := db.Query(ctx, `
		SELECT g.id, g.date, p.status
		FROM payments p
		JOIN games g ON g.id = p.game_id
		WHERE p.player_name = $1 AND p.status = 'owing'
		ORDER BY g.date DESC, g.id DESC`, playerName)
	if err != nil {
		return nil, fmt.Errorf("query owing games: %w", err)
	}
	defer rows.Close()

	games := []domain.DebtGame{}
	for rows.Next() {
		var dg domain.DebtGame
		var date time.Time
		if err := rows.Scan(&dg.GameID, &date, &dg.Status); err != nil {
			return nil, fmt.Errorf("scan owing game: %w", err)
		}
		dg.Date = date.Format("2006-01-02")
		games = append(games, dg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owing games: %w", err)
	}
	return games, nil
}
