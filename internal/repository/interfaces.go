package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rachapay/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// GameRepository provides access to the games table.
type GameRepository interface {
	// Insert creates a game and returns the fully populated row.
	Insert(ctx context.Context, db DBTX, date string) (*domain.Game, error)

	// FindByID returns a game by id, or nil when absent.
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Game, error)

	// ListSummaries returns all games with per-game payment counts,
	// ordered by date descending.
	ListSummaries(ctx context.Context, db DBTX) ([]domain.GameSummary, error)

	// Delete removes a game; payment records cascade. Returns whether a
	// row was deleted.
	Delete(ctx context.Context, db DBTX, id int64) (bool, error)
}

// PaymentRepository provides access to the payments table.
type PaymentRepository interface {
	// Insert creates a payment record and returns its id. A duplicate
	// (game, player) pair yields domain.ErrConflict; a missing game yields
	// domain.ErrNotFound.
	Insert(ctx context.Context, db DBTX, gameID int64, playerName string, status domain.PaymentStatus) (int64, error)

	// ListByGame returns a game's payment records ordered by player name.
	ListByGame(ctx context.Context, db DBTX, gameID int64) ([]domain.PaymentRecord, error)

	// UpdateStatus sets the status of a (game, player) row. Returns whether
	// a row matched.
	UpdateStatus(ctx context.Context, db DBTX, gameID int64, playerName string, status domain.PaymentStatus) (bool, error)

	// Delete removes a (game, player) row. Returns whether a row matched.
	Delete(ctx context.Context, db DBTX, gameID int64, playerName string) (bool, error)
}

// DebtRepository answers aggregate debt queries over all games. Counts only:
// monetary totals are derived by callers from the configured fee.
type DebtRepository interface {
	// ListOwingByPlayer returns, for every player with at least one owing
	// record, the player name and owing count, ordered by count descending
	// then name ascending.
	ListOwingByPlayer(ctx context.Context, db DBTX) ([]domain.PlayerDebt, error)

	// OwingGamesForPlayer returns the games a player still owes for,
	// ordered by date descending. An unknown player yields an empty slice.
	OwingGamesForPlayer(ctx context.Context, db DBTX, playerName string) ([]domain.DebtGame, error)
}
