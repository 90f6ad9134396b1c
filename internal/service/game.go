package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rachapay/platform/internal/domain"
	"github.com/rachapay/platform/internal/infra"
	"github.com/rachapay/platform/internal/repository"
)

// GameService orchestrates game and payment mutations. Multi-row writes run
// in a single transaction; domain events are published after commit.
type GameService struct {
	pool     *pgxpool.Pool
	games    repository.GameRepository
	payments repository.PaymentRepository
	producer *infra.KafkaProducer
	logger   *slog.Logger
}

// NewGameService creates a GameService.
func NewGameService(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	payments repository.PaymentRepository,
	producer *infra.KafkaProducer,
	logger *slog.Logger,
) *GameService {
	return &GameService{
		pool:     pool,
		games:    games,
		payments: payments,
		producer: producer,
		logger:   logger,
	}
}

// Create inserts a game and its initial payment records atomically. If any
// player insert fails, the game row rolls back too.
func (s *GameService) Create(ctx context.Context, date string, players []domain.PlayerEntry) (*domain.Game, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(players) == 0 {
		return nil, domain.ErrValidation("player list is required")
	}
	for _, p := range players {
		if err := domain.ValidatePlayerName(p.Name); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
		if err := domain.ValidateStatus(p.Status); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	game, err := s.games.Insert(ctx, tx, date)
	if err != nil {
		return nil, domain.ErrInternal("insert game", err)
	}

	for _, p := range players {
		if _, err := s.payments.Insert(ctx, tx, game.ID, p.Name, p.Status); err != nil {
			if appErr, ok := err.(*domain.AppError); ok {
				// Duplicate name within the submitted list.
				return nil, appErr
			}
			return nil, domain.ErrInternal("insert payment", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit game creation", err)
	}

	s.producer.PublishEvent(ctx, domain.NewGameCreatedEvent(game.ID, game.Date, len(players)))
	s.logger.Info("game created", "game_id", game.ID, "date", game.Date, "players", len(players))
	return game, nil
}

// Delete removes a game; its payment records cascade away with it.
func (s *GameService) Delete(ctx context.Context, gameID int64) error {
	found, err := s.games.Delete(ctx, s.pool, gameID)
	if err != nil {
		return domain.ErrInternal("delete game", err)
	}
	if !found {
		return domain.ErrNotFound("game", strconv.FormatInt(gameID, 10))
	}

	s.producer.PublishEvent(ctx, domain.NewGameDeletedEvent(gameID))
	s.logger.Info("game deleted", "game_id", gameID)
	return nil
}

// UpdatePaymentStatus sets a player's status for one game.
func (s *GameService) UpdatePaymentStatus(ctx context.Context, gameID int64, playerName string, status domain.PaymentStatus) error {
	if err := domain.ValidateStatus(status); err != nil {
		return domain.ErrValidation(err.Error())
	}

	found, err := s.payments.UpdateStatus(ctx, s.pool, gameID, playerName, status)
	if err != nil {
		return domain.ErrInternal("update payment status", err)
	}
	if !found {
		return domain.ErrNotFound("player", fmt.Sprintf("%s in game %d", playerName, gameID))
	}

	s.producer.PublishEvent(ctx, domain.NewPaymentStatusChangedEvent(gameID, playerName, status))
	return nil
}

// AddPlayer adds a payment record for one player to an existing game. An
// omitted status defaults to owing.
func (s *GameService) AddPlayer(ctx context.Context, gameID int64, playerName string, status domain.PaymentStatus) (*domain.PaymentRecord, error) {
	if err := domain.ValidatePlayerName(playerName); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if status == "" {
		status = domain.StatusOwing
	}
	if err := domain.ValidateStatus(status); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	id, err := s.payments.Insert(ctx, s.pool, gameID, playerName, status)
	if err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return nil, appErr
		}
		return nil, domain.ErrInternal("insert payment", err)
	}

	s.producer.PublishEvent(ctx, domain.NewPlayerAddedEvent(gameID, playerName, status))
	return &domain.PaymentRecord{ID: id, GameID: gameID, PlayerName: playerName, Status: status}, nil
}

// RemovePlayer deletes a player's payment record from a game.
func (s *GameService) RemovePlayer(ctx context.Context, gameID int64, playerName string) error {
	found, err := s.payments.Delete(ctx, s.pool, gameID, playerName)
	if err != nil {
		return domain.ErrInternal("delete payment", err)
	}
	if !found {
		return domain.ErrNotFound("player", fmt.Sprintf("%s in game %d", playerName, gameID))
	}

	s.producer.PublishEvent(ctx, domain.NewPlayerRemovedEvent(gameID, playerName))
	return nil
}
