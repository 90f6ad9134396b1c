package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rachapay/platform/internal/domain"
	"github.com/rachapay/platform/internal/repository"
	"github.com/rachapay/platform/internal/service"
)

// GameHandler handles game collection and game detail endpoints.
type GameHandler struct {
	games    repository.GameRepository
	payments repository.PaymentRepository
	svc      *service.GameService
	db       repository.DBTX
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(games repository.GameRepository, payments repository.PaymentRepository, svc *service.GameService, db repository.DBTX) *GameHandler {
	return &GameHandler{games: games, payments: payments, svc: svc, db: db}
}

// List handles GET /games: all games with computed counts, newest date first.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.games.ListSummaries(r.Context(), h.db)
	if err != nil {
		RespondError(w, domain.ErrInternal("list games", err))
		return
	}
	RespondJSON(w, http.StatusOK, summaries)
}

// gameDetailResponse is the shape of GET /games/{gameID}.
type gameDetailResponse struct {
	ID        int64                  `json:"id"`
	Date      string                 `json:"date"`
	CreatedAt time.Time              `json:"createdAt"`
	Players   []domain.PaymentRecord `json:"players"`
}

// Get handles GET /games/{gameID}: the game plus its payment records ordered by
// player name.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	game, err := h.games.FindByID(r.Context(), h.db, gameID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find game", err))
		return
	}
	if game == nil {
		RespondError(w, domain.ErrNotFound("game", strconv.FormatInt(gameID, 10)))
		return
	}

	players, err := h.payments.ListByGame(r.Context(), h.db, gameID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list payments", err))
		return
	}

	RespondJSON(w, http.StatusOK, gameDetailResponse{
		ID:        game.ID,
		Date:      game.Date,
		CreatedAt: game.CreatedAt,
		Players:   players,
	})
}

// createGameRequest is the body of POST /games.
type createGameRequest struct {
	Date    string               `json:"date"`
	Players []domain.PlayerEntry `json:"players"`
}

// createGameResponse is the shape of a successful POST /games.
type createGameResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	PlayerCount int    `json:"playerCount"`
}

// Create handles POST /games.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	game, err := h.svc.Create(r.Context(), req.Date, req.Players)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, createGameResponse{
		ID:          game.ID,
		Date:        game.Date,
		PlayerCount: len(req.Players),
	})
}

// Delete handles DELETE /games/{gameID}: removes the game, cascading its records.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), gameID); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// gameIDParam parses the integer game id route parameter. A non-numeric id
// cannot reference any row, so it maps to 404.
func gameIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "gameID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound("game", raw)
	}
	return id, nil
}
