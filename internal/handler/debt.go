package handler

import (
	"net/http"

	"github.com/rachapay/platform/internal/domain"
	"github.com/rachapay/platform/internal/repository"
)

// DebtHandler handles aggregate debt endpoints. Totals are computed here from
// the configured fee, never read from storage, so a fee change retroactively
// recomputes every total.
type DebtHandler struct {
	debts    repository.DebtRepository
	db       repository.DBTX
	feeCents int64
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debts repository.DebtRepository, db repository.DBTX, feeCents int64) *DebtHandler {
	return &DebtHandler{debts: debts, db: db, feeCents: feeCents}
}

// List handles GET /debts: every player with at least one owing record,
// ordered by total owed descending then name ascending.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.debts.ListOwingByPlayer(r.Context(), h.db)
	if err != nil {
		RespondError(w, domain.ErrInternal("list debts", err))
		return
	}

	fee := domain.FeeAmount(h.feeCents)
	for i := range debts {
		debts[i].OwingTotal = float64(debts[i].OwingGameCount) * fee
	}

	RespondJSON(w, http.StatusOK, debts)
}

// Detail handles GET /debts/{playerName}. An unknown player is not an error:
// it reports zero owing games and an empty list.
func (h *DebtHandler) Detail(w http.ResponseWriter, r *http.Request) {
	playerName, err := playerNameParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	games, err := h.debts.OwingGamesForPlayer(r.Context(), h.db, playerName)
	if err != nil {
		RespondError(w, domain.ErrInternal("list owing games", err))
		return
	}

	fee := domain.FeeAmount(h.feeCents)
	for i := range games {
		games[i].Amount = fee
	}

	RespondJSON(w, http.StatusOK, domain.DebtDetail{
		PlayerName:     playerName,
		OwingGameCount: len(games),
		OwingTotal:     float64(len(games)) * fee,
		Games:          games,
	})
}
