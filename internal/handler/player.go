package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rachapay/platform/internal/domain"
	"github.com/rachapay/platform/internal/service"
)

// PlayerHandler handles per-game player (payment record) endpoints.
type PlayerHandler struct {
	svc *service.GameService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(svc *service.GameService) *PlayerHandler {
	return &PlayerHandler{svc: svc}
}

// updateStatusRequest is the body of PUT /games/{gameID}/players/{playerName}.
type updateStatusRequest struct {
	Status domain.PaymentStatus `json:"status"`
}

// UpdateStatus handles PUT /games/{gameID}/players/{playerName}.
func (h *PlayerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	playerName, err := playerNameParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req updateStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.svc.UpdatePaymentStatus(r.Context(), gameID, playerName, req.Status); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"gameId":     gameID,
		"playerName": playerName,
		"status":     req.Status,
	})
}

// addPlayerRequest is the body of POST /games/{gameID}/players.
type addPlayerRequest struct {
	Name   string               `json:"name"`
	Status domain.PaymentStatus `json:"status"`
}

// Add handles POST /games/{gameID}/players.
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req addPlayerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	record, err := h.svc.AddPlayer(r.Context(), gameID, req.Name, req.Status)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     record.ID,
		"gameId": record.GameID,
		"name":   record.PlayerName,
		"status": record.Status,
	})
}

// Remove handles DELETE /games/{gameID}/players/{playerName}.
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	playerName, err := playerNameParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.RemovePlayer(r.Context(), gameID, playerName); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// playerNameParam extracts and unescapes the player name route parameter so
// names with spaces round-trip through paths.
func playerNameParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "playerName")
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		return "", domain.ErrValidation("invalid player name")
	}
	return name, nil
}
