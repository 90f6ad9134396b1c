package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/rachapay/platform/internal/auth"
	"github.com/rachapay/platform/internal/domain"
)

// AuthHandler implements the login gate. It checks static credentials from
// config and issues a token the SPA keeps client-side; data endpoints never
// require it.
type AuthHandler struct {
	jwtMgr   *auth.JWTManager
	username string
	password string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(jwtMgr *auth.JWTManager, username, password string) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr, username: username, password: password}
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the shape of a successful login.
type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		RespondError(w, domain.ErrValidation("username and password are required"))
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !userOK || !passOK {
		RespondError(w, domain.ErrUnauthorized("invalid credentials"))
		return
	}

	token, expiresAt, err := h.jwtMgr.GenerateToken(req.Username)
	if err != nil {
		RespondError(w, domain.ErrInternal("generate token", err))
		return
	}

	RespondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}
