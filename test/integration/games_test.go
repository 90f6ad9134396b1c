//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rachapay/platform/internal/domain"
	"github.com/rachapay/platform/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGame_FetchBack(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Bruno", "Ana")

	resp := env.GET(fmt.Sprintf("/games/%d", gameID))
	testutil.AssertStatus(t, resp, http.StatusOK)

	var detail struct {
		ID      int64                  `json:"id"`
		Date    string                 `json:"date"`
		Players []domain.PaymentRecord `json:"players"`
	}
	testutil.DecodeJSON(t, resp, &detail)

	assert.Equal(t, gameID, detail.ID)
	assert.Equal(t, "2024-01-07", detail.Date)
	require.Len(t, detail.Players, 2)
	// Alphabetical by name regardless of insertion order
	assert.Equal(t, "Ana", detail.Players[0].PlayerName)
	assert.Equal(t, "Bruno", detail.Players[1].PlayerName)
	for _, p := range detail.Players {
		assert.Equal(t, domain.StatusOwing, p.Status)
	}
}

func TestListGames_Counts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana", "Bruno", "Carla")

	resp := env.PUT(testutil.PlayerPath(gameID, "Ana"), map[string]string{"status": "paid"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = env.GET("/games")
	testutil.AssertStatus(t, resp, http.StatusOK)

	var games []domain.GameSummary
	testutil.DecodeJSON(t, resp, &games)

	require.Len(t, games, 1)
	assert.Equal(t, 3, games[0].PlayerCount)
	assert.Equal(t, 1, games[0].PaidCount)
	assert.Equal(t, 2, games[0].OwingCount)
	assert.Equal(t, games[0].PlayerCount, games[0].PaidCount+games[0].OwingCount)
}

func TestListGames_NewestFirst(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateGame("2024-01-07", "Ana")
	env.CreateGame("2024-01-21", "Ana")
	env.CreateGame("2024-01-14", "Ana")

	resp := env.GET("/games")
	var games []domain.GameSummary
	testutil.DecodeJSON(t, resp, &games)

	require.Len(t, games, 3)
	assert.Equal(t, "2024-01-21", games[0].Date)
	assert.Equal(t, "2024-01-14", games[1].Date)
	assert.Equal(t, "2024-01-07", games[2].Date)
}

func TestCreateGame_DuplicateInListRollsBack(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/games", map[string]interface{}{
		"date":    "2024-01-07",
		"players": []string{"Ana", "Ana"},
	})
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")

	// The whole creation is one transaction: no partial game survives.
	list := env.GET("/games")
	var games []domain.GameSummary
	testutil.DecodeJSON(t, list, &games)
	assert.Empty(t, games)
}

func TestUpdatePaymentStatus_ToggleIdempotent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana")

	for i := 0; i < 2; i++ {
		resp := env.PUT(testutil.PlayerPath(gameID, "Ana"), map[string]string{"status": "paid"})
		testutil.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()
		assert.Equal(t, "paid", testutil.PaymentStatus(t, env, gameID, "Ana"))
	}

	resp := env.PUT(testutil.PlayerPath(gameID, "Ana"), map[string]string{"status": "owing"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()
	assert.Equal(t, "owing", testutil.PaymentStatus(t, env, gameID, "Ana"))
}

func TestUpdatePaymentStatus_UnknownPlayer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana")

	resp := env.PUT(testutil.PlayerPath(gameID, "Zeca"), map[string]string{"status": "paid"})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestDeleteGame_CascadeNoOrphans(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana", "Bruno")
	require.Equal(t, 2, testutil.CountPayments(t, env, gameID))

	resp := env.DELETE(fmt.Sprintf("/games/%d", gameID))
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	assert.Equal(t, 0, testutil.CountPayments(t, env, gameID))

	resp = env.GET(fmt.Sprintf("/games/%d", gameID))
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestDeleteGame_Unknown(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.DELETE("/games/999999")
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestAddPlayer_DefaultsToOwing(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana")

	resp := env.POST(fmt.Sprintf("/games/%d/players", gameID), map[string]string{"name": "Bruno"})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	assert.Equal(t, "owing", testutil.PaymentStatus(t, env, gameID, "Bruno"))
	assert.Equal(t, 2, testutil.CountPayments(t, env, gameID))
}

func TestAddPlayer_DuplicateConflictKeepsOriginal(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana")

	resp := env.PUT(testutil.PlayerPath(gameID, "Ana"), map[string]string{"status": "paid"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = env.POST(fmt.Sprintf("/games/%d/players", gameID), map[string]interface{}{
		"name":   "Ana",
		"status": "owing",
	})
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")

	// The existing record is untouched.
	assert.Equal(t, "paid", testutil.PaymentStatus(t, env, gameID, "Ana"))
	assert.Equal(t, 1, testutil.CountPayments(t, env, gameID))
}

func TestAddPlayer_UnknownGame(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/games/999999/players", map[string]string{"name": "Ana"})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestRemovePlayer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "Ana", "Bruno")

	resp := env.DELETE(testutil.PlayerPath(gameID, "Bruno"))
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	assert.Equal(t, 1, testutil.CountPayments(t, env, gameID))

	resp = env.DELETE(testutil.PlayerPath(gameID, "Bruno"))
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestPlayerName_EscapedRoundTrip(t *testing.T) {
	env := testutil.NewTestEnv(t)
	gameID := env.CreateGame("2024-01-07", "João Pedro")

	resp := env.PUT(testutil.PlayerPath(gameID, "João Pedro"), map[string]string{"status": "paid"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	assert.Equal(t, "paid", testutil.PaymentStatus(t, env, gameID, "João Pedro"))
}

func TestCreateGame_RejectsBadDate(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/games", map[string]interface{}{
		"date":    "07/01/2024",
		"players": []string{"Ana"},
	})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}
