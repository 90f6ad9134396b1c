package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rachapay/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDebts(t *testing.T) {
	t.Run("totals derived from fee", func(t *testing.T) {
		env := newTestEnv(t)
		env.debts.debts["Ana"] = []domain.DebtGame{
			{GameID: 1, Date: "2024-01-07", Status: domain.StatusOwing},
			{GameID: 2, Date: "2024-01-14", Status: domain.StatusOwing},
		}
		env.debts.debts["Bruno"] = []domain.DebtGame{
			{GameID: 1, Date: "2024-01-07", Status: domain.StatusOwing},
		}

		w := env.do(t, http.MethodGet, "/debts", "")
		require.Equal(t, http.StatusOK, w.Code)

		var debts []domain.PlayerDebt
		require.NoError(t, json.NewDecoder(w.Body).Decode(&debts))
		require.Len(t, debts, 2)
		// Highest total first.
		assert.Equal(t, "Ana", debts[0].PlayerName)
		assert.Equal(t, 2, debts[0].OwingGameCount)
		assert.Equal(t, 10.0, debts[0].OwingTotal)
		assert.Equal(t, "Bruno", debts[1].PlayerName)
		assert.Equal(t, 5.0, debts[1].OwingTotal)
	})

	t.Run("no debts is an empty list", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/debts", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestDebtDetail(t *testing.T) {
	t.Run("lists owing games with per-game amount", func(t *testing.T) {
		env := newTestEnv(t)
		env.debts.debts["Ana"] = []domain.DebtGame{
			{GameID: 2, Date: "2024-01-14", Status: domain.StatusOwing},
			{GameID: 1, Date: "2024-01-07", Status: domain.StatusOwing},
		}

		w := env.do(t, http.MethodGet, "/debts/Ana", "")
		require.Equal(t, http.StatusOK, w.Code)

		var detail domain.DebtDetail
		require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
		assert.Equal(t, "Ana", detail.PlayerName)
		assert.Equal(t, 2, detail.OwingGameCount)
		assert.Equal(t, 10.0, detail.OwingTotal)
		require.Len(t, detail.Games, 2)
		for _, g := range detail.Games {
			assert.Equal(t, 5.0, g.Amount)
			assert.Equal(t, domain.StatusOwing, g.Status)
		}
	})

	t.Run("unknown player yields zero totals, not an error", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/debts/Nobody", "")
		require.Equal(t, http.StatusOK, w.Code)

		var detail domain.DebtDetail
		require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
		assert.Equal(t, "Nobody", detail.PlayerName)
		assert.Zero(t, detail.OwingGameCount)
		assert.Zero(t, detail.OwingTotal)
		assert.Empty(t, detail.Games)
	})
}
