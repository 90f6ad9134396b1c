package handler

import (
	"context"
	"fmt"
	"sort"

	"github.com/rachapay/platform/internal/domain"
	"github.com/rachapay/platform/internal/repository"
)

// In-memory repository fakes. They ignore the DBTX argument, which lets the
// service run with a nil pool for every path that does not open a transaction.

type fakeGameRepo struct {
	games  map[int64]*domain.Game
	nextID int64
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: map[int64]*domain.Game{}, nextID: 1}
}

func (f *fakeGameRepo) Insert(_ context.Context, _ repository.DBTX, date string) (*domain.Game, error) {
	g := &domain.Game{ID: f.nextID, Date: date}
	f.games[g.ID] = g
	f.nextID++
	return g, nil
}

func (f *fakeGameRepo) FindByID(_ context.Context, _ repository.DBTX, id int64) (*domain.Game, error) {
	return f.games[id], nil
}

func (f *fakeGameRepo) ListSummaries(_ context.Context, _ repository.DBTX) ([]domain.GameSummary, error) {
	out := []domain.GameSummary{}
	for _, g := range f.games {
		out = append(out, domain.GameSummary{ID: g.ID, Date: g.Date, CreatedAt: g.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeGameRepo) Delete(_ context.Context, _ repository.DBTX, id int64) (bool, error) {
	if _, ok := f.games[id]; !ok {
		return false, nil
	}
	delete(f.games, id)
	return true, nil
}

type fakePaymentRepo struct {
	records map[string]*domain.PaymentRecord // key: gameID/playerName
	nextID  int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: map[string]*domain.PaymentRecord{}, nextID: 1}
}

func key(gameID int64, name string) string {
	return fmt.Sprintf("%d/%s", gameID, name)
}

func (f *fakePaymentRepo) Insert(_ context.Context, _ repository.DBTX, gameID int64, playerName string, status domain.PaymentStatus) (int64, error) {
	k := key(gameID, playerName)
	if _, ok := f.records[k]; ok {
		return 0, domain.ErrConflict(fmt.Sprintf("player %q already in game %d", playerName, gameID))
	}
	rec := &domain.PaymentRecord{ID: f.nextID, GameID: gameID, PlayerName: playerName, Status: status}
	f.records[k] = rec
	f.nextID++
	return rec.ID, nil
}

func (f *fakePaymentRepo) ListByGame(_ context.Context, _ repository.DBTX, gameID int64) ([]domain.PaymentRecord, error) {
	out := []domain.PaymentRecord{}
	for _, rec := range f.records {
		if rec.GameID == gameID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, _ repository.DBTX, gameID int64, playerName string, status domain.PaymentStatus) (bool, error) {
	rec, ok := f.records[key(gameID, playerName)]
	if !ok {
		return false, nil
	}
	rec.Status = status
	return true, nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, _ repository.DBTX, gameID int64, playerName string) (bool, error) {
	k := key(gameID, playerName)
	if _, ok := f.records[k]; !ok {
		return false, nil
	}
	delete(f.records, k)
	return true, nil
}

type fakeDebtRepo struct {
	debts map[string][]domain.DebtGame
}

func newFakeDebtRepo() *fakeDebtRepo {
	return &fakeDebtRepo{debts: map[string][]domain.DebtGame{}}
}

func (f *fakeDebtRepo) ListOwingByPlayer(_ context.Context, _ repository.DBTX) ([]domain.PlayerDebt, error) {
	out := []domain.PlayerDebt{}
	for name, games := range f.debts {
		out = append(out, domain.PlayerDebt{PlayerName: name, OwingGameCount: len(games)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OwingGameCount != out[j].OwingGameCount {
			return out[i].OwingGameCount > out[j].OwingGameCount
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out, nil
}

func (f *fakeDebtRepo) OwingGamesForPlayer(_ context.Context, _ repository.DBTX, playerName string) ([]domain.DebtGame, error) {
	games := f.debts[playerName]
	if games == nil {
		return []domain.DebtGame{}, nil
	}
	return games, nil
}
