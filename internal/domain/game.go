package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// PaymentStatus is the payment state of one player in one game.
type PaymentStatus string

const (
	StatusPaid  PaymentStatus = "paid"
	StatusOwing PaymentStatus = "owing"
)

// Valid reports whether the status is one of the two allowed values.
func (s PaymentStatus) Valid() bool {
	return s == StatusPaid || s == StatusOwing
}

// Game represents a games row: one session on a calendar date. A game exists
// independently of whether it has any players.
type Game struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD, no time component
	CreatedAt time.Time `json:"createdAt"`
}

// GameSummary is a game with its payment counts, computed at read time.
// PaidCount + OwingCount always equals PlayerCount.
type GameSummary struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	PlayerCount int       `json:"playerCount"`
	PaidCount   int       `json:"paidCount"`
	OwingCount  int       `json:"owingCount"`
}

// PaymentRecord represents a payments row: one player's fee obligation for
// one game. A player appears at most once per game.
type PaymentRecord struct {
	ID         int64         `json:"id"`
	GameID     int64         `json:"gameId"`
	PlayerName string        `json:"playerName"`
	Status     PaymentStatus `json:"status"`
}

// PlayerEntry is one element of a game-creation player list. The wire format
// accepts either a bare name (status defaults to owing) or a {name, status}
// object.
type PlayerEntry struct {
	Name   string        `json:"name"`
	Status PaymentStatus `json:"status"`
}

// UnmarshalJSON accepts both "Ana" and {"name":"Ana","status":"paid"}.
func (e *PlayerEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.Name = name
		e.Status = StatusOwing
		return nil
	}

	type entry PlayerEntry
	var obj entry
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("player entry must be a string or an object: %w", err)
	}
	e.Name = obj.Name
	e.Status = obj.Status
	if e.Status == "" {
		e.Status = StatusOwing
	}
	return nil
}
