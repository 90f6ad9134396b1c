package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event types published to the domain event stream.
const (
	EventGameCreated          = "game.created"
	EventGameDeleted          = "game.deleted"
	EventPlayerAdded          = "game.player_added"
	EventPlayerRemoved        = "game.player_removed"
	EventPaymentStatusChanged = "payment.status_changed"
)

// Event is a fire-and-forget domain event. Events are published best-effort
// after the storage write commits; they are notifications, not the source of
// truth.
type Event struct {
	EventID    uuid.UUID       `json:"event_id"`
	EventType  string          `json:"event_type"`
	GameID     int64           `json:"game_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// PartitionKey keys events by game so per-game ordering is preserved.
func (e Event) PartitionKey() string {
	return strconv.FormatInt(e.GameID, 10)
}

func newEvent(eventType string, gameID int64, payload interface{}) Event {
	raw, _ := json.Marshal(payload)
	return Event{
		EventID:    uuid.New(),
		EventType:  eventType,
		GameID:     gameID,
		Payload:    raw,
		OccurredAt: time.Now(),
	}
}

// NewGameCreatedEvent records a game creation with its initial roster size.
func NewGameCreatedEvent(gameID int64, date string, playerCount int) Event {
	return newEvent(EventGameCreated, gameID, map[string]interface{}{
		"date":         date,
		"player_count": playerCount,
	})
}

// NewGameDeletedEvent records a game deletion (payment records cascade).
func NewGameDeletedEvent(gameID int64) Event {
	return newEvent(EventGameDeleted, gameID, map[string]interface{}{})
}

// NewPlayerAddedEvent records a player joining an existing game.
func NewPlayerAddedEvent(gameID int64, playerName string, status PaymentStatus) Event {
	return newEvent(EventPlayerAdded, gameID, map[string]interface{}{
		"player_name": playerName,
		"status":      status,
	})
}

// NewPlayerRemovedEvent records a player leaving a game.
func NewPlayerRemovedEvent(gameID int64, playerName string) Event {
	return newEvent(EventPlayerRemoved, gameID, map[string]interface{}{
		"player_name": playerName,
	})
}

// NewPaymentStatusChangedEvent records a paid/owing toggle.
func NewPaymentStatusChangedEvent(gameID int64, playerName string, status PaymentStatus) Event {
	return newEvent(EventPaymentStatusChanged, gameID, map[string]interface{}{
		"player_name": playerName,
		"status":      status,
	})
}
