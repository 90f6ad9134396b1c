package domain

// FeeAmount converts a fee in cents to decimal currency units.
func FeeAmount(cents int64) float64 {
	return float64(cents) / 100
}

// PlayerDebt aggregates a player's owing records across all games. OwingTotal
// is derived at read time from the configured fee, never stored, so changing
// the fee recomputes all historical totals.
type PlayerDebt struct {
	PlayerName     string  `json:"playerName"`
	OwingGameCount int     `json:"owingGameCount"`
	OwingTotal     float64 `json:"owingTotal"`
}

// DebtGame is one owing game inside a player's debt detail.
type DebtGame struct {
	GameID int64         `json:"gameId"`
	Date   string        `json:"date"`
	Status PaymentStatus `json:"status"`
	Amount float64       `json:"amount"`
}

// DebtDetail lists the games a single player still owes for. A player with
// no owing records gets zero totals and an empty game list, not an error.
type DebtDetail struct {
	PlayerName     string     `json:"playerName"`
	OwingGameCount int        `json:"owingGameCount"`
	OwingTotal     float64    `json:"owingTotal"`
	Games          []DebtGame `json:"games"`
}
