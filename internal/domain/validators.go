package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const maxPlayerNameLen = 100

// ValidateDate checks that date is a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if date == "" {
		return errors.New("date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

// ValidatePlayerName checks that a player name is non-blank and within bounds.
// Identity is by exact string match, so leading/trailing whitespace is rejected
// rather than silently trimmed.
func ValidatePlayerName(name string) error {
	if name == "" {
		return errors.New("player name is required")
	}
	if strings.TrimSpace(name) != name {
		return errors.New("player name must not have leading or trailing whitespace")
	}
	if len(name) > maxPlayerNameLen {
		return fmt.Errorf("player name exceeds %d characters", maxPlayerNameLen)
	}
	return nil
}

// ValidateStatus checks that a status is in the allowed set.
func ValidateStatus(s PaymentStatus) error {
	if !s.Valid() {
		return fmt.Errorf("status must be %q or %q", StatusPaid, StatusOwing)
	}
	return nil
}
