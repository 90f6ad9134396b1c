package client

import (
	"math"
	"sort"
	"time"

	"github.com/rachapay/platform/internal/domain"
)

// dateLayout is the wire format for calendar dates. Dates in this format
// compare correctly as strings, which the view filters rely on.
const dateLayout = "2006-01-02"

// WeekOf returns the inclusive [start, end] dates of the 7-day window
// containing today, where weekStart is the first day of the cycle.
func WeekOf(today time.Time, weekStart time.Weekday) (start, end time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// InCurrentWeek reports whether a YYYY-MM-DD date falls inside the week
// containing today.
func InCurrentWeek(date string, today time.Time, weekStart time.Weekday) bool {
	start, end := WeekOf(today, weekStart)
	return date >= start.Format(dateLayout) && date <= end.Format(dateLayout)
}

// CurrentWeekGames filters games to the week containing today, sorted by date
// ascending.
func CurrentWeekGames(games []domain.GameSummary, today time.Time, weekStart time.Weekday) []domain.GameSummary {
	week := []domain.GameSummary{}
	for _, g := range games {
		if InCurrentWeek(g.Date, today, weekStart) {
			week = append(week, g)
		}
	}
	sort.Slice(week, func(i, j int) bool {
		if week[i].Date != week[j].Date {
			return week[i].Date < week[j].Date
		}
		return week[i].ID < week[j].ID
	})
	return week
}

// SplitPastFuture partitions games relative to today's date, time of day
// ignored: past holds dates strictly before today sorted descending, future
// holds today and later sorted ascending. Every game lands in exactly one
// side.
func SplitPastFuture(games []domain.GameSummary, today time.Time) (past, future []domain.GameSummary) {
	cutoff := today.Format(dateLayout)
	past = []domain.GameSummary{}
	future = []domain.GameSummary{}
	for _, g := range games {
		if g.Date < cutoff {
			past = append(past, g)
		} else {
			future = append(future, g)
		}
	}
	sort.Slice(past, func(i, j int) bool {
		if past[i].Date != past[j].Date {
			return past[i].Date > past[j].Date
		}
		return past[i].ID > past[j].ID
	})
	sort.Slice(future, func(i, j int) bool {
		if future[i].Date != future[j].Date {
			return future[i].Date < future[j].Date
		}
		return future[i].ID < future[j].ID
	})
	return past, future
}

// PercentPaid returns round(100 * paid / total), and 0 when total is 0.
func PercentPaid(paid, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(paid) / float64(total)))
}
