package booking

import (
	"time"

	"github.com/barberhub/booking-api/internal/models"
)

// ======================================================
// Week timeline (barber schedule view)
// ======================================================

// WeekStart returns the Monday of the week containing anchor, at
// midnight in anchor's location.
func WeekStart(anchor time.Time) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())

	offset := (int(day.Weekday()) + 6) % 7 // Monday-first
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns the 7 contiguous days starting at the Monday of
// anchor's week.
func WeekDays(anchor time.Time) []time.Time {
	start := WeekStart(anchor)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// FilterDay keeps the appointments scheduled on the given calendar day.
func FilterDay(aps []models.Appointment, day time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(aps))
	for _, ap := range aps {
		if SameDay(ap.Date, day) {
			out = append(out, ap)
		}
	}
	return out
}

// Aggregates summarizes a slice of appointments for the dashboard
// cards. Cancelled appointments carry no revenue and are not counted.
type Aggregates struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

func Aggregate(aps []models.Appointment) Aggregates {
	var agg Aggregates
	for _, ap := range aps {
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		agg.Count++
		agg.Revenue += ap.TotalPrice
	}
	return agg
}
