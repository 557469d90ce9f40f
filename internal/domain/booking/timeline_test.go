package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/booking-api/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartIsMonday(t *testing.T) {
	// 2026-09-07 is a Monday
	monday := day(2026, 9, 7)

	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, monday, WeekStart(day(2026, 9, 9)))  // Wednesday
	assert.Equal(t, monday, WeekStart(day(2026, 9, 13))) // Sunday belongs to the week begun the Monday before

	// an anchor with a time-of-day still snaps to midnight
	assert.Equal(t, monday, WeekStart(time.Date(2026, 9, 10, 17, 45, 0, 0, time.UTC)))
}

func TestWeekDays(t *testing.T) {
	got := WeekDays(day(2026, 9, 9))

	require.Len(t, got, 7)
	assert.Equal(t, day(2026, 9, 7), got[0])
	assert.Equal(t, day(2026, 9, 13), got[6])
	for i := 1; i < 7; i++ {
		assert.Equal(t, got[i-1].AddDate(0, 0, 1), got[i])
	}
}

func TestFilterDay(t *testing.T) {
	aps := []models.Appointment{
		{Time: "09:00", Date: day(2026, 9, 7)},
		{Time: "10:00", Date: day(2026, 9, 8)},
		{Time: "11:00", Date: day(2026, 9, 7)},
	}

	got := FilterDay(aps, day(2026, 9, 7))
	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].Time)
	assert.Equal(t, "11:00", got[1].Time)

	assert.Empty(t, FilterDay(aps, day(2026, 9, 9)))
}

func TestAggregateSkipsCancelled(t *testing.T) {
	aps := []models.Appointment{
		{Status: string(StatusPending), TotalPrice: 45},
		{Status: string(StatusConfirmed), TotalPrice: 80},
		{Status: string(StatusCancelled), TotalPrice: 120},
		{Status: string(StatusCompleted), TotalPrice: 35},
	}

	got := Aggregate(aps)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 160.0, got.Revenue)

	assert.Equal(t, Aggregates{}, Aggregate(nil))
}
