package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/timezone"
)

// TimelineResult is the staff-side week view: the 7 days of the week,
// the appointments in range, the selected day's slice, and the
// dashboard aggregates (cancelled appointments excluded).
type TimelineResult struct {
	WeekStart time.Time            `json:"week_start"`
	Days      []time.Time          `json:"days"`
	Week      []models.Appointment `json:"week_appointments"`
	Day       []models.Appointment `json:"day_appointments"`

	TodayStats domain.Aggregates `json:"today_stats"`
	WeekStats  domain.Aggregates `json:"week_stats"`
}

type BarberTimeline struct {
	repo domain.Repository
}

func NewBarberTimeline(repo domain.Repository) *BarberTimeline {
	return &BarberTimeline{repo: repo}
}

func (uc *BarberTimeline) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	anchor time.Time,
	selectedDay time.Time,
) (*TimelineResult, error) {

	weekStart := domain.WeekStart(anchor)
	weekEnd := weekStart.AddDate(0, 0, 7)

	week, err := uc.repo.ListBarberAppointmentsForRange(ctx, barberID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	today := timezone.Now()

	return &TimelineResult{
		WeekStart:  weekStart,
		Days:       domain.WeekDays(anchor),
		Week:       week,
		Day:        domain.FilterDay(week, selectedDay),
		TodayStats: domain.Aggregate(domain.FilterDay(week, today)),
		WeekStats:  domain.Aggregate(week),
	}, nil
}
