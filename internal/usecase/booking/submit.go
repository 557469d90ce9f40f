package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/cache"
	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type SubmitBookingInput struct {
	// Nil means the customer explicitly chose "no preference" and a
	// barber is assigned server-side.
	BarberID *uuid.UUID

	Date string
	Time string

	ServiceIDs []uuid.UUID

	// Client-side preview total; the persisted total is reconciled
	// against authoritative catalog prices inside the transaction.
	TotalPrice float64

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AppointmentCache
}

func NewSubmitBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AppointmentCache,
) *SubmitBooking {
	return &SubmitBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	userID uuid.UUID,
	in SubmitBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Caller must be authenticated. No side effects otherwise.
	// --------------------------------------------------
	if userID == uuid.Nil {
		return nil, httperr.ErrBusiness("not_authenticated")
	}

	// --------------------------------------------------
	// 2. All four selections must be present.
	// --------------------------------------------------
	serviceIDs := dedupeIDs(in.ServiceIDs)
	if len(serviceIDs) == 0 || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("incomplete_selection")
	}

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if _, err := timezone.ParseClock(in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// 3. Resolve the barber. "No preference" assigns the least-loaded
	// active barber for the requested day, ties broken by name.
	// --------------------------------------------------
	var barber *models.Barber
	if in.BarberID != nil {
		barber, err = uc.repo.GetBarber(ctx, *in.BarberID)
		if err != nil || !barber.IsActive {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
	} else {
		barber, err = uc.assignBarber(ctx, date)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. The time must sit on the barber's slot grid.
	// --------------------------------------------------
	if !domain.IsBookableTime(in.Time, barber.SlotIntervalMinutes) {
		return nil, httperr.ErrBusiness("time_not_bookable")
	}

	// --------------------------------------------------
	// 5. Appointment row + frozen line items, one unit of work. The
	// repository reconciles the total against authoritative prices.
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:     userID,
		BarberID:   barber.ID,
		Date:       date,
		Time:       in.Time,
		Status:     string(domain.InitialStatus()),
		TotalPrice: in.TotalPrice,
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateAppointmentWithServices(ctx, ap, serviceIDs); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Post-commit bookkeeping.
	// --------------------------------------------------
	uc.cache.InvalidateUserHistory(ctx, userID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id":   barber.ID,
			"total_price": ap.TotalPrice,
			"services":    len(serviceIDs),
		},
	})

	return ap, nil
}

func (uc *SubmitBooking) assignBarber(
	ctx context.Context,
	date time.Time,
) (*models.Barber, error) {

	barbers, err := uc.repo.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return nil, httperr.ErrBusiness("no_barber_available")
	}

	// Barbers arrive ordered by name, so the first minimum wins ties.
	best := 0
	bestLoad := int64(-1)
	for i := range barbers {
		load, err := uc.repo.CountAppointmentsOn(ctx, barbers[i].ID, date)
		if err != nil {
			return nil, err
		}
		if bestLoad < 0 || load < bestLoad {
			best = i
			bestLoad = load
		}
	}

	return &barbers[best], nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
