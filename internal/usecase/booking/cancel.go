package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/cache"
	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AppointmentCache
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AppointmentCache,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute cancels on behalf of either side. principalID is the barber
// id for ActorBarber and the owning user id for ActorCustomer; the
// lookup is scoped accordingly so nobody cancels someone else's
// appointment.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	by domain.Actor,
	principalID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var (
		ap  *models.Appointment
		err error
	)
	switch by {
	case domain.ActorBarber:
		ap, err = uc.repo.GetAppointmentForBarber(ctx, appointmentID, principalID)
	case domain.ActorCustomer:
		ap, err = uc.repo.GetAppointmentForUser(ctx, appointmentID, principalID)
	default:
		return nil, httperr.ErrBusiness("forbidden_actor")
	}
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanCancel(domain.Status(ap.Status), by); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusCancelled)
	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateUserHistory(ctx, ap.UserID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &ap.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"by": string(by)},
	})

	return ap, nil
}
