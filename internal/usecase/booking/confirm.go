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

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AppointmentCache
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AppointmentCache,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanConfirm(domain.Status(ap.Status), domain.ActorBarber); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusConfirmed)
	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateUserHistory(ctx, ap.UserID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &ap.UserID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
