package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/cache"
	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/models"
)

type ListUserAppointments struct {
	repo  domain.Repository
	cache *cache.AppointmentCache
}

func NewListUserAppointments(
	repo domain.Repository,
	cache *cache.AppointmentCache,
) *ListUserAppointments {
	return &ListUserAppointments{
		repo:  repo,
		cache: cache,
	}
}

// Execute returns the customer's appointments, newest first, with the
// barber and frozen service lines embedded. Reads go through the cache;
// booking writes invalidate it.
func (uc *ListUserAppointments) Execute(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Appointment, error) {

	if aps, ok := uc.cache.GetUserHistory(ctx, userID); ok {
		return aps, nil
	}

	aps, err := uc.repo.ListUserAppointments(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.cache.SetUserHistory(ctx, userID, aps)
	return aps, nil
}
