package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	ListActiveBarbers(
		ctx context.Context,
	) ([]models.Barber, error)

	ListActiveServices(
		ctx context.Context,
	) ([]models.Service, error)

	GetBarber(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barber, error)

	GetBarberForUser(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.Barber, error)

	// -------- Appointment (create) --------

	// CreateAppointmentWithServices persists the appointment row and one
	// line per service id as a single unit of work. Line prices are the
	// authoritative catalog prices read inside the same transaction, and
	// ap.TotalPrice is reconciled to their sum before commit. Unknown
	// service ids fail the whole operation.
	CreateAppointmentWithServices(
		ctx context.Context,
		ap *models.Appointment,
		serviceIDs []uuid.UUID,
	) error

	// -------- Appointment (read) --------
	ListUserAppointments(
		ctx context.Context,
		userID uuid.UUID,
	) ([]models.Appointment, error)

	ListBarberAppointmentsForRange(
		ctx context.Context,
		barberID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uuid.UUID,
		userID uuid.UUID,
	) (*models.Appointment, error)

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uuid.UUID,
		barberID uuid.UUID,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Assignment (no-preference bookings) --------
	CountAppointmentsOn(
		ctx context.Context,
		barberID uuid.UUID,
		date time.Time,
	) (int64, error)
}
