package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *BookingGormRepository) ListActiveServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		First(&barber, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetBarberForUser(
	ctx context.Context,
	userID uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		First(&barber, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointmentWithServices(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		// Authoritative prices, read inside the transaction. The
		// client-side total is only a preview.
		var services []models.Service
		if err := tx.
			Where("id IN ?", serviceIDs).
			Find(&services).Error; err != nil {
			return err
		}
		if len(services) != len(serviceIDs) {
			return httperr.ErrBusiness("service_not_found")
		}

		priceByID := make(map[uuid.UUID]float64, len(services))
		for _, svc := range services {
			priceByID[svc.ID] = svc.Price
		}

		var total float64
		lines := make([]models.AppointmentService, 0, len(serviceIDs))
		for _, id := range serviceIDs {
			price := priceByID[id]
			total += price
			lines = append(lines, models.AppointmentService{
				AppointmentID:  ap.ID,
				ServiceID:      id,
				PriceAtBooking: price,
			})
		}

		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		// Reconcile the stored total with the line items.
		if total != ap.TotalPrice {
			ap.TotalPrice = total
			if err := tx.Model(&models.Appointment{}).
				Where("id = ?", ap.ID).
				Update("total_price", total).Error; err != nil {
				return err
			}
		}

		ap.Services = lines
		return nil
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *BookingGormRepository) ListUserAppointments(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Services.Service").
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListBarberAppointmentsForRange(
	ctx context.Context,
	barberID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services.Service").
		Where(
			"barber_id = ? AND date >= ? AND date < ?",
			barberID, from, to,
		).
		Order("date ASC, time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) GetAppointmentForUser(
	ctx context.Context,
	appointmentID uuid.UUID,
	userID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uuid.UUID,
	barberID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

// UpdateAppointmentStatus touches only the status column; total price
// and line items stay frozen.
func (r *BookingGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", ap.Status).Error
}

// --------------------------------------------------
// Assignment
// --------------------------------------------------

func (r *BookingGormRepository) CountAppointmentsOn(
	ctx context.Context,
	barberID uuid.UUID,
	date time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND date = ? AND status <> ?",
			barberID, date, string(domain.StatusCancelled),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
