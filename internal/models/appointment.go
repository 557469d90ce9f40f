package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	// Customer is the booking owner's profile, joined on user_id.
	Customer Profile `gorm:"foreignKey:UserID;references:UserID" json:"customer"`

	BarberID uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`
	Barber   Barber    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	Date time.Time `gorm:"type:date;index;not null" json:"appointment_date"`
	Time string    `gorm:"size:5;not null" json:"appointment_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Sum of the line items' price_at_booking; fixed at creation.
	TotalPrice float64 `gorm:"not null" json:"total_price"`

	Notes string `gorm:"size:255" json:"notes"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"appointment_services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AppointmentService is a frozen line item: the service's price at the
// moment of booking, decoupled from later catalog edits. Never updated.
type AppointmentService struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointment_id"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	PriceAtBooking float64 `gorm:"not null" json:"price_at_booking"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
