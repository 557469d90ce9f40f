package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty"`
	ImageURL  string `gorm:"size:255" json:"image_url"`

	// Granularity of bookable start times for this barber's calendar.
	SlotIntervalMinutes int  `gorm:"default:30" json:"slot_interval_minutes"`
	IsActive            bool `gorm:"default:true" json:"is_active"`

	// Staff login linked to this chair, if the barber uses the app.
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
