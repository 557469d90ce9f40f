package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/models"
)

// ScheduleEntryDTO is one row in the barber's day view: the flattened
// appointment plus the names of the booked services.
type ScheduleEntryDTO struct {
	ID            uuid.UUID `json:"id"`
	Date          time.Time `json:"appointment_date"`
	Time          string    `json:"appointment_time"`
	Status        string    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Services      []string  `json:"services"`
	Notes         string    `json:"notes"`
}

func NewScheduleEntries(aps []models.Appointment) []ScheduleEntryDTO {
	out := make([]ScheduleEntryDTO, 0, len(aps))
	for _, ap := range aps {
		names := make([]string, 0, len(ap.Services))
		for _, line := range ap.Services {
			names = append(names, line.Service.Name)
		}
		out = append(out, ScheduleEntryDTO{
			ID:            ap.ID,
			Date:          ap.Date,
			Time:          ap.Time,
			Status:        ap.Status,
			TotalPrice:    ap.TotalPrice,
			CustomerName:  ap.Customer.FullName,
			CustomerPhone: ap.Customer.Phone,
			Services:      names,
			Notes:         ap.Notes,
		})
	}
	return out
}
