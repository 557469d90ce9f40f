package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/models"
)

// ======================================================
// Booking Selection
// ======================================================

// Selection is the customer's in-progress booking: barber, service set,
// date and time. It is a plain immutable record; every update returns a
// new value. A nil barber with barberChosen=true means "no preference".
type Selection struct {
	barberChosen bool
	barber       *models.Barber

	services []models.Service

	date  *time.Time
	clock string
}

func NewSelection() Selection {
	return Selection{}
}

// ChooseBarber replaces the current barber choice. Passing nil is the
// explicit "no preference" choice, which still counts as chosen.
func (s Selection) ChooseBarber(b *models.Barber) Selection {
	s.barberChosen = true
	s.barber = b
	return s
}

// ToggleService adds the service if absent and removes it (by id) if
// present. Insertion order is preserved for display.
func (s Selection) ToggleService(svc models.Service) Selection {
	for i, cur := range s.services {
		if cur.ID == svc.ID {
			next := make([]models.Service, 0, len(s.services)-1)
			next = append(next, s.services[:i]...)
			next = append(next, s.services[i+1:]...)
			s.services = next
			return s
		}
	}

	next := make([]models.Service, len(s.services), len(s.services)+1)
	copy(next, s.services)
	s.services = append(next, svc)
	return s
}

func (s Selection) SetDate(d time.Time) Selection {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	s.date = &day
	return s
}

func (s Selection) SetTime(clock string) Selection {
	s.clock = clock
	return s
}

// Reset discards every choice, as happens after a successful submission.
func (s Selection) Reset() Selection {
	return NewSelection()
}

// ======================================================
// Accessors
// ======================================================

func (s Selection) BarberChosen() bool {
	return s.barberChosen
}

// Barber returns the chosen barber and whether any choice was made.
// (nil, true) is the "no preference" case.
func (s Selection) Barber() (*models.Barber, bool) {
	return s.barber, s.barberChosen
}

func (s Selection) Services() []models.Service {
	out := make([]models.Service, len(s.services))
	copy(out, s.services)
	return out
}

func (s Selection) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.services))
	for _, svc := range s.services {
		ids = append(ids, svc.ID)
	}
	return ids
}

func (s Selection) Date() (time.Time, bool) {
	if s.date == nil {
		return time.Time{}, false
	}
	return *s.date, true
}

func (s Selection) Time() (string, bool) {
	return s.clock, s.clock != ""
}

// ======================================================
// Derived values, recomputed on every call
// ======================================================

func (s Selection) TotalPrice() float64 {
	var sum float64
	for _, svc := range s.services {
		sum += svc.Price
	}
	return sum
}

func (s Selection) TotalDuration() int {
	var sum int
	for _, svc := range s.services {
		sum += svc.DurationMinutes
	}
	return sum
}

// CanSubmit gates submission: a barber choice (no-preference counts),
// at least one service, a date and a time.
func (s Selection) CanSubmit() bool {
	return s.barberChosen &&
		len(s.services) > 0 &&
		s.date != nil &&
		s.clock != ""
}
