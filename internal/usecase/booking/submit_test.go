package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/cache"
	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	barbers  []models.Barber
	services map[uuid.UUID]models.Service

	// appointments per barber id per date, for load counting
	load map[uuid.UUID]map[string]int64

	appointments []*models.Appointment

	created      []*models.Appointment
	createdLines [][]uuid.UUID
	createErr    error
	failLines    bool

	statusUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: make(map[uuid.UUID]models.Service),
		load:     make(map[uuid.UUID]map[string]int64),
	}
}

func (f *fakeRepo) addBarber(name string, active bool) models.Barber {
	b := models.Barber{
		ID:                  uuid.New(),
		Name:                name,
		SlotIntervalMinutes: 30,
		IsActive:            active,
	}
	f.barbers = append(f.barbers, b)
	return b
}

func (f *fakeRepo) addService(name string, price float64) models.Service {
	s := models.Service{ID: uuid.New(), Name: name, Price: price, IsActive: true}
	f.services[s.ID] = s
	return s
}

func (f *fakeRepo) setLoad(barberID uuid.UUID, date time.Time, n int64) {
	key := date.Format("2006-01-02")
	if f.load[barberID] == nil {
		f.load[barberID] = make(map[string]int64)
	}
	f.load[barberID][key] = n
}

func (f *fakeRepo) ListActiveBarbers(ctx context.Context) ([]models.Barber, error) {
	// name-ordered and active-only, like the real repository
	out := make([]models.Barber, 0, len(f.barbers))
	for _, b := range f.barbers {
		if b.IsActive {
			out = append(out, b)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Name < out[j-1].Name; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error) {
	for i := range f.barbers {
		if f.barbers[i].ID == id {
			return &f.barbers[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) GetBarberForUser(ctx context.Context, userID uuid.UUID) (*models.Barber, error) {
	return nil, errors.New("not found")
}

func (f *fakeRepo) CreateAppointmentWithServices(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uuid.UUID,
) error {
	if f.createErr != nil {
		return f.createErr
	}
	// simulates the line insert failing after the appointment row went
	// in: the transaction rolls back, so nothing is recorded
	if f.failLines {
		return errors.New("line insert failed")
	}

	var total float64
	for _, id := range serviceIDs {
		svc, ok := f.services[id]
		if !ok {
			return httperr.ErrBusiness("service_not_found")
		}
		total += svc.Price
	}

	ap.ID = uuid.New()
	ap.TotalPrice = total
	f.created = append(f.created, ap)
	f.createdLines = append(f.createdLines, serviceIDs)
	return nil
}

func (f *fakeRepo) ListUserAppointments(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListBarberAppointmentsForRange(
	ctx context.Context,
	barberID uuid.UUID,
	from, to time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && !ap.Date.Before(from) && ap.Date.Before(to) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointmentForUser(ctx context.Context, appointmentID, userID uuid.UUID) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.UserID == userID {
			return ap, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uuid.UUID) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			return ap, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment) error {
	f.statusUpdates++
	return nil
}

func (f *fakeRepo) CountAppointmentsOn(ctx context.Context, barberID uuid.UUID, date time.Time) (int64, error) {
	return f.load[barberID][date.Format("2006-01-02")], nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func newSubmitUC(repo *fakeRepo) *SubmitBooking {
	dispatcher := audit.NewDispatcher(audit.New(nil), zap.NewNop())
	return NewSubmitBooking(repo, dispatcher, cache.NewAppointmentCache(nil, zap.NewNop()))
}

// ======================================================
// TESTS
// ======================================================

func TestSubmitBookingHappyPath(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)
	barba := repo.addService("Barba", 35)

	uc := newSubmitUC(repo)
	userID := uuid.New()

	ap, err := uc.Execute(context.Background(), userID, SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "09:30",
		ServiceIDs: []uuid.UUID{corte.ID, barba.ID},
		TotalPrice: 80,
	})
	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.Equal(t, userID, ap.UserID)
	assert.Equal(t, barber.ID, ap.BarberID)
	assert.Equal(t, "09:30", ap.Time)
	assert.Equal(t, string(domain.StatusPending), ap.Status)

	require.Len(t, repo.created, 1)
	assert.Equal(t, []uuid.UUID{corte.ID, barba.ID}, repo.createdLines[0])
}

func TestSubmitBookingTotalIsAuthoritative(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)
	barba := repo.addService("Barba", 35)

	uc := newSubmitUC(repo)

	// the client sends a stale preview total; the stored total comes
	// from catalog prices
	ap, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "10:00",
		ServiceIDs: []uuid.UUID{corte.ID, barba.ID},
		TotalPrice: 12.50,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, ap.TotalPrice)
}

func TestSubmitBookingUnauthenticatedWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	_, err := uc.Execute(context.Background(), uuid.Nil, SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "not_authenticated", code)
	assert.Empty(t, repo.created)
}

func TestSubmitBookingIncompleteSelection(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)
	userID := uuid.New()

	cases := []SubmitBookingInput{
		// no services
		{BarberID: &barber.ID, Date: "2026-09-07", Time: "09:00"},
		// no date
		{BarberID: &barber.ID, Time: "09:00", ServiceIDs: []uuid.UUID{corte.ID}},
		// no time
		{BarberID: &barber.ID, Date: "2026-09-07", ServiceIDs: []uuid.UUID{corte.ID}},
	}
	for _, in := range cases {
		_, err := uc.Execute(context.Background(), userID, in)
		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "incomplete_selection", code)
	}
	assert.Empty(t, repo.created)
}

func TestSubmitBookingRejectsBadDateAndTime(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)
	userID := uuid.New()

	_, err := uc.Execute(context.Background(), userID, SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "07/09/2026",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "invalid_date", code)

	_, err = uc.Execute(context.Background(), userID, SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "9h30",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	code, _ = httperr.BusinessCode(err)
	assert.Equal(t, "invalid_time", code)

	// well-formed but off the slot grid
	_, err = uc.Execute(context.Background(), userID, SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "12:30",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	code, _ = httperr.BusinessCode(err)
	assert.Equal(t, "time_not_bookable", code)

	assert.Empty(t, repo.created)
}

func TestSubmitBookingDeduplicatesServices(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	ap, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID, corte.ID, corte.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{corte.ID}, repo.createdLines[0])
	assert.Equal(t, 45.0, ap.TotalPrice)
}

func TestSubmitBookingInactiveBarberRejected(t *testing.T) {
	repo := newFakeRepo()
	inactive := repo.addBarber("Afastado", false)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	_, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   &inactive.ID,
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "barber_not_found", code)
}

func TestSubmitBookingUnknownServiceFailsWhole(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	_, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID, uuid.New()},
	})
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "service_not_found", code)
	assert.Empty(t, repo.created)
}

func TestSubmitBookingLineFailureIsNotASuccess(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)
	repo.failLines = true

	uc := newSubmitUC(repo)

	ap, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	require.Error(t, err)
	assert.Nil(t, ap)
	assert.Empty(t, repo.created, "rolled-back booking must leave no appointment behind")
}

func TestSubmitBookingPersistenceFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	barber := repo.addBarber("Marcos", true)
	corte := repo.addService("Corte", 45)
	repo.createErr = errors.New("connection reset")

	uc := newSubmitUC(repo)

	_, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   &barber.ID,
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	assert.ErrorContains(t, err, "connection reset")
	assert.Empty(t, repo.created)
}

// ======================================================
// NO-PREFERENCE ASSIGNMENT
// ======================================================

func TestSubmitBookingNoPreferencePicksLeastLoaded(t *testing.T) {
	repo := newFakeRepo()
	ana := repo.addBarber("Ana", true)
	bruno := repo.addBarber("Bruno", true)
	repo.addBarber("Afastado", false)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	// Ana already has 3 bookings that day, Bruno has 1
	dayUTC, _ := time.Parse("2006-01-02", "2026-09-07")
	repo.setLoad(ana.ID, dayUTC, 3)
	repo.setLoad(bruno.ID, dayUTC, 1)

	ap, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		BarberID:   nil, // no preference
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, bruno.ID, ap.BarberID)
}

func TestSubmitBookingNoPreferenceTiesBreakByName(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber("Zeca", true)
	ana := repo.addBarber("Ana", true)
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	// both idle: the first name in order wins
	ap, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, ana.ID, ap.BarberID)
}

func TestSubmitBookingNoPreferenceWithoutBarbers(t *testing.T) {
	repo := newFakeRepo()
	corte := repo.addService("Corte", 45)

	uc := newSubmitUC(repo)

	_, err := uc.Execute(context.Background(), uuid.New(), SubmitBookingInput{
		Date:       "2026-09-07",
		Time:       "09:00",
		ServiceIDs: []uuid.UUID{corte.ID},
	})
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "no_barber_available", code)
}
