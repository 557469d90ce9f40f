package booking

import (
	"context"
	"testing"

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

func (f *fakeRepo) addAppointment(userID, barberID uuid.UUID, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:       uuid.New(),
		UserID:   userID,
		BarberID: barberID,
		Status:   string(status),
	}
	f.appointments = append(f.appointments, ap)
	return ap
}

func testDeps() (*audit.Dispatcher, *cache.AppointmentCache) {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop()),
		cache.NewAppointmentCache(nil, zap.NewNop())
}

func TestConfirmAppointment(t *testing.T) {
	repo := newFakeRepo()
	barberID := uuid.New()
	ap := repo.addAppointment(uuid.New(), barberID, domain.StatusPending)

	dispatcher, hist := testDeps()
	uc := NewConfirmAppointment(repo, dispatcher, hist)

	got, err := uc.Execute(context.Background(), barberID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	assert.Equal(t, 1, repo.statusUpdates)
}

func TestConfirmAppointmentWrongBarber(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.addAppointment(uuid.New(), uuid.New(), domain.StatusPending)

	dispatcher, hist := testDeps()
	uc := NewConfirmAppointment(repo, dispatcher, hist)

	// another barber cannot even see the appointment
	_, err := uc.Execute(context.Background(), uuid.New(), ap.ID)
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "appointment_not_found", code)
	assert.Equal(t, 0, repo.statusUpdates)
}

func TestConfirmAppointmentOnlyFromPending(t *testing.T) {
	repo := newFakeRepo()
	barberID := uuid.New()
	ap := repo.addAppointment(uuid.New(), barberID, domain.StatusConfirmed)

	dispatcher, hist := testDeps()
	uc := NewConfirmAppointment(repo, dispatcher, hist)

	_, err := uc.Execute(context.Background(), barberID, ap.ID)
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "invalid_state", code)
}

func TestCompleteAppointment(t *testing.T) {
	repo := newFakeRepo()
	barberID := uuid.New()
	ap := repo.addAppointment(uuid.New(), barberID, domain.StatusConfirmed)

	dispatcher, hist := testDeps()
	uc := NewCompleteAppointment(repo, dispatcher, hist)

	got, err := uc.Execute(context.Background(), barberID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
}

func TestCompleteAppointmentRequiresConfirmation(t *testing.T) {
	repo := newFakeRepo()
	barberID := uuid.New()
	ap := repo.addAppointment(uuid.New(), barberID, domain.StatusPending)

	dispatcher, hist := testDeps()
	uc := NewCompleteAppointment(repo, dispatcher, hist)

	_, err := uc.Execute(context.Background(), barberID, ap.ID)
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "invalid_state", code)
	assert.Equal(t, 0, repo.statusUpdates)
}

func TestCancelAppointmentByCustomer(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	ap := repo.addAppointment(userID, uuid.New(), domain.StatusPending)

	dispatcher, hist := testDeps()
	uc := NewCancelAppointment(repo, dispatcher, hist)

	got, err := uc.Execute(context.Background(), domain.ActorCustomer, userID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}

func TestCancelConfirmedIsBarberOnly(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	barberID := uuid.New()
	ap := repo.addAppointment(userID, barberID, domain.StatusConfirmed)

	dispatcher, hist := testDeps()
	uc := NewCancelAppointment(repo, dispatcher, hist)

	_, err := uc.Execute(context.Background(), domain.ActorCustomer, userID, ap.ID)
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "forbidden_actor", code)

	got, err := uc.Execute(context.Background(), domain.ActorBarber, barberID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}

func TestCancelScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.addAppointment(uuid.New(), uuid.New(), domain.StatusPending)

	dispatcher, hist := testDeps()
	uc := NewCancelAppointment(repo, dispatcher, hist)

	// a different customer gets not-found, never someone else's booking
	_, err := uc.Execute(context.Background(), domain.ActorCustomer, uuid.New(), ap.ID)
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "appointment_not_found", code)
}

func TestFullLifecycleEndsTerminal(t *testing.T) {
	repo := newFakeRepo()
	barberID := uuid.New()
	ap := repo.addAppointment(uuid.New(), barberID, domain.StatusPending)

	dispatcher, hist := testDeps()
	confirm := NewConfirmAppointment(repo, dispatcher, hist)
	complete := NewCompleteAppointment(repo, dispatcher, hist)
	cancel := NewCancelAppointment(repo, dispatcher, hist)

	_, err := confirm.Execute(context.Background(), barberID, ap.ID)
	require.NoError(t, err)

	got, err := complete.Execute(context.Background(), barberID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)

	// done means done
	_, err = cancel.Execute(context.Background(), domain.ActorBarber, barberID, ap.ID)
	code, _ := httperr.BusinessCode(err)
	assert.Equal(t, "invalid_state", code)
}

func TestCancelTerminalStates(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	barberID := uuid.New()

	for _, status := range []domain.Status{domain.StatusCompleted, domain.StatusCancelled} {
		ap := repo.addAppointment(userID, barberID, status)

		dispatcher, hist := testDeps()
		uc := NewCancelAppointment(repo, dispatcher, hist)

		_, err := uc.Execute(context.Background(), domain.ActorBarber, barberID, ap.ID)
		code, _ := httperr.BusinessCode(err)
		assert.Equal(t, "invalid_state", code, "from %s", status)
	}
}
