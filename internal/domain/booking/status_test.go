package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barberhub/booking-api/internal/httperr"
)

func businessCode(t *testing.T, err error) string {
	t.Helper()
	code, ok := httperr.BusinessCode(err)
	if !ok {
		t.Fatalf("expected business error, got %v", err)
	}
	return code
}

func TestCanConfirm(t *testing.T) {
	assert.NoError(t, CanConfirm(StatusPending, ActorBarber))

	assert.Equal(t, "forbidden_actor", businessCode(t, CanConfirm(StatusPending, ActorCustomer)))

	for _, cur := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.Equal(t, "invalid_state", businessCode(t, CanConfirm(cur, ActorBarber)), "from %s", cur)
	}
}

func TestCanComplete(t *testing.T) {
	assert.NoError(t, CanComplete(StatusConfirmed, ActorBarber))

	// pending must be confirmed first
	assert.Equal(t, "invalid_state", businessCode(t, CanComplete(StatusPending, ActorBarber)))
	assert.Equal(t, "forbidden_actor", businessCode(t, CanComplete(StatusConfirmed, ActorCustomer)))

	for _, cur := range []Status{StatusCompleted, StatusCancelled} {
		assert.Equal(t, "invalid_state", businessCode(t, CanComplete(cur, ActorBarber)), "from %s", cur)
	}
}

func TestCanCancel(t *testing.T) {
	// either side may cancel while pending
	assert.NoError(t, CanCancel(StatusPending, ActorCustomer))
	assert.NoError(t, CanCancel(StatusPending, ActorBarber))

	// confirmed is barber-only
	assert.NoError(t, CanCancel(StatusConfirmed, ActorBarber))
	assert.Equal(t, "forbidden_actor", businessCode(t, CanCancel(StatusConfirmed, ActorCustomer)))

	// terminal states stay terminal
	for _, cur := range []Status{StatusCompleted, StatusCancelled} {
		for _, by := range []Actor{ActorCustomer, ActorBarber} {
			assert.Equal(t, "invalid_state", businessCode(t, CanCancel(cur, by)), "from %s by %s", cur, by)
		}
	}
}

func TestCanTransitionDispatch(t *testing.T) {
	assert.NoError(t, CanTransition(StatusPending, StatusConfirmed, ActorBarber))
	assert.NoError(t, CanTransition(StatusConfirmed, StatusCompleted, ActorBarber))
	assert.NoError(t, CanTransition(StatusPending, StatusCancelled, ActorCustomer))

	// no edges back into pending
	assert.Equal(t, "invalid_state", businessCode(t, CanTransition(StatusConfirmed, StatusPending, ActorBarber)))

	// pending cannot skip straight to completed
	assert.Equal(t, "invalid_state", businessCode(t, CanTransition(StatusPending, StatusCompleted, ActorBarber)))
}
