package booking

import "github.com/barberhub/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Actor identifies who is driving a status change.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorBarber   Actor = "barber"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanConfirm: barber accepts a pending appointment.
func CanConfirm(current Status, by Actor) error {
	if by != ActorBarber {
		return httperr.ErrBusiness("forbidden_actor")
	}
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: barber closes out a confirmed appointment. Pending
// appointments must be confirmed first.
func CanComplete(current Status, by Actor) error {
	if by != ActorBarber {
		return httperr.ErrBusiness("forbidden_actor")
	}
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: the customer may cancel only while pending; the barber may
// cancel any active (pending or confirmed) appointment.
func CanCancel(current Status, by Actor) error {
	switch current {
	case StatusPending:
		return nil
	case StatusConfirmed:
		if by == ActorBarber {
			return nil
		}
		return httperr.ErrBusiness("forbidden_actor")
	default:
		// completed and cancelled are terminal
		return httperr.ErrBusiness("invalid_state")
	}
}

// CanTransition is the full machine in one place, used by the schedule
// handlers to decide which actions to expose.
func CanTransition(from, to Status, by Actor) error {
	switch to {
	case StatusConfirmed:
		return CanConfirm(from, by)
	case StatusCompleted:
		return CanComplete(from, by)
	case StatusCancelled:
		return CanCancel(from, by)
	default:
		return httperr.ErrBusiness("invalid_state")
	}
}
