package store

import "github.com/barberhub/booking-api/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// next maps each state to its single forward successor. delivered and
// cancelled are terminal.
var next = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// CanAdvance validates a forward move; orders never skip states.
func CanAdvance(current, to Status) error {
	if next[current] != to {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel allows cancellation before the order ships.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusProcessing {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
