package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/models"
)

// OrderLine is one requested product and quantity at checkout, before
// prices are known.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type Repository interface {
	// CreateOrderWithItems persists the order plus one snapshot line per
	// requested product as a single unit of work. Product rows are
	// locked for the duration; inactive or unknown products fail with
	// product_not_found, short stock with insufficient_stock. Line
	// prices are the authoritative catalog prices read under the lock,
	// order.Total is recomputed from them, and stock is decremented
	// before commit.
	CreateOrderWithItems(
		ctx context.Context,
		order *models.Order,
		lines []OrderLine,
	) error

	// SetPreferenceID records the payment gateway's preference id after
	// the order is committed.
	SetPreferenceID(
		ctx context.Context,
		orderID uuid.UUID,
		preferenceID string,
	) error
}
