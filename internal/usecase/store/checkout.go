package store

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barberhub/booking-api/internal/audit"
	domain "github.com/barberhub/booking-api/internal/domain/store"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type CheckoutInput struct {
	Items   []CheckoutItem
	Address string
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

type Checkout struct {
	repo     domain.Repository
	payments *payments.Client
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewCheckout(
	repo domain.Repository,
	payments *payments.Client,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Checkout {
	return &Checkout{
		repo:     repo,
		payments: payments,
		audit:    audit,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Checkout) Execute(
	ctx context.Context,
	userID uuid.UUID,
	in CheckoutInput,
) (*models.Order, error) {

	if userID == uuid.Nil {
		return nil, httperr.ErrBusiness("not_authenticated")
	}
	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("empty_order")
	}

	seen := make(map[uuid.UUID]struct{}, len(in.Items))
	lines := make([]domain.OrderLine, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
		if _, dup := seen[it.ProductID]; dup {
			return nil, httperr.ErrBusiness("duplicate_product")
		}
		seen[it.ProductID] = struct{}{}
		lines = append(lines, domain.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	order := models.Order{
		UserID:  userID,
		Status:  string(domain.InitialStatus()),
		Address: in.Address,
		Notes:   in.Notes,
	}

	// The repository locks the rows, snapshots authoritative prices and
	// recomputes the total; the submitted cart never sets a price.
	if err := uc.repo.CreateOrderWithItems(ctx, &order, lines); err != nil {
		return nil, err
	}

	// Gateway registration happens after commit; a gateway outage must
	// not lose the order. The preference id is filled in when it works.
	if uc.payments != nil {
		uc.registerWithGateway(ctx, &order)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &order.ID,
		Metadata: map[string]any{"total": order.Total},
	})

	return &order, nil
}

func (uc *Checkout) registerWithGateway(ctx context.Context, order *models.Order) {
	items := make([]payments.Item, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, payments.Item{
			ID:        it.ProductID.String(),
			Title:     it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.PriceAtPurchase,
		})
	}

	pref, err := uc.payments.CreatePreference(ctx, order.ID.String(), items)
	if err != nil {
		uc.log.Warn("payment preference creation failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return
	}

	order.MercadoPagoPreferenceID = pref.ID
	if err := uc.repo.SetPreferenceID(ctx, order.ID, pref.ID); err != nil {
		uc.log.Warn("failed to persist preference id", zap.Error(err))
	}
}
