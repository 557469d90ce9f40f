package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberhub/booking-api/internal/domain/store"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/models"
)

type StoreGormRepository struct {
	db *gorm.DB
}

func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

func (r *StoreGormRepository) CreateOrderWithItems(
	ctx context.Context,
	order *models.Order,
	lines []domain.OrderLine,
) error {

	quantities := make(map[uuid.UUID]int, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		quantities[l.ProductID] = l.Quantity
		ids = append(ids, l.ProductID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var products []models.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND is_active = ?", ids, true).
			Find(&products).Error; err != nil {
			return err
		}
		if len(products) != len(ids) {
			return httperr.ErrBusiness("product_not_found")
		}

		// Snapshot prices and check stock while the rows are locked.
		var total float64
		for _, p := range products {
			qty := quantities[p.ID]
			if p.StockQuantity < qty {
				return httperr.ErrBusiness("insufficient_stock")
			}
			total += p.Price * float64(qty)
		}
		order.Total = total

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(products))
		for _, p := range products {
			qty := quantities[p.ID]
			items = append(items, models.OrderItem{
				OrderID:         order.ID,
				ProductID:       p.ID,
				Product:         p,
				Quantity:        qty,
				PriceAtPurchase: p.Price,
			})

			if err := tx.Model(&models.Product{}).
				Where("id = ?", p.ID).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty)).
				Error; err != nil {
				return err
			}
		}
		// Products are already persisted; only the items themselves go in.
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
}

func (r *StoreGormRepository) SetPreferenceID(
	ctx context.Context,
	orderID uuid.UUID,
	preferenceID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("mercadopago_preference_id", preferenceID).Error
}

// Compile-time check
var _ domain.Repository = (*StoreGormRepository)(nil)
