package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
	ucStore "github.com/barberhub/booking-api/internal/usecase/store"
)

type OrderHandler struct {
	db       *gorm.DB
	checkout *ucStore.Checkout
}

func NewOrderHandler(db *gorm.DB, checkout *ucStore.Checkout) *OrderHandler {
	return &OrderHandler{db: db, checkout: checkout}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckoutItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items   []CheckoutItemRequest `json:"items" binding:"required,min=1"`
	Address string                `json:"address" binding:"required"`
	Notes   string                `json:"notes"`
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucStore.CheckoutInput{
		Address: req.Address,
		Notes:   req.Notes,
	}
	for _, it := range req.Items {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			httperr.BadRequest(c, "invalid_product_id", "Produto inválido.")
			return
		}
		in.Items = append(in.Items, ucStore.CheckoutItem{
			ProductID: id,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.checkout.Execute(c.Request.Context(), userID, in)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível criar o pedido.")
			return
		}
		httperr.Internal(c, "failed_to_create_order", "Erro ao criar pedido.")
		return
	}

	httpresp.Created(c, order)
}

// ======================================================
// LIST (customer)
// ======================================================

func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var orders []models.Order
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Erro ao listar pedidos.")
		return
	}

	httpresp.List(c, orders)
}
