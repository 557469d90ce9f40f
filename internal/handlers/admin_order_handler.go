package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/domain/store"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
)

type AdminOrderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminOrderHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminOrderHandler {
	return &AdminOrderHandler{db: db, audit: audit}
}

func (h *AdminOrderHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Items.Product").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Erro ao listar pedidos.")
		return
	}
	httpresp.List(c, orders)
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order one step forward or cancels it before
// shipment. Skipping states is rejected.
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_order_id", "Pedido inválido.")
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "order_not_found", "Pedido não encontrado.")
		return
	}

	current := store.Status(order.Status)
	target := store.Status(req.Status)

	var guardErr error
	if target == store.StatusCancelled {
		guardErr = store.CanCancel(current)
	} else {
		guardErr = store.CanAdvance(current, target)
	}
	if guardErr != nil {
		httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
		return
	}

	if err := h.db.Model(&order).Update("status", string(target)).Error; err != nil {
		httperr.Internal(c, "failed_to_update_order", "Erro ao atualizar pedido.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "order_status_updated",
		Entity:   "order",
		EntityID: &order.ID,
		Metadata: map[string]string{"from": string(current), "to": string(target)},
	})

	order.Status = string(target)
	httpresp.OK(c, order)
}
