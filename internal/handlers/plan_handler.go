package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
)

type PlanHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPlanHandler(db *gorm.DB, audit *audit.Dispatcher) *PlanHandler {
	return &PlanHandler{db: db, audit: audit}
}

func (h *PlanHandler) ListActive(c *gin.Context) {
	var plans []models.SubscriptionPlan
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Erro ao listar planos.")
		return
	}
	httpresp.List(c, plans)
}

type SubscribeRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

// Subscribe opens a monthly subscription. Any previous active
// subscription for the user is cancelled in the same transaction.
func (h *PlanHandler) Subscribe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		httperr.BadRequest(c, "invalid_plan_id", "Plano inválido.")
		return
	}

	var plan models.SubscriptionPlan
	if err := h.db.First(&plan, "id = ? AND is_active = ?", planID, true).Error; err != nil {
		httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
		return
	}

	sub := models.UserSubscription{
		UserID:           userID,
		PlanID:           plan.ID,
		Status:           "active",
		CurrentPeriodEnd: time.Now().AddDate(0, 1, 0),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserSubscription{}).
			Where("user_id = ? AND status = ?", userID, "active").
			Update("status", "cancelled").Error; err != nil {
			return err
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_subscribe", "Erro ao assinar plano.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "subscription_created",
		Entity:   "user_subscription",
		EntityID: &sub.ID,
	})

	sub.Plan = plan
	httpresp.Created(c, sub)
}

func (h *PlanHandler) MySubscription(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var sub models.UserSubscription
	err := h.db.WithContext(c.Request.Context()).
		Preload("Plan").
		Where("user_id = ? AND status = ?", userID, "active").
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		httperr.NotFound(c, "subscription_not_found", "Nenhuma assinatura ativa.")
		return
	}
	httpresp.OK(c, sub)
}
