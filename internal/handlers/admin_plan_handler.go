package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
)

type AdminPlanHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminPlanHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminPlanHandler {
	return &AdminPlanHandler{db: db, audit: audit}
}

type PlanRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Benefits    string  `json:"benefits"`
	IsActive    *bool   `json:"is_active"`
}

func (h *AdminPlanHandler) List(c *gin.Context) {
	var plans []models.SubscriptionPlan
	if err := h.db.WithContext(c.Request.Context()).
		Order("price ASC").
		Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Erro ao listar planos.")
		return
	}
	httpresp.List(c, plans)
}

func (h *AdminPlanHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan := models.SubscriptionPlan{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Benefits:    req.Benefits,
		IsActive:    true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.db.Create(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_create_plan", "Erro ao criar plano.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "plan_created",
		Entity:   "subscription_plan",
		EntityID: &plan.ID,
	})

	httpresp.Created(c, plan)
}

func (h *AdminPlanHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_plan_id", "Plano inválido.")
		return
	}

	var plan models.SubscriptionPlan
	if err := h.db.First(&plan, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "plan_not_found", "Plano não encontrado.")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = req.Price
	plan.Benefits = req.Benefits
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.db.Save(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_update_plan", "Erro ao atualizar plano.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "plan_updated",
		Entity:   "subscription_plan",
		EntityID: &plan.ID,
	})

	httpresp.OK(c, plan)
}
