package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/images"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/storage"
)

type AdminBarberHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	storage *storage.S3Storage
}

func NewAdminBarberHandler(db *gorm.DB, audit *audit.Dispatcher, storage *storage.S3Storage) *AdminBarberHandler {
	return &AdminBarberHandler{db: db, audit: audit, storage: storage}
}

type BarberRequest struct {
	Name                string `json:"name" binding:"required"`
	Specialty           string `json:"specialty"`
	SlotIntervalMinutes int    `json:"slot_interval_minutes"`
	IsActive            *bool  `json:"is_active"`
	UserID              string `json:"user_id"`
}

// List includes inactive barbers; the public catalog filters them out.
func (h *AdminBarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *AdminBarberHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber := models.Barber{
		Name:                req.Name,
		Specialty:           req.Specialty,
		SlotIntervalMinutes: req.SlotIntervalMinutes,
		IsActive:            true,
	}
	if barber.SlotIntervalMinutes <= 0 {
		barber.SlotIntervalMinutes = 30
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "Usuário inválido.")
			return
		}
		barber.UserID = &id
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	httpresp.Created(c, barber)
}

func (h *AdminBarberHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber.Name = req.Name
	barber.Specialty = req.Specialty
	if req.SlotIntervalMinutes > 0 {
		barber.SlotIntervalMinutes = req.SlotIntervalMinutes
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "Usuário inválido.")
			return
		}
		barber.UserID = &uid
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	httpresp.OK(c, barber)
}

func (h *AdminBarberHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return
	}
	defer src.Close()

	encoded, err := images.ToWebP(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	key := fmt.Sprintf("barbers/%s.webp", id)
	url, err := h.storage.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.Model(&models.Barber{}).
		Where("id = ?", id).
		Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}
