package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/images"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/roles"
	"github.com/barberhub/booking-api/internal/storage"
)

type MeHandler struct {
	db      *gorm.DB
	roles   *roles.Checker
	storage *storage.S3Storage
}

func NewMeHandler(db *gorm.DB, checker *roles.Checker, storage *storage.S3Storage) *MeHandler {
	return &MeHandler{db: db, roles: checker, storage: storage}
}

// GetMe returns the profile plus the role flags. Role resolution is
// two-phase: when the lookup fails the flags come back unresolved
// instead of pretending the user has no roles.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var profile models.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
		return
	}

	flags, err := h.roles.Resolve(c.Request.Context(), userID)
	if err != nil {
		flags = roles.Flags{}
	}

	subscriber := false
	if sub, err := h.roles.IsActiveSubscriber(c.Request.Context(), userID); err == nil {
		subscriber = sub
	}

	httpresp.OK(c, gin.H{
		"profile":              profile,
		"roles":                flags,
		"is_active_subscriber": subscriber,
	})
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var profile models.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
		return
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Erro ao atualizar perfil.")
		return
	}

	httpresp.OK(c, profile)
}

// UploadAvatar runs the upload through the image pipeline and stores
// the resulting webp in S3.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

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

	key := fmt.Sprintf("avatars/%s.webp", userID)
	url, err := h.storage.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Erro ao atualizar perfil.")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
