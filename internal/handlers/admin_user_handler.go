package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/httperr"
	"github.com/barberhub/booking-api/internal/httpresp"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
)

type AdminUserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminUserHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminUserHandler {
	return &AdminUserHandler{db: db, audit: audit}
}

type AdminUserDTO struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Roles    []string  `json:"roles"`
}

func (h *AdminUserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var users []models.User
	if err := h.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	var profiles []models.Profile
	if err := h.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}
	profileByUser := make(map[uuid.UUID]models.Profile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	var roles []models.UserRole
	if err := h.db.WithContext(ctx).Find(&roles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}
	rolesByUser := make(map[uuid.UUID][]string)
	for _, r := range roles {
		rolesByUser[r.UserID] = append(rolesByUser[r.UserID], r.Role)
	}

	out := make([]AdminUserDTO, 0, len(users))
	for _, u := range users {
		dto := AdminUserDTO{
			ID:    u.ID,
			Email: u.Email,
			Roles: rolesByUser[u.ID],
		}
		if p, ok := profileByUser[u.ID]; ok {
			dto.FullName = p.FullName
			dto.Phone = p.Phone
		}
		out = append(out, dto)
	}

	httpresp.List(c, out)
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleUser, models.RoleBarber:
		return true
	}
	return false
}

func (h *AdminUserHandler) GrantRole(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Usuário inválido.")
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "Papel inválido.")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	role := models.UserRole{UserID: userID, Role: req.Role}
	if err := h.db.Create(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "role_already_granted", "Usuário já possui este papel.")
			return
		}
		httperr.Internal(c, "failed_to_grant_role", "Erro ao conceder papel.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "role_granted",
		Entity:   "user_role",
		EntityID: &role.ID,
		Metadata: map[string]string{"user_id": userID.String(), "role": req.Role},
	})

	httpresp.Created(c, role)
}

func (h *AdminUserHandler) RevokeRole(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Usuário inválido.")
		return
	}

	role := c.Param("role")
	if !validRole(role) {
		httperr.BadRequest(c, "invalid_role", "Papel inválido.")
		return
	}

	// Admins cannot strip their own admin role; keeps at least one
	// working admin session.
	if userID == adminID && role == models.RoleAdmin {
		httperr.BadRequest(c, "cannot_revoke_own_admin", "Não é possível remover o próprio papel de admin.")
		return
	}

	res := h.db.Where("user_id = ? AND role = ?", userID, role).
		Delete(&models.UserRole{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_revoke_role", "Erro ao remover papel.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "role_not_found", "Usuário não possui este papel.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "role_revoked",
		Entity:   "user_role",
		Metadata: map[string]string{"user_id": userID.String(), "role": role},
	})

	httpresp.OK(c, gin.H{"revoked": role})
}
