package roles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/timezone"
)

// Flags is the two-phase role state: Resolved=false means "not yet
// checked", which callers must treat differently from "checked and
// false".
type Flags struct {
	Resolved bool `json:"resolved"`
	Admin    bool `json:"is_admin"`
	Barber   bool `json:"is_barber"`
}

type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

func (c *Checker) HasRole(
	ctx context.Context,
	userID uuid.UUID,
	role string,
) (bool, error) {

	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Resolve loads both staff flags at once. On error the flags stay
// unresolved rather than silently reading as "no roles".
func (c *Checker) Resolve(
	ctx context.Context,
	userID uuid.UUID,
) (Flags, error) {

	var rows []models.UserRole
	if err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return Flags{}, err
	}

	flags := Flags{Resolved: true}
	for _, r := range rows {
		switch r.Role {
		case models.RoleAdmin:
			flags.Admin = true
		case models.RoleBarber:
			flags.Barber = true
		}
	}
	return flags, nil
}

// IsActiveSubscriber reports whether the user holds an active
// subscription whose period has not lapsed.
func (c *Checker) IsActiveSubscriber(
	ctx context.Context,
	userID uuid.UUID,
) (bool, error) {

	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.UserSubscription{}).
		Where(
			"user_id = ? AND status = ? AND current_period_end > ?",
			userID, "active", timezone.Now(),
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
