package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barberhub/booking-api/internal/roles"
)

// RequireRole gates a route group on a user_roles row. Role lookups
// that fail outright reject the request rather than defaulting the
// caller to "no role" and masking the outage as a 403.
func RequireRole(checker *roles.Checker, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uuid.UUID)

		ok, err := checker.HasRole(c.Request.Context(), userID, role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "role_check_failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
