package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
)

// RoleHeader carries the role picked at login. Missing means admin.
const RoleHeader = "X-User-Role"

// Role puts the caller's role on the request context.
func Role() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleAdmin
		if raw := c.GetHeader(RoleHeader); raw != "" {
			parsed, ok := models.ParseRole(raw)
			if !ok {
				response.Error(c, http.StatusBadRequest, response.CodeInvalidInput,
					fmt.Errorf("unknown role %q", raw))
				return
			}
			role = parsed
		}
		c.Request = c.Request.WithContext(models.WithRole(c.Request.Context(), role))
		c.Next()
	}
}

// Require rejects callers whose role fails the check with 403.
func Require(allowed func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleFrom(c.Request.Context())
		if !allowed(role) {
			response.FromError(c, fmt.Errorf("%w: %s", models.ErrForbidden, role))
			return
		}
		c.Next()
	}
}
