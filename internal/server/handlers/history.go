package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
	"github.com/mamadbah2/loombook/internal/service/audit"
)

// History lists audit entries filtered by ?module&action&user&q.
func (h *Handler) History(c *gin.Context) {
	filter := audit.HistoryFilter{
		Module: c.Query("module"),
		Action: models.AuditAction(c.Query("action")),
		Search: c.Query("q"),
	}
	if raw := c.Query("user"); raw != "" {
		role, ok := models.ParseRole(raw)
		if !ok {
			response.FromError(c, models.Invalid("user", "unknown role %q", raw))
			return
		}
		filter.User = role
	}

	history, err := h.history.History(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, history)
}
