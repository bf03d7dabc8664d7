package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/server/response"
)

// Dashboard returns the headline counters, trend and recent yarn usage.
func (h *Handler) Dashboard(c *gin.Context) {
	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, derive.Dashboard(snap, h.ledger.Today()))
}

// Alerts returns the overdue, due-soon and informational alerts for today.
func (h *Handler) Alerts(c *gin.Context) {
	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, derive.Alerts(snap, h.ledger.Today()))
}
