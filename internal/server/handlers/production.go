package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
	"github.com/mamadbah2/loombook/internal/service/reporting"
)

// productionLogView is a stored log with its read-time classification.
type productionLogView struct {
	models.ProductionLog
	WeaverName string           `json:"weaverName"`
	Quantity   int              `json:"totalQuantity"`
	Status     derive.LogStatus `json:"status"`
}

// ListProduction returns logs matching ?start&end&weaver_id&design_id&status.
func (h *Handler) ListProduction(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	logs := reporting.FilterLogs(snap, filter)
	out := make([]productionLogView, 0, len(logs))
	for _, log := range logs {
		out = append(out, productionLogView{
			ProductionLog: log,
			WeaverName:    snap.WeaverName(log.WeaverID),
			Quantity:      log.TotalQuantity(),
			Status:        derive.StatusIn(snap, log),
		})
	}
	response.OK(c, out)
}

func (h *Handler) CreateProduction(c *gin.Context) {
	var log models.ProductionLog
	if !bindBody(c, &log) {
		return
	}
	created, err := h.ledger.CreateProductionLog(c.Request.Context(), log)
	response.Saved(c, http.StatusCreated, created, err)
}

func (h *Handler) UpdateProduction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var log models.ProductionLog
	if !bindBody(c, &log) {
		return
	}
	log.ID = id
	updated, err := h.ledger.UpdateProductionLog(c.Request.Context(), log)
	response.Saved(c, http.StatusOK, updated, err)
}

func (h *Handler) DeleteProduction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.ledger.DeleteProductionLog(c.Request.Context(), id)
	response.Saved(c, http.StatusNoContent, nil, err)
}
