package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
)

func (h *Handler) ListWeavers(c *gin.Context) {
	weavers, err := h.ledger.ListWeavers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, weavers)
}

func (h *Handler) CreateWeaver(c *gin.Context) {
	var w models.Weaver
	if !bindBody(c, &w) {
		return
	}
	created, err := h.ledger.CreateWeaver(c.Request.Context(), w)
	response.Saved(c, http.StatusCreated, created, err)
}

func (h *Handler) UpdateWeaver(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var w models.Weaver
	if !bindBody(c, &w) {
		return
	}
	w.ID = id
	updated, err := h.ledger.UpdateWeaver(c.Request.Context(), w)
	response.Saved(c, http.StatusOK, updated, err)
}

func (h *Handler) DeleteWeaver(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.ledger.DeleteWeaver(c.Request.Context(), id)
	response.Saved(c, http.StatusNoContent, nil, err)
}

type copyAllocationsRequest struct {
	FromWeaverID int64 `json:"fromWeaverId" binding:"required"`
	ToWeaverID   int64 `json:"toWeaverId" binding:"required"`
}

// CopyAllocations replaces the target weaver's design allocations with the source's.
func (h *Handler) CopyAllocations(c *gin.Context) {
	var req copyAllocationsRequest
	if !bindBody(c, &req) {
		return
	}
	updated, err := h.ledger.CopyAllocations(c.Request.Context(), req.FromWeaverID, req.ToWeaverID)
	response.Saved(c, http.StatusOK, updated, err)
}
