package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
)

func (h *Handler) ListDesigns(c *gin.Context) {
	designs, err := h.ledger.ListDesigns(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, designs)
}

func (h *Handler) CreateDesign(c *gin.Context) {
	var d models.Design
	if !bindBody(c, &d) {
		return
	}
	created, err := h.ledger.CreateDesign(c.Request.Context(), d)
	response.Saved(c, http.StatusCreated, created, err)
}

func (h *Handler) UpdateDesign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var d models.Design
	if !bindBody(c, &d) {
		return
	}
	d.ID = id
	updated, err := h.ledger.UpdateDesign(c.Request.Context(), d)
	response.Saved(c, http.StatusOK, updated, err)
}

func (h *Handler) DeleteDesign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.ledger.DeleteDesign(c.Request.Context(), id)
	response.Saved(c, http.StatusNoContent, nil, err)
}
