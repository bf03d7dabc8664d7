package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
)

// ListLoans returns every loan with its balance recomputed from repayments.
func (h *Handler) ListLoans(c *gin.Context) {
	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, derive.LoanBalances(snap))
}

func (h *Handler) CreateLoan(c *gin.Context) {
	var loan models.Loan
	if !bindBody(c, &loan) {
		return
	}
	created, err := h.ledger.CreateLoan(c.Request.Context(), loan)
	response.Saved(c, http.StatusCreated, created, err)
}

func (h *Handler) UpdateLoan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var loan models.Loan
	if !bindBody(c, &loan) {
		return
	}
	loan.ID = id
	updated, err := h.ledger.UpdateLoan(c.Request.Context(), loan)
	response.Saved(c, http.StatusOK, updated, err)
}

// DeleteLoan removes the loan and its repayments.
func (h *Handler) DeleteLoan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.ledger.DeleteLoan(c.Request.Context(), id)
	response.Saved(c, http.StatusNoContent, nil, err)
}

func (h *Handler) ListRepayments(c *gin.Context) {
	repayments, err := h.ledger.ListRepayments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, repayments)
}

func (h *Handler) CreateRepayment(c *gin.Context) {
	var r models.Repayment
	if !bindBody(c, &r) {
		return
	}
	created, err := h.ledger.CreateRepayment(c.Request.Context(), r)
	response.Saved(c, http.StatusCreated, created, err)
}

func (h *Handler) UpdateRepayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var r models.Repayment
	if !bindBody(c, &r) {
		return
	}
	r.ID = id
	updated, err := h.ledger.UpdateRepayment(c.Request.Context(), r)
	response.Saved(c, http.StatusOK, updated, err)
}

func (h *Handler) DeleteRepayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.ledger.DeleteRepayment(c.Request.Context(), id)
	response.Saved(c, http.StatusNoContent, nil, err)
}

func (h *Handler) ListRentalPayments(c *gin.Context) {
	payments, err := h.ledger.ListRentalPayments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, payments)
}

func (h *Handler) CreateRentalPayment(c *gin.Context) {
	var p models.RentalPayment
	if !bindBody(c, &p) {
		return
	}
	created, err := h.ledger.CreateRentalPayment(c.Request.Context(), p)
	response.Saved(c, http.StatusCreated, created, err)
}

func (h *Handler) UpdateRentalPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var p models.RentalPayment
	if !bindBody(c, &p) {
		return
	}
	p.ID = id
	updated, err := h.ledger.UpdateRentalPayment(c.Request.Context(), p)
	response.Saved(c, http.StatusOK, updated, err)
}

func (h *Handler) DeleteRentalPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.ledger.DeleteRentalPayment(c.Request.Context(), id)
	response.Saved(c, http.StatusNoContent, nil, err)
}
