package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
	"github.com/mamadbah2/loombook/internal/service/audit"
	"github.com/mamadbah2/loombook/internal/service/ledger"
	"github.com/mamadbah2/loombook/internal/service/reporting"
)

// Handler exposes the ledger, reports and history over HTTP.
type Handler struct {
	ledger  *ledger.Service
	history *audit.Logger
	reports *reporting.Service
	logger  *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(ledgerSvc *ledger.Service, history *audit.Logger, reports *reporting.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{ledger: ledgerSvc, history: history, reports: reports, logger: logger}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, models.Invalid("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidBody, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// parseFilter reads the shared report and production query parameters.
func parseFilter(c *gin.Context) (reporting.Filter, error) {
	var f reporting.Filter

	if raw := c.Query("start"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return f, models.Invalid("start", "expected YYYY-MM-DD")
		}
		f.Range.Start = d
	}
	if raw := c.Query("end"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return f, models.Invalid("end", "expected YYYY-MM-DD")
		}
		f.Range.End = d
	}

	var err error
	if f.WeaverID, err = optionalID(c, "weaver_id"); err != nil {
		return f, err
	}
	if f.DesignID, err = optionalID(c, "design_id"); err != nil {
		return f, err
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := derive.ParseLogStatus(raw)
		if !ok {
			return f, models.Invalid("status", "unknown status %q", raw)
		}
		f.Status = status
	}

	switch raw := models.LoanStatus(c.Query("loan_status")); raw {
	case "":
	case models.LoanPending, models.LoanPaid:
		f.LoanStatus = raw
	default:
		return f, models.Invalid("loan_status", "must be Pending or Paid")
	}

	return f, nil
}

func optionalID(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.Invalid(key, "must be a positive integer")
	}
	return id, nil
}

func optionalBool(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, models.Invalid(key, "must be true or false")
	}
	return v, nil
}
