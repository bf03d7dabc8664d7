package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

// APIError is the body of every failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error code values.
const (
	CodeInvalidInput     = "invalid_input"
	CodeInvalidBody      = "invalid_body"
	CodeDateRange        = "date_range_required"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal"
	CodeUpstream         = "upstream_failed"
	CodeExportDisabled   = "export_disabled"
	HistoryWarningHeader = "X-History-Warning"
)

func Error(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// FromError maps domain errors to HTTP statuses.
func FromError(c *gin.Context, err error) {
	var verr models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{Message: verr.Error(), Code: CodeInvalidInput, Field: verr.Field},
		})
	case errors.Is(err, models.ErrDateRangeRequired):
		Error(c, http.StatusBadRequest, CodeDateRange, err)
	case errors.Is(err, models.ErrInvalidInput):
		Error(c, http.StatusBadRequest, CodeInvalidInput, err)
	case errors.Is(err, models.ErrForbidden):
		Error(c, http.StatusForbidden, CodeForbidden, err)
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrWeaverNotFound),
		errors.Is(err, models.ErrLoanNotFound),
		errors.Is(err, models.ErrUnknownReport):
		Error(c, http.StatusNotFound, CodeNotFound, err)
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, CodeInternal, errors.New("internal server error"))
	}
}

// Saved answers a successful mutation. When the change was stored but its
// history entry was not, the payload is still returned with a warning header.
func Saved(c *gin.Context, status int, payload any, err error) {
	if err != nil && !errors.Is(err, models.ErrHistoryNotRecorded) {
		FromError(c, err)
		return
	}
	if err != nil {
		c.Header(HistoryWarningHeader, models.ErrHistoryNotRecorded.Error())
	}
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
