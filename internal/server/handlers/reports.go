package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/response"
	"github.com/mamadbah2/loombook/internal/service/reporting"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportTypes lists the available report names.
func (h *Handler) ReportTypes(c *gin.Context) {
	response.OK(c, reporting.Types)
}

// Report generates a report and serializes it as json, csv or xlsx.
func (h *Handler) Report(c *gin.Context) {
	format := c.DefaultQuery("format", formatJSON)
	if format != formatJSON && format != formatCSV && format != formatXLSX {
		response.FromError(c, models.Invalid("format", "must be json, csv or xlsx"))
		return
	}

	report, ok := h.generate(c)
	if !ok {
		return
	}

	switch format {
	case formatCSV:
		c.Header("Content-Disposition", attachment(report, formatCSV))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := reporting.WriteCSV(c.Writer, report); err != nil {
			h.logger.Error("failed writing csv report", zap.String("type", string(report.Type)), zap.Error(err))
		}
	case formatXLSX:
		c.Header("Content-Disposition", attachment(report, formatXLSX))
		c.Header("Content-Type", xlsxContentType)
		c.Status(http.StatusOK)
		if err := reporting.WriteXLSX(c.Writer, report); err != nil {
			h.logger.Error("failed writing xlsx report", zap.String("type", string(report.Type)), zap.Error(err))
		}
	default:
		response.OK(c, report)
	}
}

// ExportReport publishes a report to its Google Sheets tab.
func (h *Handler) ExportReport(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}

	sheetRange, err := h.reports.ExportToSheet(c.Request.Context(), report)
	switch {
	case errors.Is(err, reporting.ErrSheetsDisabled):
		response.Error(c, http.StatusServiceUnavailable, response.CodeExportDisabled, err)
		return
	case err != nil:
		h.logger.Error("failed exporting report", zap.String("type", string(report.Type)), zap.Error(err))
		response.Error(c, http.StatusBadGateway, response.CodeUpstream, errors.New("google sheets export failed"))
		return
	}

	response.OK(c, gin.H{"type": report.Type, "range": sheetRange, "rows": len(report.Rows)})
}

// generate resolves the report type, checks the caller may see it and folds the current snapshot.
func (h *Handler) generate(c *gin.Context) (reporting.Report, bool) {
	reportType, ok := reporting.ParseType(c.Param("type"))
	if !ok {
		response.FromError(c, fmt.Errorf("%w: %q", models.ErrUnknownReport, c.Param("type")))
		return reporting.Report{}, false
	}

	role := models.RoleFrom(c.Request.Context())
	allowed := role.CanViewProduction
	if reportType.Finance() {
		allowed = role.CanViewFinance
	}
	if !allowed() {
		response.FromError(c, fmt.Errorf("%w: %s report", models.ErrForbidden, reportType))
		return reporting.Report{}, false
	}

	req, err := reportRequest(c, reportType)
	if err != nil {
		response.FromError(c, err)
		return reporting.Report{}, false
	}

	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return reporting.Report{}, false
	}

	report, err := h.reports.Generate(snap, req)
	if err != nil {
		response.FromError(c, err)
		return reporting.Report{}, false
	}
	return report, true
}

func reportRequest(c *gin.Context, t reporting.Type) (reporting.Request, error) {
	filter, err := parseFilter(c)
	if err != nil {
		return reporting.Request{}, err
	}
	req := reporting.Request{Type: t, Filter: filter}
	if req.DeductLoans, err = optionalBool(c, "deduct_loans"); err != nil {
		return reporting.Request{}, err
	}
	if req.DeductRentals, err = optionalBool(c, "deduct_rentals"); err != nil {
		return reporting.Request{}, err
	}
	return req, nil
}

func attachment(r reporting.Report, ext string) string {
	name := string(r.Type)
	if rng := r.Filter.Range; rng.Bounded() {
		name = fmt.Sprintf("%s_%s_%s", name, rng.Start, rng.End)
	}
	return fmt.Sprintf("attachment; filename=%q", name+"."+ext)
}
