package handler

import (
	"net/http"
	"strings"

	reportapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ExportErrorsHeader names the sections left out of a partial export
const ExportErrorsHeader = "X-Export-Errors"

// ExportObserver records export outcomes
type ExportObserver interface {
	ObserveExport(format string, failedSections int, err error)
}

// ReportHandler handles report, dashboard, export and statement endpoints
type ReportHandler struct {
	BaseHandler
	reports   *reportapp.Service
	exports   *reportapp.ExportService
	documents *reportapp.DocumentService
	observer  ExportObserver
}

// NewReportHandler creates a new ReportHandler. observer may be nil.
func NewReportHandler(reports *reportapp.Service, exports *reportapp.ExportService, documents *reportapp.DocumentService, observer ExportObserver) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		exports:   exports,
		documents: documents,
		observer:  observer,
	}
}

// Summary handles GET /reports/summary
//
// Query: from, to, kinds, categories, statuses, types, min_amount, max_amount
func (h *ReportHandler) Summary(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	filter, err := reportFilter(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), session, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Dashboard handles GET /reports/dashboard. Load failures are rendered as an
// error view with status 200.
//
// Query: state=loading returns the skeleton without loading anything, plus
// the summary filters
func (h *ReportHandler) Dashboard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if c.Query("state") == reportapp.ViewLoading {
		h.Success(c, h.reports.DashboardSkeleton())
		return
	}
	filter, err := reportFilter(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, h.reports.Dashboard(c.Request.Context(), session, filter))
}

// Export handles GET /reports/export?format=csv|excel|pdf, taking the same
// filters as Summary
func (h *ReportHandler) Export(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	filter, err := reportFilter(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	format := reportapp.Format(c.DefaultQuery("format", string(reportapp.FormatCSV)))

	result, err := h.exports.Export(c.Request.Context(), session, filter, format)
	if h.observer != nil {
		failed := 0
		if result != nil {
			failed = len(result.Errors)
		}
		h.observer.ObserveExport(strings.ToLower(string(format)), failed, err)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if len(result.Errors) > 0 {
		sections := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			sections = append(sections, e.Section)
		}
		c.Header(ExportErrorsHeader, strings.Join(sections, ","))
	}
	attachment(c, result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// OwnerStatement handles GET /reports/owners/:owner_id/statement
//
// Query: from, to
func (h *ReportHandler) OwnerStatement(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	ownerID, ok := h.pathID(c, "owner_id")
	if !ok {
		return
	}
	r, err := dateRange(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	st, err := h.documents.OwnerStatement(c.Request.Context(), session, ownerID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	attachment(c, st.Filename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(st.Text))
}
