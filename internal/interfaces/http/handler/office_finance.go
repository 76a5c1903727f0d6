package handler

import (
	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// OfficeFinanceHandler handles office income and expense endpoints
type OfficeFinanceHandler struct {
	BaseHandler
	finances *financeapp.OfficeFinanceService
}

// NewOfficeFinanceHandler creates a new OfficeFinanceHandler
func NewOfficeFinanceHandler(finances *financeapp.OfficeFinanceService) *OfficeFinanceHandler {
	return &OfficeFinanceHandler{finances: finances}
}

// List handles GET /finance/office-finances
//
// Query: types, categories, statuses, from, to, page, page_size
func (h *OfficeFinanceHandler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	page, err := pageQuery(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	r, err := dateRange(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items, total, err := h.finances.List(c.Request.Context(), session, financeapp.OfficeFinanceListFilter{
		Types:      queryList(c, "types"),
		Categories: queryList(c, "categories"),
		Statuses:   queryList(c, "statuses"),
		FromDate:   r.Start,
		ToDate:     r.End,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// Get handles GET /finance/office-finances/:id
func (h *OfficeFinanceHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	f, err := h.finances.Get(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// Create handles POST /finance/office-finances
func (h *OfficeFinanceHandler) Create(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req financeapp.OfficeFinanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	f, err := h.finances.Create(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, f)
}

// Update handles PUT /finance/office-finances/:id
func (h *OfficeFinanceHandler) Update(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.OfficeFinanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	f, err := h.finances.Update(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// Delete handles DELETE /finance/office-finances/:id
func (h *OfficeFinanceHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.finances.Delete(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Complete handles POST /finance/office-finances/:id/complete. The body is
// optional.
func (h *OfficeFinanceHandler) Complete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.CompleteRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	f, err := h.finances.Complete(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// Cancel handles POST /finance/office-finances/:id/cancel
func (h *OfficeFinanceHandler) Cancel(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	f, err := h.finances.Cancel(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}
