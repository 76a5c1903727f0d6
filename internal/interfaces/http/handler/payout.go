package handler

import (
	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// PayoutHandler handles owner payout API endpoints
type PayoutHandler struct {
	BaseHandler
	payouts *financeapp.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(payouts *financeapp.PayoutService) *PayoutHandler {
	return &PayoutHandler{payouts: payouts}
}

// List handles GET /finance/payouts
//
// Query: owner_id, statuses, payout_types, from, to, page, page_size
func (h *PayoutHandler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	page, err := pageQuery(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	ownerID, err := queryUUID(c, "owner_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	r, err := dateRange(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items, total, err := h.payouts.List(c.Request.Context(), session, financeapp.PayoutListFilter{
		OwnerID:     ownerID,
		Statuses:    queryList(c, "statuses"),
		PayoutTypes: queryList(c, "payout_types"),
		FromDate:    r.Start,
		ToDate:      r.End,
		Page:        page.Page,
		PageSize:    page.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// Get handles GET /finance/payouts/:id
func (h *PayoutHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.payouts.Get(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create handles POST /finance/payouts
func (h *PayoutHandler) Create(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req financeapp.CreatePayoutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.payouts.Create(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update handles PUT /finance/payouts/:id
func (h *PayoutHandler) Update(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdatePayoutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.payouts.Update(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete handles DELETE /finance/payouts/:id
func (h *PayoutHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.payouts.Delete(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Pay handles POST /finance/payouts/:id/pay
func (h *PayoutHandler) Pay(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.MarkPaidRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.payouts.MarkPaid(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Cancel handles POST /finance/payouts/:id/cancel
func (h *PayoutHandler) Cancel(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.payouts.Cancel(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
