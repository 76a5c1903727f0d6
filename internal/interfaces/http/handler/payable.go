package handler

import (
	"io"
	"mime"
	"net/http"

	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	reportapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// AttachmentFormField is the multipart field carrying an uploaded file
const AttachmentFormField = "file"

// PayableHandler handles payable API endpoints
type PayableHandler struct {
	BaseHandler
	payables  *financeapp.PayableService
	reports   *reportapp.Service
	documents *reportapp.DocumentService
	maxUpload int64
}

// NewPayableHandler creates a new PayableHandler. maxUpload caps the size of
// an attachment read from a request; zero falls back to the service limit.
func NewPayableHandler(payables *financeapp.PayableService, reports *reportapp.Service, documents *reportapp.DocumentService, maxUpload int64) *PayableHandler {
	if maxUpload <= 0 || maxUpload > financeapp.MaxAttachmentSize {
		maxUpload = financeapp.MaxAttachmentSize
	}
	return &PayableHandler{
		payables:  payables,
		reports:   reports,
		documents: documents,
		maxUpload: maxUpload,
	}
}

// List handles GET /finance/payables
//
// Query: contract_id, statuses, categories, types, from, to, page, page_size
func (h *PayableHandler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	page, err := pageQuery(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	contractID, err := queryUUID(c, "contract_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	r, err := dateRange(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items, total, err := h.payables.List(c.Request.Context(), session, financeapp.PayableListFilter{
		ContractID: contractID,
		Statuses:   queryList(c, "statuses"),
		Categories: queryList(c, "categories"),
		Types:      queryList(c, "types"),
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

// Get handles GET /finance/payables/:id
func (h *PayableHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.payables.Get(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create handles POST /finance/payables
func (h *PayableHandler) Create(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req financeapp.CreatePayableRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.payables.Create(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update handles PUT /finance/payables/:id
func (h *PayableHandler) Update(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdatePayableRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.payables.Update(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete handles DELETE /finance/payables/:id
func (h *PayableHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.payables.Delete(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Pay handles POST /finance/payables/:id/pay
func (h *PayableHandler) Pay(c *gin.Context) {
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

	p, err := h.payables.MarkPaid(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Cancel handles POST /finance/payables/:id/cancel. The body is optional.
func (h *PayableHandler) Cancel(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.CancelRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	p, err := h.payables.Cancel(c.Request.Context(), session, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// AddAttachment handles POST /finance/payables/:id/attachments (multipart)
func (h *PayableHandler) AddAttachment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile(AttachmentFormField)
	if err != nil {
		h.BadRequest(c, "Choose a file to attach")
		return
	}
	if header.Size > h.maxUpload {
		h.HandleError(c, shared.NewDomainError("INVALID_ATTACHMENT", "Files must be 10 MB or smaller"))
		return
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "The uploaded file could not be read")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		h.BadRequest(c, "The uploaded file could not be read")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	p, err := h.payables.AddAttachment(c.Request.Context(), session, id, financeapp.AttachmentUpload{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// DownloadAttachment handles GET /finance/payables/:id/attachments/:attachment_id
// by answering with a short-lived download link
func (h *PayableHandler) DownloadAttachment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.payables.AttachmentURL(c.Request.Context(), session, id, c.Param("attachment_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url})
}

// RemoveAttachment handles DELETE /finance/payables/:id/attachments/:attachment_id
func (h *PayableHandler) RemoveAttachment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.payables.RemoveAttachment(c.Request.Context(), session, id, c.Param("attachment_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Receipt handles GET /finance/payables/:id/receipt
func (h *PayableHandler) Receipt(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	file, err := h.documents.Receipt(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	attachment(c, file.Filename)
	c.Data(http.StatusOK, "application/pdf", file.Data)
}

// Stats handles GET /finance/payables/stats. It takes the report filters.
func (h *PayableHandler) Stats(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	filter, err := reportFilter(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	stats, err := h.reports.PayableStats(c.Request.Context(), session, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// attachment marks the response as a file download
func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
