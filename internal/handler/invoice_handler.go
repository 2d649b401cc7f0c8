package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"saralgst/internal/domain"
	"saralgst/internal/service"
)

// InvoiceHandler handles invoice upload, retrieval and review endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// contentTypeFor resolves the effective content type of an uploaded part,
// falling back to the filename extension when the part header is generic.
func contentTypeFor(headerType, filename string) string {
	if _, ok := domain.AllowedContentTypes[headerType]; ok {
		return headerType
	}
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return headerType
	}
	if ft, ok := domain.AllowedExtensions[strings.ToLower(filename[idx+1:])]; ok {
		return domain.AllowedFileTypes[ft]
	}
	return headerType
}

// Process handles POST /api/v1/invoices
//
// Accepts a multipart form with the invoice document, its category and an
// optional source, runs the full extraction pipeline and returns the record
// with any issues the run raised.
func (h *InvoiceHandler) Process(c *gin.Context) {
	category := domain.InvoiceCategory(c.PostForm("category"))
	if !category.Valid() {
		HandleError(c, domain.ErrInvalidCategory)
		return
	}

	source := domain.InvoiceSource(c.DefaultPostForm("source", string(domain.SourceManual)))
	if !source.Valid() {
		HandleError(c, domain.ErrInvalidSource)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > domain.MaxFileSizeBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	contentType := contentTypeFor(header.Header.Get("Content-Type"), header.Filename)
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, domain.MaxFileSizeBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	if len(fileBytes) > domain.MaxFileSizeBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	result, err := h.invoiceService.Process(c.Request.Context(), &service.ProcessInvoiceInput{
		Category:    category,
		Source:      source,
		ContentType: contentType,
		FileBytes:   fileBytes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.Invoice.Status == domain.InvoiceStatusError {
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Data:    result,
			Error:   &APIError{Code: "EXTRACTION_FAILED", Message: "invoice document could not be extracted"},
		})
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	result, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GetDocumentURL handles GET /api/v1/invoices/:id/document
func (h *InvoiceHandler) GetDocumentURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	url, err := h.invoiceService.GetDocumentURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := domain.InvoiceFilter{
		Category: domain.InvoiceCategory(c.Query("category")),
		Status:   domain.InvoiceStatus(c.Query("status")),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Offset:   offset,
		Limit:    limit,
	}
	if filter.Category != "" && !filter.Category.Valid() {
		HandleError(c, domain.ErrInvalidCategory)
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// updateInvoiceRequest is the JSON body of a reviewer field edit.
type updateInvoiceRequest struct {
	SupplierName    *string  `json:"supplier_name"`
	SupplierGSTIN   *string  `json:"supplier_gstin"`
	BuyerGSTIN      *string  `json:"buyer_gstin"`
	CustomerName    *string  `json:"customer_name"`
	CustomerGSTIN   *string  `json:"customer_gstin"`
	InvoiceNumber   *string  `json:"invoice_number"`
	InvoiceDate     *string  `json:"invoice_date"`
	InvoiceType     *string  `json:"invoice_type"`
	HSNOrSACCode    *string  `json:"hsn_or_sac_code"`
	Description     *string  `json:"description_of_goods_services"`
	Quantity        *float64 `json:"quantity"`
	UnitOfMeasure   *string  `json:"unit_of_measure"`
	RatePerUnit     *float64 `json:"rate_per_unit"`
	TaxableValue    *float64 `json:"taxable_value"`
	CGSTAmount      *float64 `json:"cgst_amount"`
	SGSTAmount      *float64 `json:"sgst_amount"`
	IGSTAmount      *float64 `json:"igst_amount"`
	CessAmount      *float64 `json:"cess_amount"`
	IRN             *string  `json:"irn"`
	IsReverseCharge *bool    `json:"is_reverse_charge"`
	IsITCEligible   *bool    `json:"is_itc_eligible"`
}

// Update handles PATCH /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	result, err := h.invoiceService.UpdateFields(c.Request.Context(), id, &service.UpdateInvoiceInput{
		SupplierName:    req.SupplierName,
		SupplierGSTIN:   req.SupplierGSTIN,
		BuyerGSTIN:      req.BuyerGSTIN,
		CustomerName:    req.CustomerName,
		CustomerGSTIN:   req.CustomerGSTIN,
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceDate:     req.InvoiceDate,
		InvoiceType:     req.InvoiceType,
		HSNOrSACCode:    req.HSNOrSACCode,
		Description:     req.Description,
		Quantity:        req.Quantity,
		UnitOfMeasure:   req.UnitOfMeasure,
		RatePerUnit:     req.RatePerUnit,
		TaxableValue:    req.TaxableValue,
		CGSTAmount:      req.CGSTAmount,
		SGSTAmount:      req.SGSTAmount,
		IGSTAmount:      req.IGSTAmount,
		CessAmount:      req.CessAmount,
		IRN:             req.IRN,
		IsReverseCharge: req.IsReverseCharge,
		IsITCEligible:   req.IsITCEligible,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// updateStatusRequest is the JSON body of an out-of-band status change.
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles POST /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "status field is required")
		return
	}

	rec, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, domain.InvoiceStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}
