package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"saralgst/internal/domain"
	"saralgst/internal/service"
	"saralgst/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles register export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRegister handles GET /api/v1/exports/:category
//
// Streams the register for the category as an XLSX workbook. Optional
// date_from/date_to query params bound the invoice dates included.
func (h *ExportHandler) ExportRegister(c *gin.Context) {
	category := domain.InvoiceCategory(c.Param("category"))
	if !category.Valid() {
		HandleError(c, domain.ErrInvalidCategory)
		return
	}

	filter := domain.InvoiceFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", xlsxexport.BuildFilename(category)))
	c.Status(http.StatusOK)

	if err := h.exportService.ExportRegister(c.Request.Context(), c.Writer, category, filter); err != nil {
		// Headers are already written; the best we can do is log and abort.
		_ = c.Error(err)
	}
}
