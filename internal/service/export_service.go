package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"saralgst/internal/domain"
	"saralgst/internal/port"
	"saralgst/internal/xlsxexport"
)

// exportPageSize bounds each repository read while exporting a register.
const exportPageSize = 500

// ExportService writes GST registers as downloadable workbooks.
type ExportService interface {
	ExportRegister(ctx context.Context, w io.Writer, category domain.InvoiceCategory, filter domain.InvoiceFilter) error
}

type exportService struct {
	invoiceRepo port.InvoiceRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(invoiceRepo port.InvoiceRepository) ExportService {
	return &exportService{invoiceRepo: invoiceRepo}
}

// ExportRegister streams the full register for a category, paging through the
// repository so a large register never loads in one query.
func (s *exportService) ExportRegister(ctx context.Context, w io.Writer, category domain.InvoiceCategory, filter domain.InvoiceFilter) error {
	if !category.Valid() {
		return domain.ErrInvalidCategory
	}

	filter.Category = category
	filter.Limit = exportPageSize
	filter.Offset = 0

	var all []domain.InvoiceRecord
	for {
		page, total, err := s.invoiceRepo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("exportService.ExportRegister list: %w", err)
		}
		all = append(all, page...)
		filter.Offset += len(page)
		if len(page) == 0 || filter.Offset >= total {
			break
		}
	}

	log.Printf("exportService.ExportRegister: exporting %d %s invoice(s)", len(all), category)
	return xlsxexport.WriteRegister(w, category, all)
}
