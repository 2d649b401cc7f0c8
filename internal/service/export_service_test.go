package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"saralgst/internal/domain"
	"saralgst/internal/service"
	"saralgst/mocks"
)

func TestExportService_ExportRegister(t *testing.T) {
	t.Run("filters by category", func(t *testing.T) {
		invoiceRepo := new(mocks.MockInvoiceRepo)
		svc := service.NewExportService(invoiceRepo)

		invoiceRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.InvoiceFilter) bool {
			return f.Category == domain.CategorySales && f.Limit > 0
		})).Return([]domain.InvoiceRecord{
			{ID: uuid.New(), Category: domain.CategorySales, InvoiceNumber: "S-001"},
		}, 1, nil).Once()

		var buf bytes.Buffer
		err := svc.ExportRegister(context.Background(), &buf, domain.CategorySales, domain.InvoiceFilter{})

		require.NoError(t, err)
		assert.NotZero(t, buf.Len())
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("invalid category", func(t *testing.T) {
		invoiceRepo := new(mocks.MockInvoiceRepo)
		svc := service.NewExportService(invoiceRepo)

		var buf bytes.Buffer
		err := svc.ExportRegister(context.Background(), &buf, domain.InvoiceCategory("expense"), domain.InvoiceFilter{})

		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
		invoiceRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
