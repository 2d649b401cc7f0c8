package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"saralgst/internal/domain"
	"saralgst/internal/xlsxexport"
)

func TestWriteRegister(t *testing.T) {
	invoices := []domain.InvoiceRecord{
		{
			Category:          domain.CategoryPurchase,
			SupplierName:      "Acme Traders",
			SupplierGSTIN:     "27AAPFU0939F1ZV",
			SupplierStateCode: "27",
			BuyerGSTIN:        "27AABCT1332L1ZU",
			InvoiceNumber:     "INV-2025-042",
			InvoiceDate:       "2025-04-01",
			InvoiceType:       domain.InvoiceTypeB2B,
			SupplyType:        domain.SupplyIntraState,
			TaxableValue:      1000,
			CGSTAmount:        90,
			SGSTAmount:        90,
			TotalInvoiceValue: 1180,
			Status:            domain.InvoiceStatusExtracted,
			CreatedAt:         time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteRegister(&buf, domain.CategoryPurchase, invoices))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Purchase Register")

	header, err := f.GetCellValue("Purchase Register", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Number", header)

	invoiceNumber, err := f.GetCellValue("Purchase Register", "A2")
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-042", invoiceNumber)
}

func TestWriteRegister_EmptyRegister(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteRegister(&buf, domain.CategorySales, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Contains(t, f.GetSheetList(), "Sales Register")
}

func TestBuildFilename(t *testing.T) {
	name := xlsxexport.BuildFilename(domain.CategoryPurchase)
	assert.Contains(t, name, "purchase_register_")
	assert.Contains(t, name, ".xlsx")
}
