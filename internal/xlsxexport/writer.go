// Package xlsxexport writes register worksheets for GST filing preparation.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"saralgst/internal/domain"
	"saralgst/internal/gst"
)

// columns defines the register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Invoice Type",
	"Supply Type",
	"Supplier Name",
	"Supplier GSTIN",
	"Supplier State",
	"Counterparty GSTIN",
	"Counterparty Name",
	"HSN/SAC",
	"Description",
	"Quantity",
	"Unit",
	"Rate",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Cess",
	"Total Invoice Value",
	"ITC CGST",
	"ITC SGST",
	"ITC IGST",
	"ITC Cess",
	"IRN",
	"Reverse Charge",
	"Status",
	"Created At",
}

// WriteRegister writes one worksheet of invoices to w. The sheet is named
// after the register category.
func WriteRegister(w io.Writer, category domain.InvoiceCategory, invoices []domain.InvoiceRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Purchase Register"
	if category == domain.CategorySales {
		sheet = "Sales Register"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsxexport: renaming sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsxexport: header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("xlsxexport: writing header: %w", err)
		}
	}

	for rowIdx := range invoices {
		inv := &invoices[rowIdx]
		row := invoiceToRow(inv)
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("xlsxexport: data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("xlsxexport: writing row %d: %w", rowIdx+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: writing workbook: %w", err)
	}
	return nil
}

func invoiceToRow(inv *domain.InvoiceRecord) []interface{} {
	counterpartyGSTIN := inv.BuyerGSTIN
	counterpartyName := ""
	if inv.Category == domain.CategorySales {
		counterpartyGSTIN = inv.CustomerGSTIN
		counterpartyName = inv.CustomerName
	}

	return []interface{}{
		inv.InvoiceNumber,
		inv.InvoiceDate,
		string(inv.InvoiceType),
		string(inv.SupplyType),
		inv.SupplierName,
		inv.SupplierGSTIN,
		gst.StateName(inv.SupplierStateCode),
		counterpartyGSTIN,
		counterpartyName,
		inv.HSNOrSACCode,
		inv.Description,
		inv.Quantity,
		inv.UnitOfMeasure,
		inv.RatePerUnit,
		inv.TaxableValue,
		inv.CGSTAmount,
		inv.SGSTAmount,
		inv.IGSTAmount,
		inv.CessAmount,
		inv.TotalInvoiceValue,
		inv.ITCClaimedCGST,
		inv.ITCClaimedSGST,
		inv.ITCClaimedIGST,
		inv.ITCClaimedCess,
		inv.IRN,
		inv.IsReverseCharge,
		string(inv.Status),
		inv.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// BuildFilename returns the download filename for a register export.
// Format: {category}_register_{YYYY-MM-DD}.xlsx
func BuildFilename(category domain.InvoiceCategory) string {
	return fmt.Sprintf("%s_register_%s.xlsx", category, time.Now().Format("2006-01-02"))
}
