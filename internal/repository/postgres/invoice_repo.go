package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"saralgst/internal/domain"
	"saralgst/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.InvoiceRecord) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (
		id, category, source,
		supplier_name, supplier_gstin, supplier_state_code,
		buyer_gstin, place_of_supply_state_code,
		customer_name, customer_gstin, customer_state_code,
		invoice_number, invoice_date, invoice_type, supply_type,
		hsn_or_sac_code, description_of_goods_services,
		quantity, unit_of_measure, rate_per_unit,
		taxable_value, cgst_amount, sgst_amount, igst_amount, cess_amount,
		total_invoice_value, irn, is_reverse_charge, is_itc_eligible,
		itc_claimed_cgst, itc_claimed_sgst, itc_claimed_igst, itc_claimed_cess,
		invoice_bucket_url, raw_extraction, confidence_score, invoice_status,
		created_at, updated_at
	) VALUES (
		$1, $2, $3,
		$4, $5, $6,
		$7, $8,
		$9, $10, $11,
		$12, $13, $14, $15,
		$16, $17,
		$18, $19, $20,
		$21, $22, $23, $24, $25,
		$26, $27, $28, $29,
		$30, $31, $32, $33,
		$34, $35, $36, $37,
		$38, $39
	)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.Category, inv.Source,
		inv.SupplierName, inv.SupplierGSTIN, inv.SupplierStateCode,
		inv.BuyerGSTIN, inv.PlaceOfSupplyStateCode,
		inv.CustomerName, inv.CustomerGSTIN, inv.CustomerStateCode,
		inv.InvoiceNumber, inv.InvoiceDate, inv.InvoiceType, inv.SupplyType,
		inv.HSNOrSACCode, inv.Description,
		inv.Quantity, inv.UnitOfMeasure, inv.RatePerUnit,
		inv.TaxableValue, inv.CGSTAmount, inv.SGSTAmount, inv.IGSTAmount, inv.CessAmount,
		inv.TotalInvoiceValue, inv.IRN, inv.IsReverseCharge, inv.IsITCEligible,
		inv.ITCClaimedCGST, inv.ITCClaimedSGST, inv.ITCClaimedIGST, inv.ITCClaimedCess,
		inv.InvoiceBucketURL, inv.RawExtraction, inv.ConfidenceScore, inv.Status,
		inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceRecord, error) {
	var inv domain.InvoiceRecord
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRecord, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argn := 0

	addArg := func(clause string, val interface{}) {
		argn++
		where += fmt.Sprintf(" AND %s $%d", clause, argn)
		args = append(args, val)
	}

	if filter.Category != "" {
		addArg("category =", filter.Category)
	}
	if filter.Status != "" {
		addArg("invoice_status =", filter.Status)
	}
	if filter.DateFrom != "" {
		addArg("invoice_date >=", filter.DateFrom)
	}
	if filter.DateTo != "" {
		addArg("invoice_date <=", filter.DateTo)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var invs []domain.InvoiceRecord
	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, argn+1, argn+2)
	args = append(args, limit, filter.Offset)
	err = r.db.SelectContext(ctx, &invs, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invs, total, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.InvoiceRecord) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			supplier_name = $1, supplier_gstin = $2, supplier_state_code = $3,
			buyer_gstin = $4, place_of_supply_state_code = $5,
			customer_name = $6, customer_gstin = $7, customer_state_code = $8,
			invoice_number = $9, invoice_date = $10, invoice_type = $11, supply_type = $12,
			hsn_or_sac_code = $13, description_of_goods_services = $14,
			quantity = $15, unit_of_measure = $16, rate_per_unit = $17,
			taxable_value = $18, cgst_amount = $19, sgst_amount = $20,
			igst_amount = $21, cess_amount = $22, total_invoice_value = $23,
			irn = $24, is_reverse_charge = $25, is_itc_eligible = $26,
			itc_claimed_cgst = $27, itc_claimed_sgst = $28,
			itc_claimed_igst = $29, itc_claimed_cess = $30,
			invoice_bucket_url = $31, raw_extraction = $32,
			confidence_score = $33, invoice_status = $34, updated_at = $35
		 WHERE id = $36`,
		inv.SupplierName, inv.SupplierGSTIN, inv.SupplierStateCode,
		inv.BuyerGSTIN, inv.PlaceOfSupplyStateCode,
		inv.CustomerName, inv.CustomerGSTIN, inv.CustomerStateCode,
		inv.InvoiceNumber, inv.InvoiceDate, inv.InvoiceType, inv.SupplyType,
		inv.HSNOrSACCode, inv.Description,
		inv.Quantity, inv.UnitOfMeasure, inv.RatePerUnit,
		inv.TaxableValue, inv.CGSTAmount, inv.SGSTAmount,
		inv.IGSTAmount, inv.CessAmount, inv.TotalInvoiceValue,
		inv.IRN, inv.IsReverseCharge, inv.IsITCEligible,
		inv.ITCClaimedCGST, inv.ITCClaimedSGST,
		inv.ITCClaimedIGST, inv.ITCClaimedCess,
		inv.InvoiceBucketURL, inv.RawExtraction,
		inv.ConfidenceScore, inv.Status, inv.UpdatedAt,
		inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET invoice_status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
