package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InvoiceRecord is a single row in the purchase or sales register.
// Purchase rows use BuyerGSTIN/PlaceOfSupplyStateCode and the ITC claim
// columns; sales rows use the customer columns. The supplier is always the
// party that issued the invoice, so for sales it is the tenant itself.
type InvoiceRecord struct {
	ID                     uuid.UUID       `db:"id" json:"id"`
	Category               InvoiceCategory `db:"category" json:"category"`
	Source                 InvoiceSource   `db:"source" json:"source"`
	SupplierName           string          `db:"supplier_name" json:"supplier_name"`
	SupplierGSTIN          string          `db:"supplier_gstin" json:"supplier_gstin"`
	SupplierStateCode      string          `db:"supplier_state_code" json:"supplier_state_code"`
	BuyerGSTIN             string          `db:"buyer_gstin" json:"buyer_gstin"`
	PlaceOfSupplyStateCode string          `db:"place_of_supply_state_code" json:"place_of_supply_state_code"`
	CustomerName           string          `db:"customer_name" json:"customer_name"`
	CustomerGSTIN          string          `db:"customer_gstin" json:"customer_gstin"`
	CustomerStateCode      string          `db:"customer_state_code" json:"customer_state_code"`
	InvoiceNumber          string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate            string          `db:"invoice_date" json:"invoice_date"`
	InvoiceType            InvoiceType     `db:"invoice_type" json:"invoice_type"`
	SupplyType             SupplyType      `db:"supply_type" json:"supply_type"`
	HSNOrSACCode           string          `db:"hsn_or_sac_code" json:"hsn_or_sac_code"`
	Description            string          `db:"description_of_goods_services" json:"description_of_goods_services"`
	Quantity               float64         `db:"quantity" json:"quantity"`
	UnitOfMeasure          string          `db:"unit_of_measure" json:"unit_of_measure"`
	RatePerUnit            float64         `db:"rate_per_unit" json:"rate_per_unit"`
	TaxableValue           float64         `db:"taxable_value" json:"taxable_value"`
	CGSTAmount             float64         `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount             float64         `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount             float64         `db:"igst_amount" json:"igst_amount"`
	CessAmount             float64         `db:"cess_amount" json:"cess_amount"`
	TotalInvoiceValue      float64         `db:"total_invoice_value" json:"total_invoice_value"`
	IRN                    string          `db:"irn" json:"irn"`
	IsReverseCharge        bool            `db:"is_reverse_charge" json:"is_reverse_charge"`
	IsITCEligible          bool            `db:"is_itc_eligible" json:"is_itc_eligible"`
	ITCClaimedCGST         float64         `db:"itc_claimed_cgst" json:"itc_claimed_cgst"`
	ITCClaimedSGST         float64         `db:"itc_claimed_sgst" json:"itc_claimed_sgst"`
	ITCClaimedIGST         float64         `db:"itc_claimed_igst" json:"itc_claimed_igst"`
	ITCClaimedCess         float64         `db:"itc_claimed_cess" json:"itc_claimed_cess"`
	InvoiceBucketURL       string          `db:"invoice_bucket_url" json:"invoice_bucket_url"`
	RawExtraction          json.RawMessage `db:"raw_extraction" json:"raw_extraction,omitempty"`
	ConfidenceScore        float64         `db:"confidence_score" json:"confidence_score"`
	Status                 InvoiceStatus   `db:"invoice_status" json:"invoice_status"`
	CreatedAt              time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceIssue represents one finding attached to an invoice field, raised by
// the pipeline for a reviewer to act on.
type InvoiceIssue struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	InvoiceID       uuid.UUID   `db:"invoice_id" json:"invoice_id"`
	FieldName       string      `db:"field_name" json:"field_name"`
	IssueType       IssueType   `db:"issue_type" json:"issue_type"`
	Message         string      `db:"message" json:"message"`
	DetectedValue   *string     `db:"detected_value" json:"detected_value"`
	ExpectedValue   *string     `db:"expected_value" json:"expected_value"`
	ConfidenceScore *float64    `db:"confidence_score" json:"confidence_score"`
	Status          IssueStatus `db:"status" json:"status"`
	Comment         string      `db:"comment" json:"comment"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// InvoiceFilter narrows invoice listing queries.
type InvoiceFilter struct {
	Category InvoiceCategory
	Status   InvoiceStatus
	DateFrom string
	DateTo   string
	Offset   int
	Limit    int
}
