// Package assemble turns a validated candidate invoice into a persistable
// register record: derived state codes, recomputed totals, ITC claims and
// the resulting status.
package assemble

import (
	"saralgst/internal/domain"
	"saralgst/internal/gst"
	"saralgst/internal/validate"
)

// Apply copies candidate fields onto the record and refreshes every derived
// field. Extracted values win over whatever the record held before.
func Apply(rec *domain.InvoiceRecord, c *domain.CandidateInvoice) {
	rec.SupplierName = c.SupplierName
	rec.SupplierGSTIN = c.SupplierGSTIN
	rec.BuyerGSTIN = c.BuyerGSTIN
	rec.CustomerName = c.CustomerName
	rec.CustomerGSTIN = c.CustomerGSTIN
	rec.InvoiceNumber = c.InvoiceNumber
	rec.InvoiceDate = c.InvoiceDate
	rec.InvoiceType = domain.InvoiceType(c.InvoiceType)
	rec.HSNOrSACCode = c.HSNOrSACCode
	rec.Description = c.Description
	rec.Quantity = c.Quantity
	rec.UnitOfMeasure = c.UnitOfMeasure
	rec.RatePerUnit = c.RatePerUnit
	rec.TaxableValue = c.TaxableValue
	rec.CGSTAmount = c.CGSTAmount
	rec.SGSTAmount = c.SGSTAmount
	rec.IGSTAmount = c.IGSTAmount
	rec.CessAmount = c.CessAmount
	rec.IRN = c.IRN
	rec.IsReverseCharge = c.IsReverseCharge
	rec.IsITCEligible = c.ITCEligible()

	Refresh(rec)
}

// Refresh recomputes every derived field from the record's own values. It is
// idempotent, so re-running it after a reviewer edit is safe.
func Refresh(rec *domain.InvoiceRecord) {
	rec.SupplierStateCode = gst.StateCodeFromGSTIN(rec.SupplierGSTIN)
	rec.CustomerStateCode = gst.StateCodeFromGSTIN(rec.CustomerGSTIN)

	recipientState := rec.CustomerStateCode
	if rec.Category == domain.CategoryPurchase {
		// On purchases the tenant is the buyer and the place of supply
		// follows the buyer's registration.
		rec.PlaceOfSupplyStateCode = gst.StateCodeFromGSTIN(rec.BuyerGSTIN)
		recipientState = rec.PlaceOfSupplyStateCode
	}
	rec.SupplyType = gst.SupplyTypeFor(rec.SupplierStateCode, recipientState)

	// The extracted grand total is never trusted; the components are.
	rec.TotalInvoiceValue = rec.TaxableValue + rec.CGSTAmount + rec.SGSTAmount + rec.IGSTAmount + rec.CessAmount

	mirrorITC(rec)
}

// mirrorITC claims input tax credit in full for eligible purchase invoices
// and zeroes the claims otherwise. Partial claims are not modeled.
func mirrorITC(rec *domain.InvoiceRecord) {
	if rec.Category == domain.CategoryPurchase && rec.IsITCEligible {
		rec.ITCClaimedCGST = rec.CGSTAmount
		rec.ITCClaimedSGST = rec.SGSTAmount
		rec.ITCClaimedIGST = rec.IGSTAmount
		rec.ITCClaimedCess = rec.CessAmount
		return
	}
	rec.ITCClaimedCGST = 0
	rec.ITCClaimedSGST = 0
	rec.ITCClaimedIGST = 0
	rec.ITCClaimedCess = 0
}

// CandidateOf projects a record back into candidate form so stored values can
// be re-validated after a reviewer edit. Confidence is carried over as the
// stored overall score for every tracked field.
func CandidateOf(rec *domain.InvoiceRecord) *domain.CandidateInvoice {
	eligible := rec.IsITCEligible
	return &domain.CandidateInvoice{
		SupplierName:      rec.SupplierName,
		SupplierGSTIN:     rec.SupplierGSTIN,
		BuyerGSTIN:        rec.BuyerGSTIN,
		CustomerName:      rec.CustomerName,
		CustomerGSTIN:     rec.CustomerGSTIN,
		InvoiceNumber:     rec.InvoiceNumber,
		InvoiceDate:       rec.InvoiceDate,
		InvoiceType:       string(rec.InvoiceType),
		HSNOrSACCode:      rec.HSNOrSACCode,
		Description:       rec.Description,
		Quantity:          rec.Quantity,
		UnitOfMeasure:     rec.UnitOfMeasure,
		RatePerUnit:       rec.RatePerUnit,
		TaxableValue:      rec.TaxableValue,
		CGSTAmount:        rec.CGSTAmount,
		SGSTAmount:        rec.SGSTAmount,
		IGSTAmount:        rec.IGSTAmount,
		CessAmount:        rec.CessAmount,
		TotalInvoiceValue: rec.TotalInvoiceValue,
		IRN:               rec.IRN,
		IsReverseCharge:   rec.IsReverseCharge,
		IsITCEligible:     &eligible,
		Confidence: domain.FieldConfidence{
			SupplierGSTIN: rec.ConfidenceScore,
			CustomerGSTIN: rec.ConfidenceScore,
			InvoiceNumber: rec.ConfidenceScore,
			TaxValues:     rec.ConfidenceScore,
		},
	}
}

// StatusFor maps a validation result onto the record status: any blocking
// finding routes the invoice to review.
func StatusFor(result *validate.Result) domain.InvoiceStatus {
	if result.IsValid() {
		return domain.InvoiceStatusExtracted
	}
	return domain.InvoiceStatusNeedsReview
}
