package assemble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"saralgst/internal/assemble"
	"saralgst/internal/domain"
	"saralgst/internal/validate"
)

func purchaseCandidate() *domain.CandidateInvoice {
	return &domain.CandidateInvoice{
		SupplierName:      "Acme Traders",
		SupplierGSTIN:     "27AAPFU0939F1ZV",
		BuyerGSTIN:        "29AABCT1332L1ZU",
		InvoiceNumber:     "INV-2025-042",
		InvoiceDate:       "2025-04-01",
		InvoiceType:       "B2B",
		TaxableValue:      1000,
		IGSTAmount:        180,
		TotalInvoiceValue: 9999, // deliberately wrong; must be recomputed
	}
}

func TestApply_DerivesStateAndSupplyType(t *testing.T) {
	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase}
	assemble.Apply(rec, purchaseCandidate())

	assert.Equal(t, "27", rec.SupplierStateCode)
	assert.Equal(t, "29", rec.PlaceOfSupplyStateCode)
	assert.Equal(t, domain.SupplyInterState, rec.SupplyType)
}

func TestApply_RecomputesTotal(t *testing.T) {
	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase}
	assemble.Apply(rec, purchaseCandidate())

	// taxable + cgst + sgst + igst + cess, never the extracted grand total
	assert.InDelta(t, 1180, rec.TotalInvoiceValue, 0.001)
}

func TestApply_MirrorsITCForEligiblePurchase(t *testing.T) {
	c := purchaseCandidate()
	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase}
	assemble.Apply(rec, c)

	assert.True(t, rec.IsITCEligible)
	assert.InDelta(t, 180, rec.ITCClaimedIGST, 0.001)
	assert.Zero(t, rec.ITCClaimedCGST)
	assert.Zero(t, rec.ITCClaimedSGST)
}

func TestApply_ZeroesITCWhenIneligible(t *testing.T) {
	c := purchaseCandidate()
	ineligible := false
	c.IsITCEligible = &ineligible

	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase}
	assemble.Apply(rec, c)

	assert.False(t, rec.IsITCEligible)
	assert.Zero(t, rec.ITCClaimedIGST)
	assert.Zero(t, rec.ITCClaimedCGST)
}

func TestApply_NoITCOnSales(t *testing.T) {
	c := purchaseCandidate()
	c.BuyerGSTIN = ""
	c.CustomerGSTIN = "29AABCT1332L1ZU"
	c.CustomerName = "Bharat Metals"

	rec := &domain.InvoiceRecord{Category: domain.CategorySales}
	assemble.Apply(rec, c)

	assert.Equal(t, "29", rec.CustomerStateCode)
	assert.Equal(t, domain.SupplyInterState, rec.SupplyType)
	assert.Zero(t, rec.ITCClaimedIGST)
	assert.Zero(t, rec.ITCClaimedCGST)
}

func TestRefresh_Idempotent(t *testing.T) {
	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase}
	assemble.Apply(rec, purchaseCandidate())

	first := *rec
	assemble.Refresh(rec)
	assert.Equal(t, first, *rec)
}

func TestRefresh_AfterEdit(t *testing.T) {
	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase}
	assemble.Apply(rec, purchaseCandidate())

	// Reviewer moves the buyer into the supplier's state.
	rec.BuyerGSTIN = "27AABCT1332L1ZU"
	rec.IGSTAmount = 0
	rec.CGSTAmount = 90
	rec.SGSTAmount = 90
	assemble.Refresh(rec)

	assert.Equal(t, domain.SupplyIntraState, rec.SupplyType)
	assert.Equal(t, "27", rec.PlaceOfSupplyStateCode)
	assert.InDelta(t, 1180, rec.TotalInvoiceValue, 0.001)
	assert.InDelta(t, 90, rec.ITCClaimedCGST, 0.001)
	assert.Zero(t, rec.ITCClaimedIGST)
}

func TestCandidateOf_RoundTrip(t *testing.T) {
	rec := &domain.InvoiceRecord{Category: domain.CategoryPurchase, ConfidenceScore: 0.9}
	assemble.Apply(rec, purchaseCandidate())

	c := assemble.CandidateOf(rec)
	assert.Equal(t, rec.SupplierGSTIN, c.SupplierGSTIN)
	assert.Equal(t, rec.InvoiceNumber, c.InvoiceNumber)
	assert.InDelta(t, rec.TaxableValue, c.TaxableValue, 0.001)
	assert.True(t, c.ITCEligible())
	assert.InDelta(t, 0.9, c.Confidence.SupplierGSTIN, 0.001)
}

func TestStatusFor(t *testing.T) {
	clean := validate.Result{}
	assert.Equal(t, domain.InvoiceStatusExtracted, assemble.StatusFor(&clean))

	dirty := validate.Result{Errors: []validate.Finding{{Field: "supplier_gstin"}}}
	assert.Equal(t, domain.InvoiceStatusNeedsReview, assemble.StatusFor(&dirty))

	advisory := validate.Result{Warnings: []validate.Finding{{Field: "hsn_or_sac_code"}}}
	assert.Equal(t, domain.InvoiceStatusExtracted, assemble.StatusFor(&advisory))
}
