package validate

import (
	"fmt"

	"saralgst/internal/domain"
	"saralgst/internal/gst"
)

// counterpartyState returns the state code of the recipient side of the
// transaction: the tenant's buyer GSTIN on purchases, the customer GSTIN on
// sales.
func counterpartyState(c *domain.CandidateInvoice, category domain.InvoiceCategory) string {
	if category == domain.CategorySales {
		return gst.StateCodeFromGSTIN(c.CustomerGSTIN)
	}
	return gst.StateCodeFromGSTIN(c.BuyerGSTIN)
}

// crossFieldRules enforce tax-type consistency between the supply type and
// the charged tax heads. When either party's state is unknown the rules skip
// rather than guess.
func crossFieldRules() []rule {
	return []rule{
		{
			key:  "xf.tax_type.intrastate",
			name: "Cross-field: Intra-state Tax Type",
			check: func(c *domain.CandidateInvoice, category domain.InvoiceCategory) []Finding {
				supplierState := gst.StateCodeFromGSTIN(c.SupplierGSTIN)
				recipientState := counterpartyState(c, category)
				if gst.SupplyTypeFor(supplierState, recipientState) != domain.SupplyIntraState {
					return nil
				}
				var findings []Finding
				if c.IGSTAmount > 0 {
					findings = append(findings, Finding{
						RuleKey:       "xf.tax_type.intrastate",
						Field:         "igst_amount",
						Severity:      SeverityError,
						Kind:          domain.IssueMismatch,
						Message:       "IGST should not be charged for intra-state supply",
						DetectedValue: fmt.Sprintf("%.2f", c.IGSTAmount),
						ExpectedValue: "0",
					})
				}
				if c.CGSTAmount == 0 && c.SGSTAmount == 0 {
					findings = append(findings, Finding{
						RuleKey:       "xf.tax_type.intrastate",
						Field:         "cgst_amount",
						Severity:      SeverityWarning,
						Kind:          domain.IssueMissing,
						Message:       "CGST and SGST expected for intra-state supply but both are zero",
						DetectedValue: "0",
						ExpectedValue: "> 0",
					})
				}
				return findings
			},
		},
		{
			key:  "xf.tax_type.interstate",
			name: "Cross-field: Inter-state Tax Type",
			check: func(c *domain.CandidateInvoice, category domain.InvoiceCategory) []Finding {
				supplierState := gst.StateCodeFromGSTIN(c.SupplierGSTIN)
				recipientState := counterpartyState(c, category)
				if gst.SupplyTypeFor(supplierState, recipientState) != domain.SupplyInterState {
					return nil
				}
				var findings []Finding
				if c.CGSTAmount > 0 || c.SGSTAmount > 0 {
					findings = append(findings, Finding{
						RuleKey:       "xf.tax_type.interstate",
						Field:         "cgst_amount",
						Severity:      SeverityError,
						Kind:          domain.IssueMismatch,
						Message:       "CGST/SGST should not be charged for inter-state supply",
						DetectedValue: fmt.Sprintf("CGST=%.2f, SGST=%.2f", c.CGSTAmount, c.SGSTAmount),
						ExpectedValue: "0",
					})
				}
				if c.IGSTAmount == 0 && domain.InvoiceType(c.InvoiceType) != domain.InvoiceTypeExport {
					findings = append(findings, Finding{
						RuleKey:       "xf.tax_type.interstate",
						Field:         "igst_amount",
						Severity:      SeverityWarning,
						Kind:          domain.IssueMissing,
						Message:       "IGST expected for inter-state supply but is zero",
						DetectedValue: "0",
						ExpectedValue: "> 0",
					})
				}
				return findings
			},
		},
		{
			key:  "xf.tax_type.export",
			name: "Cross-field: Export Tax",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if domain.InvoiceType(c.InvoiceType) != domain.InvoiceTypeExport {
					return nil
				}
				totalTax := c.CGSTAmount + c.SGSTAmount + c.IGSTAmount
				if totalTax == 0 {
					return nil
				}
				return []Finding{{
					RuleKey:       "xf.tax_type.export",
					Field:         "igst_amount",
					Severity:      SeverityInfo,
					Kind:          domain.IssueMismatch,
					Message:       "tax charged on an export invoice; confirm LUT/bond status",
					DetectedValue: fmt.Sprintf("%.2f", totalTax),
					ExpectedValue: "0 under LUT/bond",
				}}
			},
		},
	}
}
