package validate

import (
	"fmt"
	"math"

	"saralgst/internal/domain"
)

// Taxable value above which a B2B invoice is expected to carry an IRN.
const eInvoiceThreshold = 100000

// Standard GST rate slabs, as percentages of taxable value.
var standardRates = []float64{0, 0.25, 3, 5, 6, 9, 12, 14, 18, 28}

const rateTolerance = 0.5

// commercialRules are advisory checks on the commercial content of the
// invoice: recommended fields, tax arithmetic sanity, e-invoicing.
func commercialRules() []rule {
	return []rule{
		{
			key:  "com.hsn_or_sac",
			name: "Recommended: HSN/SAC Code",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.HSNOrSACCode != "" {
					return nil
				}
				return []Finding{{
					RuleKey:       "com.hsn_or_sac",
					Field:         "hsn_or_sac_code",
					Severity:      SeverityWarning,
					Kind:          domain.IssueMissing,
					Message:       "HSN/SAC code is missing",
					ExpectedValue: "HSN or SAC code",
				}}
			},
		},
		{
			key:  "com.description",
			name: "Recommended: Description",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.Description != "" {
					return nil
				}
				return []Finding{{
					RuleKey:  "com.description",
					Field:    "description_of_goods_services",
					Severity: SeverityInfo,
					Kind:     domain.IssueMissing,
					Message:  "description of goods or services is missing",
				}}
			},
		},
		{
			key:  "com.quantity",
			name: "Recommended: Quantity",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.Quantity > 0 {
					return nil
				}
				return []Finding{{
					RuleKey:       "com.quantity",
					Field:         "quantity",
					Severity:      SeverityInfo,
					Kind:          domain.IssueMissing,
					Message:       "quantity is missing or zero",
					DetectedValue: fmt.Sprintf("%.2f", c.Quantity),
				}}
			},
		},
		{
			key:  "com.unit",
			name: "Recommended: Unit of Measure",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.UnitOfMeasure != "" {
					return nil
				}
				return []Finding{{
					RuleKey:  "com.unit",
					Field:    "unit_of_measure",
					Severity: SeverityInfo,
					Kind:     domain.IssueMissing,
					Message:  "unit of measure is missing",
				}}
			},
		},
		{
			key:  "com.cgst_sgst_parity",
			name: "Commercial: CGST/SGST Parity",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.CGSTAmount == 0 && c.SGSTAmount == 0 {
					return nil
				}
				if math.Abs(c.CGSTAmount-c.SGSTAmount) <= 0.01 {
					return nil
				}
				return []Finding{{
					RuleKey:       "com.cgst_sgst_parity",
					Field:         "cgst_amount",
					Severity:      SeverityWarning,
					Kind:          domain.IssueMismatch,
					Message:       "CGST and SGST amounts differ; they are usually equal halves of the same rate",
					DetectedValue: fmt.Sprintf("CGST=%.2f, SGST=%.2f", c.CGSTAmount, c.SGSTAmount),
					ExpectedValue: "CGST == SGST",
				}}
			},
		},
		{
			key:  "com.tax_rate",
			name: "Commercial: Tax Rate Plausibility",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.TaxableValue <= 0 {
					return nil
				}
				effectiveRate := (c.CGSTAmount + c.SGSTAmount + c.IGSTAmount) / c.TaxableValue * 100
				for _, r := range standardRates {
					if math.Abs(effectiveRate-r) <= rateTolerance {
						return nil
					}
				}
				return []Finding{{
					RuleKey:       "com.tax_rate",
					Field:         "taxable_value",
					Severity:      SeverityWarning,
					Kind:          domain.IssueMismatch,
					Message:       "effective tax rate does not match a standard GST slab",
					DetectedValue: fmt.Sprintf("%.2f%%", effectiveRate),
					ExpectedValue: "0, 0.25, 3, 5, 6, 9, 12, 14, 18 or 28%",
				}}
			},
		},
		{
			key:  "com.irn",
			name: "Commercial: E-invoice IRN",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if domain.InvoiceType(c.InvoiceType) != domain.InvoiceTypeB2B {
					return nil
				}
				if c.TaxableValue <= eInvoiceThreshold || c.IRN != "" {
					return nil
				}
				return []Finding{{
					RuleKey:       "com.irn",
					Field:         "irn",
					Severity:      SeverityInfo,
					Kind:          domain.IssueMissing,
					Message:       "high-value B2B invoice has no IRN; e-invoicing may apply to this supplier",
					ExpectedValue: "64-character IRN",
				}}
			},
		},
	}
}
