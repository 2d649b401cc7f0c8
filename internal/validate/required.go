package validate

import (
	"fmt"

	"saralgst/internal/domain"
)

// requiredRules cover the fields every invoice must have regardless of
// category. Missing identity fields are critical: the record cannot be filed
// without them.
func requiredRules() []rule {
	presence := func(key, field string, extract func(*domain.CandidateInvoice) string) rule {
		return rule{
			key:  key,
			name: "Required: " + field,
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if extract(c) != "" {
					return nil
				}
				return []Finding{{
					RuleKey:       key,
					Field:         field,
					Severity:      SeverityCritical,
					Kind:          domain.IssueMissing,
					Message:       fmt.Sprintf("%s is missing or empty", field),
					ExpectedValue: "non-empty value",
				}}
			},
		}
	}

	return []rule{
		presence("req.supplier_gstin", "supplier_gstin", func(c *domain.CandidateInvoice) string { return c.SupplierGSTIN }),
		presence("req.invoice_number", "invoice_number", func(c *domain.CandidateInvoice) string { return c.InvoiceNumber }),
		presence("req.invoice_date", "invoice_date", func(c *domain.CandidateInvoice) string { return c.InvoiceDate }),
		presence("req.invoice_type", "invoice_type", func(c *domain.CandidateInvoice) string { return c.InvoiceType }),
		{
			key:  "req.taxable_value",
			name: "Required: Taxable Value",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.TaxableValue > 0 {
					return nil
				}
				return []Finding{{
					RuleKey:       "req.taxable_value",
					Field:         "taxable_value",
					Severity:      SeverityCritical,
					Kind:          domain.IssueMissing,
					Message:       "taxable_value must be greater than zero",
					DetectedValue: fmt.Sprintf("%.2f", c.TaxableValue),
					ExpectedValue: "> 0",
				}}
			},
		},
	}
}
