package validate

import (
	"fmt"

	"saralgst/internal/domain"
	"saralgst/internal/gst"
)

// Taxable value above which a B2C sales invoice must identify the place of
// supply state.
const b2cLargeThreshold = 250000

// categoryRules apply only to one register.
func categoryRules() []rule {
	return []rule{
		{
			key:  "cat.sales.b2b_customer",
			name: "Sales: B2B Customer Identity",
			check: func(c *domain.CandidateInvoice, category domain.InvoiceCategory) []Finding {
				if category != domain.CategorySales || domain.InvoiceType(c.InvoiceType) != domain.InvoiceTypeB2B {
					return nil
				}
				var findings []Finding
				if c.CustomerGSTIN == "" {
					findings = append(findings, Finding{
						RuleKey:       "cat.sales.b2b_customer",
						Field:         "customer_gstin",
						Severity:      SeverityCritical,
						Kind:          domain.IssueMissing,
						Message:       "customer GSTIN is required on a B2B sales invoice",
						ExpectedValue: "15-character GSTIN",
					})
				}
				if c.CustomerName == "" {
					findings = append(findings, Finding{
						RuleKey:       "cat.sales.b2b_customer",
						Field:         "customer_name",
						Severity:      SeverityError,
						Kind:          domain.IssueMissing,
						Message:       "customer name is required on a B2B sales invoice",
						ExpectedValue: "non-empty value",
					})
				}
				return findings
			},
		},
		{
			key:  "cat.sales.b2c_large",
			name: "Sales: Large B2C Place of Supply",
			check: func(c *domain.CandidateInvoice, category domain.InvoiceCategory) []Finding {
				if category != domain.CategorySales || domain.InvoiceType(c.InvoiceType) != domain.InvoiceTypeB2C {
					return nil
				}
				if c.TaxableValue <= b2cLargeThreshold {
					return nil
				}
				if gst.StateCodeFromGSTIN(c.CustomerGSTIN) != "" {
					return nil
				}
				return []Finding{{
					RuleKey:       "cat.sales.b2c_large",
					Field:         "customer_state_code",
					Severity:      SeverityError,
					Kind:          domain.IssueMissing,
					Message:       fmt.Sprintf("place of supply state is required for B2C invoices above %d", b2cLargeThreshold),
					ExpectedValue: "two-digit state code",
				}}
			},
		},
	}
}
