package validate

import (
	"fmt"
	"time"

	"saralgst/internal/domain"
	"saralgst/internal/gst"
)

// formatRules check the shape of fields that are present. Absent optional
// fields pass; the presence rules own emptiness.
func formatRules() []rule {
	gstinFormat := func(key, field string, extract func(*domain.CandidateInvoice) string) rule {
		return rule{
			key:  key,
			name: "Format: " + field,
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				val := extract(c)
				if val == "" {
					return nil
				}
				if !gst.IsValidGSTIN(val) {
					return []Finding{{
						RuleKey:       key,
						Field:         field,
						Severity:      SeverityError,
						Kind:          domain.IssueInvalidFormat,
						Message:       fmt.Sprintf("%s is not a valid GSTIN", field),
						DetectedValue: val,
						ExpectedValue: "15-character GSTIN",
					}}
				}
				if !gst.IsValidStateCode(val[:2]) {
					return []Finding{{
						RuleKey:       key,
						Field:         field,
						Severity:      SeverityError,
						Kind:          domain.IssueInvalidFormat,
						Message:       fmt.Sprintf("%s has an unknown state code prefix %q", field, val[:2]),
						DetectedValue: val,
						ExpectedValue: "GSTIN with state code 01-38 or 97",
					}}
				}
				return nil
			},
		}
	}

	return []rule{
		gstinFormat("fmt.supplier_gstin", "supplier_gstin", func(c *domain.CandidateInvoice) string { return c.SupplierGSTIN }),
		gstinFormat("fmt.buyer_gstin", "buyer_gstin", func(c *domain.CandidateInvoice) string { return c.BuyerGSTIN }),
		gstinFormat("fmt.customer_gstin", "customer_gstin", func(c *domain.CandidateInvoice) string { return c.CustomerGSTIN }),
		{
			key:  "fmt.invoice_date",
			name: "Format: Invoice Date",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.InvoiceDate == "" {
					return nil
				}
				if !gst.DatePattern.MatchString(c.InvoiceDate) {
					return []Finding{{
						RuleKey:       "fmt.invoice_date",
						Field:         "invoice_date",
						Severity:      SeverityError,
						Kind:          domain.IssueInvalidFormat,
						Message:       "invoice_date is not in YYYY-MM-DD format",
						DetectedValue: c.InvoiceDate,
						ExpectedValue: "YYYY-MM-DD",
					}}
				}
				parsed, err := time.Parse("2006-01-02", c.InvoiceDate)
				if err != nil {
					return []Finding{{
						RuleKey:       "fmt.invoice_date",
						Field:         "invoice_date",
						Severity:      SeverityError,
						Kind:          domain.IssueInvalidFormat,
						Message:       "invoice_date is not a valid calendar date",
						DetectedValue: c.InvoiceDate,
						ExpectedValue: "YYYY-MM-DD",
					}}
				}
				if parsed.After(time.Now()) {
					return []Finding{{
						RuleKey:       "fmt.invoice_date",
						Field:         "invoice_date",
						Severity:      SeverityError,
						Kind:          domain.IssueMismatch,
						Message:       "invoice_date is in the future",
						DetectedValue: c.InvoiceDate,
						ExpectedValue: "date not after today",
					}}
				}
				return nil
			},
		},
		{
			key:  "fmt.invoice_type",
			name: "Format: Invoice Type",
			check: func(c *domain.CandidateInvoice, _ domain.InvoiceCategory) []Finding {
				if c.InvoiceType == "" {
					return nil
				}
				if domain.KnownInvoiceTypes[domain.InvoiceType(c.InvoiceType)] {
					return nil
				}
				return []Finding{{
					RuleKey:       "fmt.invoice_type",
					Field:         "invoice_type",
					Severity:      SeverityError,
					Kind:          domain.IssueInvalid,
					Message:       "invoice_type is not a recognized type",
					DetectedValue: c.InvoiceType,
					ExpectedValue: "B2B, B2C, Export, SEZ or CreditNote",
				}}
			},
		},
	}
}
