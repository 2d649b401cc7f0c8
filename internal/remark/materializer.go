// Package remark turns validation findings and extraction outcomes into
// persistable invoice issues for the review queue.
package remark

import (
	"github.com/google/uuid"

	"saralgst/internal/domain"
	"saralgst/internal/extract"
	"saralgst/internal/validate"
)

// rawTextPrefixLen bounds how much recognized text an unreadable issue keeps
// as its detected value.
const rawTextPrefixLen = 200

// FromFindings materializes one open issue per finding, advisory findings
// included. Issues are append-only: a later pipeline run adds a new batch
// rather than editing these.
func FromFindings(invoiceID uuid.UUID, findings []validate.Finding) []domain.InvoiceIssue {
	issues := make([]domain.InvoiceIssue, 0, len(findings))
	for _, f := range findings {
		issue := domain.InvoiceIssue{
			ID:        uuid.New(),
			InvoiceID: invoiceID,
			FieldName: f.Field,
			IssueType: f.Kind,
			Message:   f.Message,
			Status:    domain.IssueStatusOpen,
		}
		if f.DetectedValue != "" {
			v := f.DetectedValue
			issue.DetectedValue = &v
		}
		if f.ExpectedValue != "" {
			v := f.ExpectedValue
			issue.ExpectedValue = &v
		}
		issues = append(issues, issue)
	}
	return issues
}

// FromLowConfidence flags extracted fields whose provider confidence fell
// below threshold. The customer GSTIN only matters on the sales register.
func FromLowConfidence(invoiceID uuid.UUID, conf domain.FieldConfidence, category domain.InvoiceCategory, threshold float64) []domain.InvoiceIssue {
	type fieldConf struct {
		name  string
		score float64
	}
	fields := []fieldConf{
		{"supplier_gstin", conf.SupplierGSTIN},
		{"invoice_number", conf.InvoiceNumber},
		{"taxable_value", conf.TaxValues},
	}
	if category == domain.CategorySales {
		fields = append(fields, fieldConf{"customer_gstin", conf.CustomerGSTIN})
	}

	var issues []domain.InvoiceIssue
	for _, fc := range fields {
		if fc.score >= threshold {
			continue
		}
		score := fc.score
		issues = append(issues, domain.InvoiceIssue{
			ID:              uuid.New(),
			InvoiceID:       invoiceID,
			FieldName:       fc.name,
			IssueType:       domain.IssueLowConfidence,
			Message:         "extraction confidence below review threshold",
			ConfidenceScore: &score,
			Status:          domain.IssueStatusOpen,
		})
	}
	return issues
}

// FromExtractionFailure materializes the single synthetic issue that marks a
// terminal extraction failure. The field name records which stage gave out
// and the detected value keeps a prefix of whatever text was recognized.
func FromExtractionFailure(invoiceID uuid.UUID, failure *extract.Failure) domain.InvoiceIssue {
	fieldName := "ocr_extraction"
	if failure.Stage == extract.StageStructuring {
		fieldName = "llm_extraction"
	}

	issue := domain.InvoiceIssue{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		FieldName: fieldName,
		IssueType: domain.IssueUnreadable,
		Message:   failure.Reason,
		Status:    domain.IssueStatusOpen,
	}
	if failure.RawText != "" {
		prefix := failure.RawText
		if len(prefix) > rawTextPrefixLen {
			prefix = prefix[:rawTextPrefixLen]
		}
		issue.DetectedValue = &prefix
	}
	return issue
}
