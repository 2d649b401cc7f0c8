package remark_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saralgst/internal/domain"
	"saralgst/internal/extract"
	"saralgst/internal/remark"
	"saralgst/internal/validate"
)

func TestFromFindings(t *testing.T) {
	invoiceID := uuid.New()
	findings := []validate.Finding{
		{
			Field:         "supplier_gstin",
			Severity:      validate.SeverityCritical,
			Kind:          domain.IssueMissing,
			Message:       "supplier_gstin is missing or empty",
			ExpectedValue: "non-empty value",
		},
		{
			Field:         "igst_amount",
			Severity:      validate.SeverityError,
			Kind:          domain.IssueMismatch,
			Message:       "IGST should not be charged for intra-state supply",
			DetectedValue: "180.00",
			ExpectedValue: "0",
		},
		{
			Field:    "hsn_or_sac_code",
			Severity: validate.SeverityWarning,
			Kind:     domain.IssueMissing,
			Message:  "HSN/SAC code is missing",
		},
	}

	issues := remark.FromFindings(invoiceID, findings)
	require.Len(t, issues, 3, "one issue per finding, advisory included")

	for _, issue := range issues {
		assert.Equal(t, invoiceID, issue.InvoiceID)
		assert.Equal(t, domain.IssueStatusOpen, issue.Status)
		assert.NotEqual(t, uuid.Nil, issue.ID)
	}

	assert.Equal(t, "supplier_gstin", issues[0].FieldName)
	assert.Nil(t, issues[0].DetectedValue)
	require.NotNil(t, issues[0].ExpectedValue)
	assert.Equal(t, "non-empty value", *issues[0].ExpectedValue)

	require.NotNil(t, issues[1].DetectedValue)
	assert.Equal(t, "180.00", *issues[1].DetectedValue)
	assert.Equal(t, domain.IssueMismatch, issues[1].IssueType)
}

func TestFromLowConfidence(t *testing.T) {
	invoiceID := uuid.New()

	t.Run("flags fields under threshold", func(t *testing.T) {
		conf := domain.FieldConfidence{
			SupplierGSTIN: 0.3,
			InvoiceNumber: 0.9,
			TaxValues:     0.45,
			CustomerGSTIN: 0.2,
		}

		issues := remark.FromLowConfidence(invoiceID, conf, domain.CategoryPurchase, 0.5)
		require.Len(t, issues, 2)

		fields := []string{issues[0].FieldName, issues[1].FieldName}
		assert.Contains(t, fields, "supplier_gstin")
		assert.Contains(t, fields, "taxable_value")

		for _, issue := range issues {
			assert.Equal(t, domain.IssueLowConfidence, issue.IssueType)
			require.NotNil(t, issue.ConfidenceScore)
			assert.Less(t, *issue.ConfidenceScore, 0.5)
		}
	})

	t.Run("customer gstin only tracked on sales", func(t *testing.T) {
		conf := domain.FieldConfidence{
			SupplierGSTIN: 0.9,
			InvoiceNumber: 0.9,
			TaxValues:     0.9,
			CustomerGSTIN: 0.1,
		}

		assert.Empty(t, remark.FromLowConfidence(invoiceID, conf, domain.CategoryPurchase, 0.5))

		issues := remark.FromLowConfidence(invoiceID, conf, domain.CategorySales, 0.5)
		require.Len(t, issues, 1)
		assert.Equal(t, "customer_gstin", issues[0].FieldName)
	})

	t.Run("all confident yields nothing", func(t *testing.T) {
		conf := domain.FieldConfidence{
			SupplierGSTIN: 0.8,
			InvoiceNumber: 0.8,
			TaxValues:     0.8,
			CustomerGSTIN: 0.8,
		}
		assert.Empty(t, remark.FromLowConfidence(invoiceID, conf, domain.CategorySales, 0.5))
	})
}

func TestFromExtractionFailure(t *testing.T) {
	invoiceID := uuid.New()

	t.Run("ocr stage", func(t *testing.T) {
		issue := remark.FromExtractionFailure(invoiceID, &extract.Failure{
			Stage:  extract.StageOCR,
			Reason: "vision api returned no text",
		})

		assert.Equal(t, "ocr_extraction", issue.FieldName)
		assert.Equal(t, domain.IssueUnreadable, issue.IssueType)
		assert.Equal(t, "vision api returned no text", issue.Message)
		assert.Equal(t, domain.IssueStatusOpen, issue.Status)
		assert.Nil(t, issue.DetectedValue)
	})

	t.Run("structuring stage keeps recognized text prefix", func(t *testing.T) {
		issue := remark.FromExtractionFailure(invoiceID, &extract.Failure{
			Stage:   extract.StageStructuring,
			Reason:  "model returned invalid JSON",
			RawText: "TAX INVOICE No. 42 dated 01-04-2025",
		})

		assert.Equal(t, "llm_extraction", issue.FieldName)
		require.NotNil(t, issue.DetectedValue)
		assert.Equal(t, "TAX INVOICE No. 42 dated 01-04-2025", *issue.DetectedValue)
	})

	t.Run("long raw text truncated to 200 chars", func(t *testing.T) {
		issue := remark.FromExtractionFailure(invoiceID, &extract.Failure{
			Stage:   extract.StageStructuring,
			Reason:  "model returned invalid JSON",
			RawText: strings.Repeat("x", 500),
		})

		require.NotNil(t, issue.DetectedValue)
		assert.Len(t, *issue.DetectedValue, 200)
	})
}
