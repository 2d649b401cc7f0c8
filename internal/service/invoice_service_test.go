package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"saralgst/internal/domain"
	"saralgst/internal/extract"
	"saralgst/internal/port"
	"saralgst/internal/service"
	"saralgst/mocks"
)

type invoiceServiceFixture struct {
	svc         service.InvoiceService
	invoiceRepo *mocks.MockInvoiceRepo
	issueRepo   *mocks.MockIssueRepo
	storage     *mocks.MockObjectStorage
	recognizer  *mocks.MockTextRecognizer
	structurer  *mocks.MockInvoiceStructurer
	email       *mocks.MockEmailSender
}

func setupInvoiceService() *invoiceServiceFixture {
	f := &invoiceServiceFixture{
		invoiceRepo: new(mocks.MockInvoiceRepo),
		issueRepo:   new(mocks.MockIssueRepo),
		storage:     new(mocks.MockObjectStorage),
		recognizer:  new(mocks.MockTextRecognizer),
		structurer:  new(mocks.MockInvoiceStructurer),
		email:       new(mocks.MockEmailSender),
	}
	orchestrator := extract.NewOrchestrator(f.recognizer, f.structurer, true)
	f.svc = service.NewInvoiceService(
		f.invoiceRepo, f.issueRepo, f.storage, orchestrator, f.email,
		"test-bucket", 3600, "reviewer@example.com", 0.5,
	)
	return f
}

func cleanCandidateOutput() *port.StructureOutput {
	return &port.StructureOutput{
		Candidate: &domain.CandidateInvoice{
			SupplierName:  "Acme Traders",
			SupplierGSTIN: "27AAPFU0939F1ZV",
			BuyerGSTIN:    "27AABCT1332L1ZU",
			InvoiceNumber: "INV-2025-042",
			InvoiceDate:   "2025-04-01",
			InvoiceType:   "B2B",
			HSNOrSACCode:  "7214",
			Description:   "Steel rods",
			Quantity:      10,
			UnitOfMeasure: "KG",
			RatePerUnit:   100,
			TaxableValue:  1000,
			CGSTAmount:    90,
			SGSTAmount:    90,
			Confidence: domain.FieldConfidence{
				SupplierGSTIN: 0.95,
				CustomerGSTIN: 0.9,
				InvoiceNumber: 0.92,
				TaxValues:     0.9,
			},
		},
		RawJSON:   json.RawMessage(`{"invoice_number":"INV-2025-042"}`),
		ModelUsed: "test-model",
	}
}

func TestInvoiceService_Process_CleanPurchase(t *testing.T) {
	f := setupInvoiceService()

	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InvoiceRecord")).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{Location: "https://s3/test-bucket/key"}, nil)
	f.structurer.On("StructureDocument", mock.Anything, mock.Anything).Return(cleanCandidateOutput(), nil)
	f.invoiceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.InvoiceRecord")).Return(nil)
	f.issueRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.InvoiceIssue")).Return(nil)

	result, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
		Category:    domain.CategoryPurchase,
		ContentType: "application/pdf",
		FileBytes:   []byte("%PDF-1.4"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusExtracted, result.Invoice.Status)
	assert.Empty(t, result.Issues)
	assert.Equal(t, "https://s3/test-bucket/key", result.Invoice.InvoiceBucketURL)
	assert.Equal(t, domain.SupplyIntraState, result.Invoice.SupplyType)
	assert.InDelta(t, 1180, result.Invoice.TotalInvoiceValue, 0.001)
	assert.Equal(t, domain.SourceManual, result.Invoice.Source)

	f.email.AssertNotCalled(t, "SendReviewAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Process_NeedsReviewSendsAlert(t *testing.T) {
	f := setupInvoiceService()

	flawed := cleanCandidateOutput()
	flawed.Candidate.SupplierGSTIN = "" // critical finding

	f.invoiceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "https://s3/x"}, nil)
	f.structurer.On("StructureDocument", mock.Anything, mock.Anything).Return(flawed, nil)
	f.invoiceRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.issueRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendReviewAlert", mock.Anything, "reviewer@example.com", mock.Anything).Return(nil)

	result, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
		Category:    domain.CategoryPurchase,
		Source:      domain.SourceEmail,
		ContentType: "image/png",
		FileBytes:   []byte{0x89, 0x50},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusNeedsReview, result.Invoice.Status)
	assert.NotEmpty(t, result.Issues)
	assert.Equal(t, domain.SourceEmail, result.Invoice.Source)

	f.email.AssertCalled(t, "SendReviewAlert", mock.Anything, "reviewer@example.com", mock.Anything)
}

func TestInvoiceService_Process_AlertFailureDoesNotBlock(t *testing.T) {
	f := setupInvoiceService()

	flawed := cleanCandidateOutput()
	flawed.Candidate.SupplierGSTIN = ""

	f.invoiceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "https://s3/x"}, nil)
	f.structurer.On("StructureDocument", mock.Anything, mock.Anything).Return(flawed, nil)
	f.invoiceRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.issueRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendReviewAlert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

	result, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
		Category:    domain.CategoryPurchase,
		ContentType: "application/pdf",
		FileBytes:   []byte("%PDF-1.4"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusNeedsReview, result.Invoice.Status)
}

func TestInvoiceService_Process_ExtractionFailure(t *testing.T) {
	f := setupInvoiceService()

	f.invoiceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "https://s3/x"}, nil)
	f.structurer.On("StructureDocument", mock.Anything, mock.Anything).Return(nil, errors.New("model error"))
	f.recognizer.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("vision api unavailable"))
	f.invoiceRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.InvoiceStatusError).Return(nil)
	f.issueRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(issues []domain.InvoiceIssue) bool {
		return len(issues) == 1 &&
			issues[0].FieldName == "ocr_extraction" &&
			issues[0].IssueType == domain.IssueUnreadable
	})).Return(nil)

	result, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
		Category:    domain.CategoryPurchase,
		ContentType: "application/pdf",
		FileBytes:   []byte("%PDF-1.4"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusError, result.Invoice.Status)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "ocr_extraction", result.Issues[0].FieldName)
}

func TestInvoiceService_Process_InputValidation(t *testing.T) {
	f := setupInvoiceService()

	t.Run("invalid category", func(t *testing.T) {
		_, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
			Category:    "expense",
			ContentType: "application/pdf",
			FileBytes:   []byte("x"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		_, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
			Category:    domain.CategoryPurchase,
			ContentType: "text/plain",
			FileBytes:   []byte("x"),
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	})

	t.Run("oversize file", func(t *testing.T) {
		_, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
			Category:    domain.CategoryPurchase,
			ContentType: "application/pdf",
			FileBytes:   make([]byte, domain.MaxFileSizeBytes+1),
		})
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})
}

func TestInvoiceService_Process_UploadFailure(t *testing.T) {
	f := setupInvoiceService()

	f.invoiceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket unreachable"))
	f.invoiceRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.InvoiceStatusError).Return(nil)

	_, err := f.svc.Process(context.Background(), &service.ProcessInvoiceInput{
		Category:    domain.CategoryPurchase,
		ContentType: "application/pdf",
		FileBytes:   []byte("%PDF-1.4"),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	f.invoiceRepo.AssertCalled(t, "UpdateStatus", mock.Anything, mock.Anything, domain.InvoiceStatusError)
}

func reviewableRecord(id uuid.UUID) *domain.InvoiceRecord {
	return &domain.InvoiceRecord{
		ID:            id,
		Category:      domain.CategoryPurchase,
		SupplierGSTIN: "27AAPFU0939F1ZV",
		BuyerGSTIN:    "27AABCT1332L1ZU",
		InvoiceNumber: "INV-2025-042",
		InvoiceDate:   "2025-04-01",
		InvoiceType:   domain.InvoiceTypeB2B,
		HSNOrSACCode:  "7214",
		Description:   "Steel rods",
		Quantity:      10,
		UnitOfMeasure: "KG",
		TaxableValue:  1000,
		IGSTAmount:    180, // wrong for intra-state; drives needs_review
		IsITCEligible: true,
		Status:        domain.InvoiceStatusNeedsReview,
	}
}

func TestInvoiceService_UpdateFields_RevalidatesAndPromotes(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(reviewableRecord(id), nil)
	f.invoiceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.InvoiceRecord")).Return(nil)
	f.issueRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	// Reviewer fixes the tax heads for an intra-state supply.
	zero := 0.0
	ninety := 90.0
	result, err := f.svc.UpdateFields(context.Background(), id, &service.UpdateInvoiceInput{
		IGSTAmount: &zero,
		CGSTAmount: &ninety,
		SGSTAmount: &ninety,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusExtracted, result.Invoice.Status)
	assert.InDelta(t, 1180, result.Invoice.TotalInvoiceValue, 0.001)
	assert.Empty(t, result.Issues)
}

func TestInvoiceService_UpdateFields_NewFindingsGetIssues(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(reviewableRecord(id), nil)
	f.invoiceRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.issueRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(issues []domain.InvoiceIssue) bool {
		return len(issues) > 0
	})).Return(nil)

	// Edit clears the invoice number; the record stays in review with a
	// fresh issue batch.
	empty := ""
	result, err := f.svc.UpdateFields(context.Background(), id, &service.UpdateInvoiceInput{
		InvoiceNumber: &empty,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusNeedsReview, result.Invoice.Status)
	assert.NotEmpty(t, result.Issues)
}

func TestInvoiceService_UpdateFields_NotEditable(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	rec := reviewableRecord(id)
	rec.Status = domain.InvoiceStatusError
	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(rec, nil)

	_, err := f.svc.UpdateFields(context.Background(), id, &service.UpdateInvoiceInput{})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotEditable)
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	t.Run("verify from needs_review", func(t *testing.T) {
		f.invoiceRepo.On("GetByID", mock.Anything, id).Return(reviewableRecord(id), nil).Once()
		f.invoiceRepo.On("UpdateStatus", mock.Anything, id, domain.InvoiceStatusVerified).Return(nil).Once()

		rec, err := f.svc.UpdateStatus(context.Background(), id, domain.InvoiceStatusVerified)
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusVerified, rec.Status)
	})

	t.Run("verified is terminal", func(t *testing.T) {
		rec := reviewableRecord(id)
		rec.Status = domain.InvoiceStatusVerified
		f.invoiceRepo.On("GetByID", mock.Anything, id).Return(rec, nil).Once()

		_, err := f.svc.UpdateStatus(context.Background(), id, domain.InvoiceStatusNeedsReview)
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})
}

func TestInvoiceService_Delete_Cascades(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	rec := reviewableRecord(id)
	rec.InvoiceBucketURL = "https://s3/test-bucket/invoices/purchase/" + id.String()
	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(rec, nil)
	f.issueRepo.On("DeleteByInvoice", mock.Anything, id).Return(nil)
	f.invoiceRepo.On("Delete", mock.Anything, id).Return(nil)
	f.storage.On("Delete", mock.Anything, "test-bucket", "invoices/purchase/"+id.String()).Return(nil)

	err := f.svc.Delete(context.Background(), id)
	require.NoError(t, err)

	f.issueRepo.AssertCalled(t, "DeleteByInvoice", mock.Anything, id)
	f.storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", "invoices/purchase/"+id.String())
}

func TestInvoiceService_GetByID(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		f.invoiceRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound).Once()
		_, err := f.svc.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	})

	t.Run("returns record with issues", func(t *testing.T) {
		f.invoiceRepo.On("GetByID", mock.Anything, id).Return(reviewableRecord(id), nil).Once()
		f.issueRepo.On("ListByInvoice", mock.Anything, id).Return([]domain.InvoiceIssue{
			{ID: uuid.New(), InvoiceID: id, FieldName: "igst_amount"},
		}, nil).Once()

		result, err := f.svc.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, result.Issues, 1)
	})
}
