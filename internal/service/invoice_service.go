package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"saralgst/internal/assemble"
	"saralgst/internal/domain"
	"saralgst/internal/extract"
	"saralgst/internal/port"
	"saralgst/internal/remark"
	"saralgst/internal/validate"
)

// ProcessInvoiceInput is the DTO for ingesting one invoice document.
type ProcessInvoiceInput struct {
	Category    domain.InvoiceCategory
	Source      domain.InvoiceSource
	ContentType string
	FileBytes   []byte
}

// UpdateInvoiceInput is the DTO for a reviewer field edit. Nil pointers leave
// the stored value untouched.
type UpdateInvoiceInput struct {
	SupplierName    *string
	SupplierGSTIN   *string
	BuyerGSTIN      *string
	CustomerName    *string
	CustomerGSTIN   *string
	InvoiceNumber   *string
	InvoiceDate     *string
	InvoiceType     *string
	HSNOrSACCode    *string
	Description     *string
	Quantity        *float64
	UnitOfMeasure   *string
	RatePerUnit     *float64
	TaxableValue    *float64
	CGSTAmount      *float64
	SGSTAmount      *float64
	IGSTAmount      *float64
	CessAmount      *float64
	IRN             *string
	IsReverseCharge *bool
	IsITCEligible   *bool
}

// ProcessResult bundles the invoice record with the issues the pipeline run
// raised for it.
type ProcessResult struct {
	Invoice *domain.InvoiceRecord `json:"invoice"`
	Issues  []domain.InvoiceIssue `json:"issues"`
}

// InvoiceService defines the invoice register contract.
type InvoiceService interface {
	Process(ctx context.Context, input *ProcessInvoiceInput) (*ProcessResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProcessResult, error)
	GetDocumentURL(ctx context.Context, id uuid.UUID) (string, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRecord, int, error)
	UpdateFields(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*ProcessResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.InvoiceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo         port.InvoiceRepository
	issueRepo           port.IssueRepository
	storage             port.ObjectStorage
	orchestrator        *extract.Orchestrator
	emailSender         port.EmailSender
	bucket              string
	presignExpiry       int64
	reviewerAddr        string
	confidenceThreshold float64
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	issueRepo port.IssueRepository,
	storage port.ObjectStorage,
	orchestrator *extract.Orchestrator,
	emailSender port.EmailSender,
	bucket string,
	presignExpiry int64,
	reviewerAddr string,
	confidenceThreshold float64,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:         invoiceRepo,
		issueRepo:           issueRepo,
		storage:             storage,
		orchestrator:        orchestrator,
		emailSender:         emailSender,
		bucket:              bucket,
		presignExpiry:       presignExpiry,
		reviewerAddr:        reviewerAddr,
		confidenceThreshold: confidenceThreshold,
	}
}

// objectKey is the S3 key for an invoice document. It is derived from the
// record id so deletion can reconstruct it.
func objectKey(category domain.InvoiceCategory, id uuid.UUID) string {
	return fmt.Sprintf("invoices/%s/%s", category, id)
}

// Process runs the full ingestion pipeline for one document: persist a
// pending record, upload the original, extract, validate, assemble and
// materialize issues. Extraction failure is terminal for the attempt; the
// record is left in error status with a single unreadable issue and no
// automatic retry is scheduled.
func (s *invoiceService) Process(ctx context.Context, input *ProcessInvoiceInput) (*ProcessResult, error) {
	if !input.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if _, ok := domain.AllowedContentTypes[input.ContentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if len(input.FileBytes) > domain.MaxFileSizeBytes {
		return nil, domain.ErrFileTooLarge
	}

	source := input.Source
	if source == "" {
		source = domain.SourceManual
	}

	rec := &domain.InvoiceRecord{
		ID:       uuid.New(),
		Category: input.Category,
		Source:   source,
		Status:   domain.InvoiceStatusPending,
	}
	if err := s.invoiceRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("invoiceService.Process create: %w", err)
	}

	uploadOut, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         objectKey(rec.Category, rec.ID),
		Body:        bytes.NewReader(input.FileBytes),
		ContentType: input.ContentType,
		Size:        int64(len(input.FileBytes)),
	})
	if err != nil {
		log.Printf("invoiceService.Process: upload failed for invoice %s: %v", rec.ID, err)
		s.markError(ctx, rec)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	rec.InvoiceBucketURL = uploadOut.Location

	extraction, err := s.orchestrator.Extract(ctx, extract.Input{
		FileBytes:   input.FileBytes,
		ContentType: input.ContentType,
		Category:    input.Category,
	})
	if err != nil {
		return s.failExtraction(ctx, rec, err)
	}

	result := validate.Validate(extraction.Candidate, rec.Category)

	assemble.Apply(rec, extraction.Candidate)
	rec.RawExtraction = extraction.RawJSON
	rec.ConfidenceScore = extraction.Confidence
	rec.Status = assemble.StatusFor(&result)

	if err := s.invoiceRepo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("invoiceService.Process update: %w", err)
	}

	issues := remark.FromFindings(rec.ID, result.Findings())
	issues = append(issues, remark.FromLowConfidence(rec.ID, extraction.Candidate.Confidence, rec.Category, s.confidenceThreshold)...)
	if err := s.issueRepo.CreateBatch(ctx, issues); err != nil {
		return nil, fmt.Errorf("invoiceService.Process issues: %w", err)
	}

	log.Printf("invoiceService.Process: invoice %s processed via %s strategy, status %s, %d issue(s)",
		rec.ID, extraction.Strategy, rec.Status, len(issues))

	if rec.Status == domain.InvoiceStatusNeedsReview {
		s.notifyReviewer(ctx, rec, len(issues))
	}

	return &ProcessResult{Invoice: rec, Issues: issues}, nil
}

// failExtraction records a terminal extraction failure: error status plus one
// synthetic unreadable issue carrying whatever text was recognized.
func (s *invoiceService) failExtraction(ctx context.Context, rec *domain.InvoiceRecord, err error) (*ProcessResult, error) {
	failure, ok := extract.AsFailure(err)
	if !ok {
		s.markError(ctx, rec)
		return nil, fmt.Errorf("invoiceService.Process extract: %w", err)
	}

	log.Printf("invoiceService.Process: extraction failed for invoice %s at %s stage: %s",
		rec.ID, failure.Stage, failure.Reason)

	rec.Status = domain.InvoiceStatusError
	if updateErr := s.invoiceRepo.UpdateStatus(ctx, rec.ID, domain.InvoiceStatusError); updateErr != nil {
		return nil, fmt.Errorf("invoiceService.Process fail status: %w", updateErr)
	}

	issue := remark.FromExtractionFailure(rec.ID, failure)
	if createErr := s.issueRepo.CreateBatch(ctx, []domain.InvoiceIssue{issue}); createErr != nil {
		return nil, fmt.Errorf("invoiceService.Process fail issue: %w", createErr)
	}

	return &ProcessResult{Invoice: rec, Issues: []domain.InvoiceIssue{issue}}, nil
}

func (s *invoiceService) markError(ctx context.Context, rec *domain.InvoiceRecord) {
	rec.Status = domain.InvoiceStatusError
	if err := s.invoiceRepo.UpdateStatus(ctx, rec.ID, domain.InvoiceStatusError); err != nil {
		log.Printf("invoiceService.markError: failed to update status for %s: %v", rec.ID, err)
	}
}

// notifyReviewer is best effort; a delivery failure never blocks the pipeline.
func (s *invoiceService) notifyReviewer(ctx context.Context, rec *domain.InvoiceRecord, issueCount int) {
	if s.reviewerAddr == "" {
		return
	}
	alert := port.ReviewAlert{
		InvoiceID:     rec.ID.String(),
		InvoiceNumber: rec.InvoiceNumber,
		SupplierName:  rec.SupplierName,
		IssueCount:    issueCount,
	}
	if err := s.emailSender.SendReviewAlert(ctx, s.reviewerAddr, alert); err != nil {
		log.Printf("invoiceService.notifyReviewer: failed to send alert for %s: %v", rec.ID, err)
	}
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*ProcessResult, error) {
	rec, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	issues, err := s.issueRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProcessResult{Invoice: rec, Issues: issues}, nil
}

func (s *invoiceService) GetDocumentURL(ctx context.Context, id uuid.UUID) (string, error) {
	rec, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if rec.InvoiceBucketURL == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.bucket, objectKey(rec.Category, rec.ID), s.presignExpiry)
}

func (s *invoiceService) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRecord, int, error) {
	return s.invoiceRepo.List(ctx, filter)
}

// UpdateFields applies a reviewer edit, refreshes every derived field and
// re-runs validation synchronously. A fresh batch of open issues is created
// for the new findings; earlier issues are left as they are.
func (s *invoiceService) UpdateFields(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*ProcessResult, error) {
	rec, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.InvoiceStatusExtracted && rec.Status != domain.InvoiceStatusNeedsReview {
		return nil, domain.ErrInvoiceNotEditable
	}

	applyPatch(rec, input)
	assemble.Refresh(rec)

	result := validate.Validate(assemble.CandidateOf(rec), rec.Category)
	next := assemble.StatusFor(&result)
	if next != rec.Status && rec.Status.CanTransition(next) {
		rec.Status = next
	}

	if err := s.invoiceRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	issues := remark.FromFindings(rec.ID, result.Findings())
	if err := s.issueRepo.CreateBatch(ctx, issues); err != nil {
		return nil, fmt.Errorf("invoiceService.UpdateFields issues: %w", err)
	}

	return &ProcessResult{Invoice: rec, Issues: issues}, nil
}

// UpdateStatus handles out-of-band reviewer transitions, primarily the move
// to verified.
func (s *invoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.InvoiceRecord, error) {
	rec, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.Status.CanTransition(status) {
		return nil, domain.ErrInvalidStatusChange
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	rec.Status = status
	return rec, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.issueRepo.DeleteByInvoice(ctx, id); err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if rec.InvoiceBucketURL != "" {
		if err := s.storage.Delete(ctx, s.bucket, objectKey(rec.Category, rec.ID)); err != nil {
			log.Printf("invoiceService.Delete: failed to delete object for %s: %v", id, err)
		}
	}
	return nil
}

func applyPatch(rec *domain.InvoiceRecord, input *UpdateInvoiceInput) {
	if input.SupplierName != nil {
		rec.SupplierName = *input.SupplierName
	}
	if input.SupplierGSTIN != nil {
		rec.SupplierGSTIN = *input.SupplierGSTIN
	}
	if input.BuyerGSTIN != nil {
		rec.BuyerGSTIN = *input.BuyerGSTIN
	}
	if input.CustomerName != nil {
		rec.CustomerName = *input.CustomerName
	}
	if input.CustomerGSTIN != nil {
		rec.CustomerGSTIN = *input.CustomerGSTIN
	}
	if input.InvoiceNumber != nil {
		rec.InvoiceNumber = *input.InvoiceNumber
	}
	if input.InvoiceDate != nil {
		rec.InvoiceDate = *input.InvoiceDate
	}
	if input.InvoiceType != nil {
		rec.InvoiceType = domain.InvoiceType(*input.InvoiceType)
	}
	if input.HSNOrSACCode != nil {
		rec.HSNOrSACCode = *input.HSNOrSACCode
	}
	if input.Description != nil {
		rec.Description = *input.Description
	}
	if input.Quantity != nil {
		rec.Quantity = *input.Quantity
	}
	if input.UnitOfMeasure != nil {
		rec.UnitOfMeasure = *input.UnitOfMeasure
	}
	if input.RatePerUnit != nil {
		rec.RatePerUnit = *input.RatePerUnit
	}
	if input.TaxableValue != nil {
		rec.TaxableValue = *input.TaxableValue
	}
	if input.CGSTAmount != nil {
		rec.CGSTAmount = *input.CGSTAmount
	}
	if input.SGSTAmount != nil {
		rec.SGSTAmount = *input.SGSTAmount
	}
	if input.IGSTAmount != nil {
		rec.IGSTAmount = *input.IGSTAmount
	}
	if input.CessAmount != nil {
		rec.CessAmount = *input.CessAmount
	}
	if input.IRN != nil {
		rec.IRN = *input.IRN
	}
	if input.IsReverseCharge != nil {
		rec.IsReverseCharge = *input.IsReverseCharge
	}
	if input.IsITCEligible != nil {
		rec.IsITCEligible = *input.IsITCEligible
	}
}
