package service

import (
	"context"

	"github.com/google/uuid"

	"saralgst/internal/domain"
	"saralgst/internal/port"
)

// ReviewIssueInput is the DTO for a reviewer's verdict on one issue.
type ReviewIssueInput struct {
	Status  domain.IssueStatus
	Comment string
}

// IssueService defines the issue review contract.
type IssueService interface {
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceIssue, error)
	Review(ctx context.Context, id uuid.UUID, input *ReviewIssueInput) (*domain.InvoiceIssue, error)
}

type issueService struct {
	issueRepo   port.IssueRepository
	invoiceRepo port.InvoiceRepository
}

// NewIssueService creates a new IssueService implementation.
func NewIssueService(issueRepo port.IssueRepository, invoiceRepo port.InvoiceRepository) IssueService {
	return &issueService{
		issueRepo:   issueRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *issueService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceIssue, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.issueRepo.ListByInvoice(ctx, invoiceID)
}

// Review closes an open issue as resolved or ignored. Reviewed issues are
// immutable; a second verdict is rejected.
func (s *issueService) Review(ctx context.Context, id uuid.UUID, input *ReviewIssueInput) (*domain.InvoiceIssue, error) {
	if input.Status != domain.IssueStatusResolved && input.Status != domain.IssueStatusIgnored {
		return nil, domain.ErrInvalidIssueStatus
	}

	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue.Status != domain.IssueStatusOpen {
		return nil, domain.ErrIssueAlreadyReviewed
	}

	issue.Status = input.Status
	issue.Comment = input.Comment
	if err := s.issueRepo.UpdateReview(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}
