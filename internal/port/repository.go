package port

import (
	"context"

	"github.com/google/uuid"

	"saralgst/internal/domain"
)

// InvoiceRepository defines the contract for invoice register persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.InvoiceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceRecord, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRecord, int, error)
	Update(ctx context.Context, inv *domain.InvoiceRecord) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IssueRepository defines the contract for invoice issue persistence.
type IssueRepository interface {
	CreateBatch(ctx context.Context, issues []domain.InvoiceIssue) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceIssue, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceIssue, error)
	UpdateReview(ctx context.Context, issue *domain.InvoiceIssue) error
	DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error
}
