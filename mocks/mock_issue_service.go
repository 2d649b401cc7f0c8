package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"saralgst/internal/domain"
	"saralgst/internal/service"
)

// MockIssueService is a mock implementation of service.IssueService.
type MockIssueService struct {
	mock.Mock
}

func (m *MockIssueService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceIssue, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceIssue), args.Error(1)
}

func (m *MockIssueService) Review(ctx context.Context, id uuid.UUID, input *service.ReviewIssueInput) (*domain.InvoiceIssue, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceIssue), args.Error(1)
}
