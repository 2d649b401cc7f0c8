package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"saralgst/internal/domain"
)

// MockIssueRepo is a mock implementation of port.IssueRepository.
type MockIssueRepo struct {
	mock.Mock
}

func (m *MockIssueRepo) CreateBatch(ctx context.Context, issues []domain.InvoiceIssue) error {
	args := m.Called(ctx, issues)
	return args.Error(0)
}

func (m *MockIssueRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceIssue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceIssue), args.Error(1)
}

func (m *MockIssueRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceIssue, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceIssue), args.Error(1)
}

func (m *MockIssueRepo) UpdateReview(ctx context.Context, issue *domain.InvoiceIssue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepo) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}
